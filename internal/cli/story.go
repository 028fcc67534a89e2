package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/journly/internal/ai"
	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/models"
	"github.com/dmitrijs2005/journly/internal/storage"
	"github.com/dmitrijs2005/journly/internal/textutil"
)

const storySystemPrompt = "You are a reflective narrative writer. Create a thoughtful, first-person story based on the journal entries provided."

// storySourceLimit bounds how many recent entries feed one story.
const storySourceLimit = 10

// Story generates a narrative from recent entries. Entry text is
// anonymized before it reaches the adapter and re-personalized afterwards,
// so names and contact details never leave the device.
func (a *App) Story(ctx context.Context) error {
	if !a.session.Unlocked() {
		fmt.Println(vaultLockedMsg)
		return nil
	}

	theme, err := getSimpleText(a.reader, "Story theme", os.Stdout)
	if err != nil {
		return err
	}

	recent, err := a.entries.FindAll(ctx, storage.Page{Limit: storySourceLimit})
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Println("No entries to build a story from.")
		return nil
	}

	var combined strings.Builder
	sourceIds := make([]string, 0, len(recent))
	for _, e := range recent {
		sourceIds = append(sourceIds, e.Id)
		combined.WriteString(e.Content)
		combined.WriteString("\n\n")
	}
	anon := textutil.Anonymize(combined.String())

	p, err := a.prefs.Load(ctx)
	if err != nil {
		return err
	}
	provider := models.AIProviderLocal
	if p.AI.Provider == models.AIProviderTypeRemote {
		provider = models.AIProviderRemote
	}

	adapter := ai.New(provider)
	defer adapter.Dispose()

	aiCfg := p.AI
	aiCfg.RemoteApiKey = a.session.APIKey()
	if err := adapter.Initialize(aiCfg); err != nil {
		return err
	}

	fmt.Println("Generating...")
	resp, err := adapter.Generate(ctx, &ai.Request{
		SystemPrompt: storySystemPrompt,
		UserPrompt:   theme + "\n\n" + anon.Cleaned,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAINotReady):
			fmt.Println("AI provider not configured. Set an endpoint and API key first.")
		case errors.Is(err, common.ErrAuthInvalid):
			fmt.Println("The AI provider rejected the API key.")
		case errors.Is(err, common.ErrRateLimited):
			fmt.Println("Rate limited by the AI provider. Wait a moment and try again.")
		default:
			fmt.Println("Story generation failed:", err)
		}
		return nil
	}

	content := textutil.Repersonalize(resp.Content, anon.Replacements)

	title := theme
	if title == "" {
		title = "Untitled story"
	}
	story, err := models.NewStory(title, content, sourceIds, theme, resp.Provider)
	if err != nil {
		return err
	}
	if err := a.stories.Save(ctx, story); err != nil {
		return err
	}

	fmt.Printf("\n%s\n\nSaved story %s (%s, %s)\n", content, story.Id, resp.Provider, resp.Model)
	return nil
}

// APIKey switches story generation to the remote provider and stores its
// endpoint, model and API key. The key is persisted encrypted under the
// vault key only.
func (a *App) APIKey(ctx context.Context) error {
	if !a.session.Unlocked() {
		fmt.Println(vaultLockedMsg)
		return nil
	}

	endpoint, err := getSimpleText(a.reader, "Endpoint (OpenAI-compatible)", os.Stdout)
	if err != nil {
		return err
	}
	model, err := getSimpleText(a.reader, "Model (empty for the provider default)", os.Stdout)
	if err != nil {
		return err
	}
	key, err := getPassphrase("API key", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	p, err := a.prefs.Load(ctx)
	if err != nil {
		return err
	}
	p.AI.Provider = models.AIProviderTypeRemote
	p.AI.RemoteEndpoint = endpoint
	p.AI.RemoteModel = model

	if err := a.session.SetAPIKey(ctx, &p, string(key)); err != nil {
		return err
	}
	fmt.Println("Remote AI configured.")
	return nil
}

// Stories lists generated stories, newest first.
func (a *App) Stories(ctx context.Context) error {
	list, err := a.stories.FindAll(ctx, storage.Page{})
	if err != nil {
		if errors.Is(err, common.ErrVaultLocked) {
			fmt.Println(vaultLockedMsg)
			return nil
		}
		return err
	}
	if len(list) == 0 {
		fmt.Println("No stories yet. Use 'story' to generate one.")
		return nil
	}

	for _, s := range list {
		fmt.Printf("%.8s  %.10s  %-30s  %s, %d sources\n",
			s.Id, s.CreatedAt, s.Title, s.Provider, len(s.SourceEntryIds))
	}
	return nil
}
