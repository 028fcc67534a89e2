package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/models"
	"github.com/dmitrijs2005/journly/internal/storage"
)

// Write prompts for a new journal entry and saves it encrypted.
func (a *App) Write(ctx context.Context) error {
	if !a.session.Unlocked() {
		fmt.Println(vaultLockedMsg)
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Write your entry", os.Stdout)
	if err != nil {
		return err
	}
	mood, err := getSimpleText(a.reader, "Mood (great/good/neutral/bad/awful, empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	tagLine, err := getSimpleText(a.reader, "Tags (comma separated, empty to skip)", os.Stdout)
	if err != nil {
		return err
	}

	var tags []string
	for _, t := range strings.Split(tagLine, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	e, err := models.NewJournalEntry(title, content, models.Mood(mood), tags)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			fmt.Println(err)
			return nil
		}
		return err
	}

	if err := a.entries.Save(ctx, e); err != nil {
		return err
	}
	fmt.Printf("Saved entry %s (%d words)\n", e.Id, e.WordCount)
	return nil
}

// List prints the most recent entries, newest first.
func (a *App) List(ctx context.Context) error {
	list, err := a.entries.FindAll(ctx, storage.Page{})
	if err != nil {
		if errors.Is(err, common.ErrVaultLocked) {
			fmt.Println(vaultLockedMsg)
			return nil
		}
		return err
	}
	if len(list) == 0 {
		fmt.Println("No entries yet. Use 'write' to add one.")
		return nil
	}

	for _, e := range list {
		line := fmt.Sprintf("%.8s  %.10s  %-30s  %d words", e.Id, e.CreatedAt, e.Title, e.WordCount)
		if e.Mood != "" {
			line += "  [" + string(e.Mood) + "]"
		}
		if len(e.Tags) > 0 {
			line += "  #" + strings.Join(e.Tags, " #")
		}
		fmt.Println(line)
	}
	return nil
}

// Show prints one entry in full.
func (a *App) Show(ctx context.Context) error {
	e, err := a.promptEntry(ctx)
	if err != nil || e == nil {
		return err
	}

	fmt.Printf("%s\n%s\n\n%s\n", e.Title, e.CreatedAt, e.Content)
	if e.Mood != "" {
		fmt.Printf("\nMood: %s\n", e.Mood)
	}
	if len(e.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(e.Tags, ", "))
	}
	return nil
}

// Tag attaches a tag to an existing entry.
func (a *App) Tag(ctx context.Context) error {
	e, err := a.promptEntry(ctx)
	if err != nil || e == nil {
		return err
	}

	tag, err := getSimpleText(a.reader, "Tag", os.Stdout)
	if err != nil {
		return err
	}
	if tag == "" {
		return nil
	}

	e.AddTag(tag)
	if err := a.entries.Save(ctx, e); err != nil {
		return err
	}
	fmt.Println("Tagged.")
	return nil
}

// Delete soft-deletes an entry. The envelope stays in the vault so the
// deletion propagates to backups.
func (a *App) Delete(ctx context.Context) error {
	if !a.session.Unlocked() {
		fmt.Println(vaultLockedMsg)
		return nil
	}

	id, err := getSimpleText(a.reader, "Entry ID", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.entries.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, common.ErrEntryNotFound) {
			fmt.Println("Entry not found.")
			return nil
		}
		return err
	}
	fmt.Println("Entry deleted.")
	return nil
}

// Purge permanently removes an entry envelope after confirmation.
func (a *App) Purge(ctx context.Context) error {
	if !a.session.Unlocked() {
		fmt.Println(vaultLockedMsg)
		return nil
	}

	id, err := getSimpleText(a.reader, "Entry ID", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getSimpleText(a.reader, "Type 'yes' to permanently remove this entry", os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.entries.HardDelete(ctx, id); err != nil {
		return err
	}
	fmt.Println("Entry permanently removed.")
	return nil
}

// promptEntry asks for an id and loads the entry, translating the usual
// failure modes into user-facing messages. A nil entry with nil error
// means the command was already answered.
func (a *App) promptEntry(ctx context.Context) (*models.JournalEntry, error) {
	if !a.session.Unlocked() {
		fmt.Println(vaultLockedMsg)
		return nil, nil
	}

	id, err := getSimpleText(a.reader, "Entry ID", os.Stdout)
	if err != nil {
		return nil, err
	}

	e, err := a.entries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrDecryptionFailed) {
			fmt.Println("Could not read this entry.")
			return nil, nil
		}
		return nil, err
	}
	if e == nil || e.IsDeleted {
		fmt.Println("Entry not found.")
		return nil, nil
	}
	return e, nil
}
