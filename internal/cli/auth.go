package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/storage"
	"github.com/dmitrijs2005/journly/internal/textutil"
	"github.com/dmitrijs2005/journly/internal/vault"
)

// getSimpleText, getPassphrase and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassphrase = GetPassphrase
var getMultiline = GetMultiline

// The same message covers a wrong passphrase and unreadable key material;
// the user never learns which one it was.
const unlockFailedMsg = "Could not unlock the vault. Check your passphrase and try again."

const vaultLockedMsg = "The vault is locked. Run 'unlock' first."

// Setup creates a new vault. It prompts for a passphrase twice, applies the
// configured KDF iteration count and leaves the session unlocked.
func (a *App) Setup(ctx context.Context) error {
	configured, err := a.session.Configured(ctx)
	if err != nil {
		return err
	}
	if configured {
		fmt.Println("Vault already configured. Use 'unlock'.")
		return nil
	}

	if a.config.KDFIterations > 0 {
		p, err := a.prefs.Load(ctx)
		if err != nil {
			return err
		}
		if p.Encryption.Iterations != a.config.KDFIterations {
			p.Encryption.Iterations = a.config.KDFIterations
			if err := a.prefs.Save(ctx, p); err != nil {
				return err
			}
		}
	}

	passphrase, err := getPassphrase("Choose a passphrase", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	confirm, err := getPassphrase("Repeat the passphrase", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(passphrase, confirm) {
		fmt.Println("Passphrases do not match.")
		return nil
	}

	if err := a.session.Setup(ctx, string(passphrase)); err != nil {
		if errors.Is(err, common.ErrValidation) {
			fmt.Printf("Passphrase must be at least %d characters.\n", common.MinPassphraseLength)
			return nil
		}
		return err
	}

	fmt.Println("Vault created and unlocked. There is no passphrase recovery; keep it safe.")
	return nil
}

// Unlock prompts for the passphrase and opens the session. Every
// authentication failure prints the same generic message.
func (a *App) Unlock(ctx context.Context) error {
	passphrase, err := getPassphrase("Passphrase", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	ok, err := a.session.Unlock(ctx, string(passphrase))
	if err != nil {
		if errors.Is(err, vault.ErrNotConfigured) {
			fmt.Println("No vault found. Run 'setup' first.")
			return nil
		}
		a.log.Debug(ctx, "unlock failed", "error", err)
		fmt.Println(unlockFailedMsg)
		return nil
	}
	if !ok {
		fmt.Println(unlockFailedMsg)
		return nil
	}

	fmt.Println("Vault unlocked.")
	return nil
}

// Lock discards the session key.
func (a *App) Lock(_ context.Context) error {
	a.session.Lock()
	fmt.Println("Vault locked.")
	return nil
}

// Status prints vault state, envelope counts and, when unlocked, journal
// statistics.
func (a *App) Status(ctx context.Context) error {
	configured, err := a.session.Configured(ctx)
	if err != nil {
		return err
	}
	if !configured {
		fmt.Println("No vault configured.")
		return nil
	}

	entryCount, err := a.entries.Count(ctx)
	if err != nil {
		return err
	}
	storyCount, err := a.stories.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Vault: %s\n", a.getStatus())
	fmt.Printf("Envelopes: %d entries, %d stories\n", entryCount, storyCount)

	if !a.session.Unlocked() {
		return nil
	}

	all, err := a.entries.FindAll(ctx, storage.All)
	if err != nil {
		return err
	}
	now := time.Now()
	totals := textutil.ComputeTotalStats(all)
	streak := textutil.ComputeStreak(all, now)
	fmt.Printf("Journal: %d entries, %d words\n", totals.TotalEntries, totals.TotalWords)
	fmt.Printf("Streak: %d day(s) current, %d longest\n", streak.Current, streak.Longest)
	fmt.Println(formatWeeklyWords(textutil.ComputeWeeklyWords(all, now)))
	return nil
}

// formatWeeklyWords renders the seven-day word chart as a single line,
// today marked with an asterisk.
func formatWeeklyWords(week []textutil.DayWords) string {
	parts := make([]string, 0, len(week))
	for _, d := range week {
		s := fmt.Sprintf("%s %d", d.Day, d.Words)
		if d.IsToday {
			s += "*"
		}
		parts = append(parts, s)
	}
	return "This week: " + strings.Join(parts, "  ")
}
