package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/filex"
	"github.com/dmitrijs2005/journly/internal/sync"
)

func printSyncError(err error) {
	switch {
	case errors.Is(err, common.ErrAuthInvalid):
		fmt.Println("Authentication failed. Configure a valid backup token and try again.")
	case errors.Is(err, common.ErrRateLimited):
		fmt.Println("Rate limited by the backup provider. Wait a moment and try again.")
	default:
		fmt.Println("Sync failed:", err)
	}
}

// Push uploads the encrypted envelope set. It works on ciphertext only, so
// the vault may stay locked.
func (a *App) Push(ctx context.Context) error {
	transport, err := a.buildTransport(ctx)
	if err != nil {
		fmt.Println("Sync unavailable:", err)
		return nil
	}

	result, err := sync.NewService(transport, a.storage, a.log).Push(ctx)
	if err != nil {
		printSyncError(err)
		return nil
	}
	fmt.Printf("Pushed %d envelopes.\n", result.Uploaded)
	return nil
}

// Pull downloads the remote backup and merges it in, last write wins.
func (a *App) Pull(ctx context.Context) error {
	transport, err := a.buildTransport(ctx)
	if err != nil {
		fmt.Println("Sync unavailable:", err)
		return nil
	}

	result, err := sync.NewService(transport, a.storage, a.log).Pull(ctx)
	if err != nil {
		printSyncError(err)
		return nil
	}
	if result.Merged == 0 {
		fmt.Println("Already up to date.")
		return nil
	}
	fmt.Printf("Pulled: %d added, %d updated.\n", result.Added, result.Updated)
	return nil
}

// Export writes a local backup file of all envelopes.
func (a *App) Export(ctx context.Context) error {
	path, count, err := filex.Export(ctx, a.storage, a.config.ExportDir)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d envelopes to %s\n", count, path)
	return nil
}

// Import merges a local backup file into the vault.
func (a *App) Import(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Backup file path", os.Stdout)
	if err != nil {
		return err
	}

	count, err := filex.Import(ctx, a.storage, path)
	if err != nil {
		if errors.Is(err, filex.ErrInvalidBackup) {
			fmt.Println("That file is not a Journly backup.")
			return nil
		}
		return err
	}
	fmt.Printf("Imported %d envelopes.\n", count)
	return nil
}
