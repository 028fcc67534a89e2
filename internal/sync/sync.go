// Package sync pushes and pulls the encrypted envelope set to a remote
// backup blob. The remote never sees plaintext: whole envelopes travel
// as-is and merge back by plaintext timestamp only.
package sync

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/logging"
	"github.com/dmitrijs2005/journly/internal/models"
	"github.com/dmitrijs2005/journly/internal/storage"
)

// Payload is the single backup blob exchanged with the remote.
type Payload struct {
	Version   string            `json:"version"`
	SyncedAt  string            `json:"syncedAt"`
	Envelopes []models.Envelope `json:"envelopes"`
}

// Transport moves the backup blob to and from one remote store.
type Transport interface {
	// FindBackupObject returns the remote object id, or "" when no backup
	// exists yet.
	FindBackupObject(ctx context.Context) (string, error)
	Upload(ctx context.Context, p *Payload) error
	Download(ctx context.Context, id string) (*Payload, error)
}

type PushResult struct {
	Uploaded int
}

type PullResult struct {
	Merged  int // Added + Updated
	Added   int
	Updated int
}

// Service orchestrates backup push/pull against one transport.
type Service struct {
	transport Transport
	storage   storage.Storage
	log       logging.Logger
}

func NewService(t Transport, st storage.Storage, log logging.Logger) *Service {
	return &Service{transport: t, storage: st, log: log}
}

// Push exports every local envelope, soft-deleted included, and uploads
// them as one blob. The upload replaces the previous backup wholesale.
func (s *Service) Push(ctx context.Context) (*PushResult, error) {
	envelopes, err := s.storage.ExportAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting envelopes: %w", err)
	}

	err = s.transport.Upload(ctx, &Payload{
		Version:   common.BackupVersion,
		SyncedAt:  models.NowISO(),
		Envelopes: envelopes,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "backup pushed", "envelopes", len(envelopes))
	return &PushResult{Uploaded: len(envelopes)}, nil
}

// Pull downloads the remote backup and merges it in, last write wins per
// envelope id. A remote record replaces the local one only when its
// updatedAt is strictly greater; ties keep local. No remote backup is not
// an error and yields a zero result. Pull never deletes local envelopes.
func (s *Service) Pull(ctx context.Context) (*PullResult, error) {
	id, err := s.transport.FindBackupObject(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return &PullResult{}, nil
	}

	payload, err := s.transport.Download(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &PullResult{}
	for i := range payload.Envelopes {
		remote := &payload.Envelopes[i]

		local, err := s.storage.Get(ctx, remote.Id)
		if err != nil {
			return nil, err
		}
		switch {
		case local == nil:
			if err := s.storage.Put(ctx, remote); err != nil {
				return nil, err
			}
			result.Added++
		case remote.UpdatedAt > local.UpdatedAt:
			if err := s.storage.Put(ctx, remote); err != nil {
				return nil, err
			}
			result.Updated++
		}
	}

	result.Merged = result.Added + result.Updated
	s.log.Info(ctx, "backup pulled",
		"added", result.Added, "updated", result.Updated)
	return result, nil
}
