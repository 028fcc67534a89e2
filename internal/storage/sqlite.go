package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/dbx"
	"github.com/dmitrijs2005/journly/internal/models"
	"github.com/dmitrijs2005/journly/internal/storage/migrations"
)

// Open opens (creating if necessary) the local SQLite database at dsn and
// applies pending migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// SQLiteStorage implements Storage over a local SQLite database.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage returns a SQLiteStorage bound to db. The schema must
// already be migrated (see Open).
func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

const upsertQuery = `
	INSERT INTO envelopes (id, type, ciphertext, iv, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		type = excluded.type,
		ciphertext = excluded.ciphertext,
		iv = excluded.iv,
		created_at = excluded.created_at,
		updated_at = excluded.updated_at
`

func upsert(ctx context.Context, db dbx.DBTX, e *models.Envelope) error {
	_, err := db.ExecContext(ctx, upsertQuery,
		e.Id, e.Type, e.CiphertextBase64, e.IvBase64, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert envelope: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Put(ctx context.Context, e *models.Envelope) error {
	return upsert(ctx, s.db, e)
}

func (s *SQLiteStorage) Get(ctx context.Context, id string) (*models.Envelope, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, type, ciphertext, iv, created_at, updated_at FROM envelopes WHERE id = ?`, id)

	e := &models.Envelope{}
	err := row.Scan(&e.Id, &e.Type, &e.CiphertextBase64, &e.IvBase64, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope: %w", err)
	}
	return e, nil
}

func (s *SQLiteStorage) ListByType(ctx context.Context, t models.EnvelopeType, page Page) ([]models.Envelope, error) {
	limit := page.Limit
	if limit == 0 {
		limit = common.DefaultPageSize
	}
	if limit < 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, ciphertext, iv, created_at, updated_at
		FROM envelopes
		WHERE type = ?
		ORDER BY updated_at DESC
		LIMIT ? OFFSET ?`, t, limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list envelopes: %w", err)
	}
	defer rows.Close()

	return scanEnvelopes(rows)
}

func (s *SQLiteStorage) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM envelopes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete envelope: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Count(ctx context.Context, t models.EnvelopeType) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM envelopes WHERE type = ?`, t).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count envelopes: %w", err)
	}
	return n, nil
}

func (s *SQLiteStorage) ExportAll(ctx context.Context) ([]models.Envelope, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, ciphertext, iv, created_at, updated_at
		FROM envelopes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to export envelopes: %w", err)
	}
	defer rows.Close()

	return scanEnvelopes(rows)
}

func (s *SQLiteStorage) ImportAll(ctx context.Context, envelopes []models.Envelope) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for i := range envelopes {
			if err := upsert(ctx, tx, &envelopes[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStorage) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM envelopes`); err != nil {
		return fmt.Errorf("failed to clear envelopes: %w", err)
	}
	return nil
}

func scanEnvelopes(rows *sql.Rows) ([]models.Envelope, error) {
	var result []models.Envelope
	for rows.Next() {
		var e models.Envelope
		if err := rows.Scan(&e.Id, &e.Type, &e.CiphertextBase64, &e.IvBase64, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
