// Package firebase implements the catalog store against the Go-Lives
// Catalog's Firebase Realtime Database. Records live under /properties
// keyed by id; updates use merge semantics so untouched fields at the
// destination survive a write.
package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/golives/glc/internal/debug"
	"github.com/golives/glc/internal/types"
)

const recordsPath = "properties"

// Config holds the connection settings for the catalog database.
type Config struct {
	DatabaseURL     string
	CredentialsFile string // service account key, e.g. cert.json
}

// FirebaseStore implements catalog.Store on the Realtime Database.
type FirebaseStore struct {
	client *db.Client
}

// New authenticates against the catalog with a service account key and
// returns a connected store.
func New(ctx context.Context, cfg Config) (*FirebaseStore, error) {
	app, err := firebase.NewApp(ctx,
		&firebase.Config{DatabaseURL: cfg.DatabaseURL},
		option.WithCredentialsFile(cfg.CredentialsFile),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}
	return &FirebaseStore{client: client}, nil
}

// Records reads the full /properties collection in store order. The
// catalog stores records as an array indexed by id, so holes left by
// deleted records come back as nils and are skipped.
func (s *FirebaseStore) Records(ctx context.Context) ([]*types.Record, error) {
	var raw []*types.Record
	if err := s.client.NewRef(recordsPath).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", recordsPath, err)
	}
	records := make([]*types.Record, 0, len(raw))
	for _, r := range raw {
		if r != nil {
			records = append(records, r)
		}
	}
	debug.Logf("catalog: read %d records from %s\n", len(records), recordsPath)
	return records, nil
}

// Update writes rec at /properties/{id} with merge semantics.
func (s *FirebaseStore) Update(ctx context.Context, id int, rec *types.Record) error {
	ref := s.client.NewRef(fmt.Sprintf("%s/%d", recordsPath, id))
	if err := ref.Update(ctx, rec.UpdateMap()); err != nil {
		return fmt.Errorf("failed to write record %d: %w", id, err)
	}
	return nil
}

// Delete removes /properties/{id}.
func (s *FirebaseStore) Delete(ctx context.Context, id int) error {
	ref := s.client.NewRef(fmt.Sprintf("%s/%d", recordsPath, id))
	if err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}
	return nil
}

// Close is a no-op; the database client holds no closable resources.
func (s *FirebaseStore) Close() error {
	return nil
}
