package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/lawdir/internal/core"
)

// Syncer implements core.Syncer over a BlobStore.
type Syncer struct {
	store BlobStore
	key   string
	now   func() time.Time
}

var _ core.Syncer = (*Syncer)(nil)

// NewSyncer stores the directory document under key.
func NewSyncer(store BlobStore, key string) *Syncer {
	return &Syncer{store: store, key: key, now: time.Now}
}

// Backend returns the store name.
func (s *Syncer) Backend() string {
	return s.store.Name()
}

// Pull reads the remote document. A missing document is an empty directory.
func (s *Syncer) Pull(ctx context.Context) ([]core.Record, error) {
	data, err := s.store.Get(ctx, s.key)
	if errors.Is(err, ErrNotExist) {
		return []core.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s get %q: %w", s.store.Name(), s.key, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if doc.Lawyers == nil {
		doc.Lawyers = []core.Record{}
	}
	return doc.Lawyers, nil
}

// Push overwrites the remote document with records.
func (s *Syncer) Push(ctx context.Context, records []core.Record) error {
	data, err := Encode(NewDocument(records, s.now()))
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("%s put %q: %w", s.store.Name(), s.key, err)
	}
	return nil
}
