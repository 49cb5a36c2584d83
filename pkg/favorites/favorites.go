// Package favorites keeps the list of favorited study references in a
// kv.Store as a JSON array of strings under a fixed key.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/haivivi/devotional/pkg/kv"
)

// Key is where the list is stored.
var Key = kv.Key{"bible_favorites"}

// Store reads and writes the favorites list.
type Store struct {
	kv     kv.Store
	logger *slog.Logger

	mu sync.Mutex
}

// New creates a Store on top of s. A nil logger uses slog.Default().
func New(s kv.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: s, logger: logger}
}

// List returns the favorited references in insertion order. A missing or
// unreadable value yields an empty list.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Contains reports whether ref is a favorite.
func (s *Store) Contains(ctx context.Context, ref string) (bool, error) {
	refs, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(refs, ref), nil
}

// Add appends ref if it is not already present.
func (s *Store) Add(ctx context.Context, ref string) error {
	_, err := s.update(ctx, func(refs []string) []string {
		if slices.Contains(refs, ref) {
			return refs
		}
		return append(refs, ref)
	})
	return err
}

// Remove deletes ref from the list.
func (s *Store) Remove(ctx context.Context, ref string) error {
	_, err := s.update(ctx, func(refs []string) []string {
		return slices.DeleteFunc(refs, func(r string) bool { return r == ref })
	})
	return err
}

// Toggle adds ref if absent and removes it otherwise. It reports whether
// ref is a favorite afterwards.
func (s *Store) Toggle(ctx context.Context, ref string) (bool, error) {
	var added bool
	_, err := s.update(ctx, func(refs []string) []string {
		if slices.Contains(refs, ref) {
			return slices.DeleteFunc(refs, func(r string) bool { return r == ref })
		}
		added = true
		return append(refs, ref)
	})
	return added, err
}

func (s *Store) update(ctx context.Context, fn func([]string) []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	refs = fn(refs)
	data, err := json.Marshal(refs)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, Key, data); err != nil {
		return nil, err
	}
	return refs, nil
}

func (s *Store) load(ctx context.Context) ([]string, error) {
	data, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var refs []string
	if err := json.Unmarshal(data, &refs); err != nil {
		s.logger.WarnContext(ctx, "failed to parse favorites, starting empty", "error", err)
		return []string{}, nil
	}
	if refs == nil {
		refs = []string{}
	}
	return refs, nil
}
