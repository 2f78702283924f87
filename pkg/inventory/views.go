package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"storeflow/pkg/recent"
)

// ViewEntry is one code of a history resolved against the catalog.
type ViewEntry struct {
	Code  string
	Name  string
	Found bool
}

// NewSessionID returns an identifier for an anonymous browsing session.
func NewSessionID() string {
	return "session-" + uuid.NewString()
}

// RecordView adds code to identifier's history. The product must exist.
// An empty identifier is replaced by a fresh session id, which is
// returned together with the updated history.
func (s *Service) RecordView(ctx context.Context, identifier, code string) (string, []string, error) {
	identifier, code = strings.TrimSpace(identifier), strings.TrimSpace(code)
	if identifier == "" {
		identifier = NewSessionID()
	}
	if _, ok := s.cache.Get(code); !ok {
		return identifier, nil, fmt.Errorf("record view of %q: %w", code, ErrUnknownProduct)
	}
	if err := s.views.Add(ctx, identifier, code); err != nil {
		return identifier, nil, err
	}
	return identifier, s.views.Recent(identifier), nil
}

// History resolves identifier's recent codes, most recent last. It
// reports false when the identifier has no record.
func (s *Service) History(identifier string) ([]ViewEntry, bool) {
	v, ok := s.store.RecentView(strings.TrimSpace(identifier))
	if !ok {
		return nil, false
	}
	return s.resolve(v), true
}

// Histories returns every stored history with resolved entries.
func (s *Service) Histories() map[string][]ViewEntry {
	out := make(map[string][]ViewEntry)
	for _, v := range s.store.RecentViews() {
		out[v.Identifier] = s.resolve(v)
	}
	return out
}

// ClearHistory empties identifier's history.
func (s *Service) ClearHistory(ctx context.Context, identifier string) (bool, error) {
	return s.views.Clear(ctx, strings.TrimSpace(identifier))
}

func (s *Service) resolve(v recent.View) []ViewEntry {
	entries := make([]ViewEntry, 0, len(v.Stack))
	for _, code := range v.Stack {
		e := ViewEntry{Code: code, Name: code}
		if p, ok := s.cache.Get(code); ok {
			e.Name, e.Found = p.Name, true
		}
		entries = append(entries, e)
	}
	return entries
}
