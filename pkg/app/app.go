package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/lex/pkg/dict"
	"tableflip.dev/lex/pkg/leitner"
	"tableflip.dev/lex/pkg/store"
)

// Service provides high-level operations over the dictionaries and the
// review deck so the TUI and the CLI runners can share logic.
type Service struct {
	Persistence store.Persistence
	Config      store.Config
}

// ErrNotFound is returned when a word cannot be resolved in any dictionary.
var ErrNotFound = errors.New("app: word not found")

// Stores loads every dictionary from the configured directory, ordered by
// file name. Malformed sources are skipped by the store layer.
func (s *Service) Stores(ctx context.Context) ([]*dict.Store, error) {
	if s.Config == nil {
		return nil, errors.New("app: no config loaded")
	}
	return store.LoadStores(s.Config.DictionariesPath())
}

// Deck restores the persisted review deck using the configured intervals.
func (s *Service) Deck(ctx context.Context) (*leitner.Deck, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	opts := []leitner.Option{}
	if s.Config != nil && len(s.Config.Intervals()) > 0 {
		opts = append(opts, leitner.WithIntervals(s.Config.Intervals()))
	}
	deck, err := leitner.NewDeck(opts...)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	deck.Restore(s.Persistence.ListCards(ctx))
	return deck, nil
}

// SaveDeck flushes the full deck state.
func (s *Service) SaveDeck(ctx context.Context, deck *leitner.Deck) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return s.Persistence.SaveDeck(deck)
}

// SaveCard flushes a single card, the cheap path after one grade.
func (s *Service) SaveCard(ctx context.Context, c *leitner.Card) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return s.Persistence.StoreCard(c)
}

// Lookup searches every dictionary for the query: prefix match first,
// substring fallback per store when the prefix finds nothing.
func (s *Service) Lookup(ctx context.Context, query string) (map[string][]dict.Entry, error) {
	stores, err := s.Stores(ctx)
	if err != nil {
		return nil, err
	}
	results := make(map[string][]dict.Entry)
	for _, st := range stores {
		matches := st.PrefixSearch(query)
		if len(matches) == 0 && query != "" {
			matches = st.SubstringSearch(query)
		}
		if len(matches) > 0 {
			results[st.Name()] = matches
		}
	}
	return results, nil
}

// Bookmark adds a card for word. With an empty definition the dictionaries
// are consulted for an exact (case-insensitive) match.
func (s *Service) Bookmark(ctx context.Context, word, definition string) (*leitner.Card, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	if definition == "" {
		def, err := s.resolveDefinition(ctx, word)
		if err != nil {
			return nil, err
		}
		definition = def
	}
	deck, err := s.Deck(ctx)
	if err != nil {
		return nil, err
	}
	c := deck.Add(word, definition)
	if c == nil {
		return nil, errors.New("app: bookmark requires a word")
	}
	if err := s.Persistence.StoreCard(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove deletes a card permanently.
func (s *Service) Remove(ctx context.Context, word string) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	deck, err := s.Deck(ctx)
	if err != nil {
		return err
	}
	if !deck.Remove(word) {
		return fmt.Errorf("app: no card for %q", word)
	}
	return s.Persistence.DeleteCard(word)
}

// DueCards returns the cards due for review right now, queue order.
func (s *Service) DueCards(ctx context.Context, now time.Time) ([]*leitner.Card, error) {
	deck, err := s.Deck(ctx)
	if err != nil {
		return nil, err
	}
	deck.RebuildQueue(now)
	return deck.Queue(), nil
}

func (s *Service) resolveDefinition(ctx context.Context, word string) (string, error) {
	stores, err := s.Stores(ctx)
	if err != nil {
		return "", err
	}
	for _, st := range stores {
		for _, e := range st.PrefixSearch(word) {
			if strings.EqualFold(e.Word, word) {
				return e.Definition, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, word)
}
