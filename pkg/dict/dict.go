package dict

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrLoad marks a dictionary source that could not be turned into a store.
// Callers are expected to report it and keep loading the remaining sources.
var ErrLoad = errors.New("dict: malformed dictionary source")

// Entry is a single word/definition pair. Entries are immutable once the
// owning store has been created.
type Entry struct {
	Word       string `json:"word"`
	Definition string `json:"definition,omitempty"`
}

// Store is a loaded-once dictionary: a named, ordered collection of entries
// sorted case-insensitively by word. A store never changes after New returns.
type Store struct {
	name    string
	entries []Entry
	keys    []string // lower-cased words, parallel to entries
}

// New builds a store from raw entries. Entries missing a word fail the whole
// source with an ErrLoad-wrapped error. The sort is stable so duplicate words
// keep their source order.
func New(name string, entries []Entry) (*Store, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: store name required", ErrLoad)
	}
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	for i, e := range sorted {
		if e.Word == "" {
			return nil, fmt.Errorf("%w: %s: entry %d has no word", ErrLoad, name, i)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Word) < strings.ToLower(sorted[j].Word)
	})
	keys := make([]string, len(sorted))
	for i, e := range sorted {
		keys[i] = strings.ToLower(e.Word)
	}
	return &Store{name: name, entries: sorted, keys: keys}, nil
}

// Name returns the store name, typically the source file base name.
func (s *Store) Name() string { return s.name }

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Entries returns a copy of the full sorted entry list.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// PrefixSearch returns every entry whose word starts with q, ignoring case,
// in store order. An empty q returns the full entry list. The sorted keys
// make this a binary-search range scan rather than a full pass.
func (s *Store) PrefixSearch(q string) []Entry {
	if q == "" {
		return s.Entries()
	}
	low := strings.ToLower(q)
	start := sort.SearchStrings(s.keys, low)
	var out []Entry
	for i := start; i < len(s.keys); i++ {
		if !strings.HasPrefix(s.keys[i], low) {
			break
		}
		out = append(out, s.entries[i])
	}
	return out
}

// SubstringSearch returns every entry whose word contains q anywhere,
// ignoring case, in store order. Used as the fallback when a prefix search
// comes up empty.
func (s *Store) SubstringSearch(q string) []Entry {
	if q == "" {
		return s.Entries()
	}
	low := strings.ToLower(q)
	var out []Entry
	for i, key := range s.keys {
		if strings.Contains(key, low) {
			out = append(out, s.entries[i])
		}
	}
	return out
}
