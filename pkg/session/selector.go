package session

import "tableflip.dev/lex/pkg/dict"

// selector holds the fixed, ordered set of loaded dictionaries and the index
// of the active one. The set never changes after construction; only the
// cursor moves.
type selector struct {
	stores []*dict.Store
	active int
}

func newSelector(stores []*dict.Store) *selector {
	return &selector{stores: stores}
}

func (s *selector) current() *dict.Store {
	if len(s.stores) == 0 {
		return nil
	}
	return s.stores[s.active]
}

// cycle moves the active index by direction, wrapping past either end.
func (s *selector) cycle(direction int) {
	n := len(s.stores)
	if n == 0 {
		return
	}
	s.active = ((s.active+direction)%n + n) % n
}

func (s *selector) count() int { return len(s.stores) }
