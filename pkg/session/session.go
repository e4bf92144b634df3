// Package session is the search and review engine behind the lex UI: the
// multi-dictionary incremental lookup state, the mode state machine that
// routes input, and the Leitner review queue. It performs no I/O; hosts feed
// it events and render the returned view model.
package session

import (
	"time"

	"tableflip.dev/lex/pkg/dict"
	"tableflip.dev/lex/pkg/leitner"
)

// Session routes events to the search index, the store selector, or the
// review deck depending on the active mode, and exposes the render-facing
// view model. One event is processed to completion before the next; there is
// no internal locking and none is needed.
type Session struct {
	stores *selector
	search *searchIndex
	deck   *leitner.Deck

	mode     Mode
	prevMode Mode // layout to return to when leaving review
	showDef  bool

	// Now is the session clock for queue rebuilds; tests pin it.
	Now func() time.Time
}

// New builds a session over already-loaded dictionaries and a restored deck.
// The first store becomes active and its full entry list is the initial
// match set.
func New(stores []*dict.Store, deck *leitner.Deck) *Session {
	s := &Session{
		stores:   newSelector(stores),
		search:   &searchIndex{},
		deck:     deck,
		mode:     ModeDefault,
		prevMode: ModeDefault,
		Now:      time.Now,
	}
	s.search.recompute(s.stores.current())
	return s
}

// Deck exposes the review deck for persistence.
func (s *Session) Deck() *leitner.Deck { return s.deck }

// Mode returns the active UI mode.
func (s *Session) Mode() Mode { return s.mode }

// Handle processes one input event and returns the resulting view model.
// Events that do not apply to the active mode are ignored, never an error.
func (s *Session) Handle(ev Event) ViewModel {
	switch ev := ev.(type) {
	case ToggleMode:
		s.toggleMode(ev.Kind)
	case CharTyped:
		if s.mode != ModeLeitner {
			s.search.typeChar(s.stores.current(), ev.Rune)
		}
	case Backspace:
		if s.mode != ModeLeitner {
			s.search.backspace(s.stores.current())
		}
	case MoveCursor:
		if s.mode == ModeLeitner {
			s.deck.Move(ev.Delta)
			s.showDef = false
		} else {
			s.search.move(ev.Delta)
		}
	case SwitchStore:
		if s.mode != ModeLeitner {
			s.stores.cycle(ev.Direction)
			s.search.recompute(s.stores.current())
		}
	case Bookmark:
		if s.mode != ModeLeitner {
			if e, ok := s.search.selected(); ok {
				s.deck.Add(e.Word, e.Definition)
			}
		}
	case Grade:
		if s.mode == ModeLeitner {
			if c := s.deck.Current(); c != nil {
				s.deck.Grade(c, ev.Correct)
				s.deck.RebuildQueue(s.Now())
				s.showDef = false
			}
		}
	case ShowDefinition:
		if s.mode == ModeLeitner {
			s.showDef = !s.showDef
		}
	}
	return s.View()
}

func (s *Session) toggleMode(kind ToggleKind) {
	switch kind {
	case ToggleLayout:
		switch s.mode {
		case ModeDefault:
			s.mode = ModeCompact
		case ModeCompact:
			s.mode = ModeDefault
		}
		// no-op during review
	case ToggleReview:
		if s.mode == ModeLeitner {
			s.mode = s.prevMode
			return
		}
		s.prevMode = s.mode
		s.mode = ModeLeitner
		s.showDef = false
		s.deck.RebuildQueue(s.Now())
	}
}

// View snapshots the current state without processing an event.
func (s *Session) View() ViewModel {
	vm := ViewModel{
		Mode:           s.mode,
		StoreCount:     s.stores.count(),
		Query:          s.search.query,
		DueCount:       s.deck.DueCount(),
		DeckSize:       s.deck.Len(),
		ShowDefinition: s.showDef,
	}
	if store := s.stores.current(); store != nil {
		vm.ActiveStore = store.Name()
	}
	vm.Stores = make([]string, 0, s.stores.count())
	for _, st := range s.stores.stores {
		vm.Stores = append(vm.Stores, st.Name())
	}
	vm.Matches = make([]Match, len(s.search.matches))
	for i, e := range s.search.matches {
		vm.Matches[i] = Match{
			Word:       e.Word,
			Definition: e.Definition,
			Selected:   i == s.search.cursor,
		}
	}
	if s.mode == ModeLeitner {
		vm.Due = dueCardView(s.deck.Current())
	}
	return vm
}
