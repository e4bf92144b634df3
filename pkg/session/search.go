package session

import "tableflip.dev/lex/pkg/dict"

// searchIndex is the incremental lookup state over the active store: the
// query, the matches it produces, and the selection cursor. It is recomputed
// wholesale on every edit; stores are small enough that rescans beat
// incremental bookkeeping.
type searchIndex struct {
	query   string
	matches []dict.Entry
	cursor  int
}

// recompute refreshes matches against the given store: prefix search first,
// substring fallback when the prefix yields nothing for a non-empty query.
// The cursor resets to the head.
func (si *searchIndex) recompute(store *dict.Store) {
	si.cursor = 0
	if store == nil {
		si.matches = nil
		return
	}
	si.matches = store.PrefixSearch(si.query)
	if len(si.matches) == 0 && si.query != "" {
		si.matches = store.SubstringSearch(si.query)
	}
}

func (si *searchIndex) typeChar(store *dict.Store, r rune) {
	si.query += string(r)
	si.recompute(store)
}

func (si *searchIndex) backspace(store *dict.Store) {
	if si.query == "" {
		return
	}
	runes := []rune(si.query)
	si.query = string(runes[:len(runes)-1])
	si.recompute(store)
}

// move shifts the cursor by delta, clamped to the match range. With no
// matches it is a no-op.
func (si *searchIndex) move(delta int) {
	if len(si.matches) == 0 {
		si.cursor = 0
		return
	}
	si.cursor += delta
	if si.cursor < 0 {
		si.cursor = 0
	}
	if max := len(si.matches) - 1; si.cursor > max {
		si.cursor = max
	}
}

// selected returns the entry under the cursor, or false with no matches.
func (si *searchIndex) selected() (dict.Entry, bool) {
	if len(si.matches) == 0 {
		return dict.Entry{}, false
	}
	return si.matches[si.cursor], true
}
