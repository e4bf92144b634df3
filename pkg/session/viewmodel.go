package session

import (
	"time"

	"tableflip.dev/lex/pkg/leitner"
)

// Mode is the process-wide UI mode. It decides both event routing and, for
// the renderer, the layout.
type Mode int

const (
	ModeDefault Mode = iota
	ModeCompact
	ModeLeitner
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeCompact:
		return "compact"
	case ModeLeitner:
		return "leitner"
	}
	return "unknown"
}

// Match is one row of the search result list.
type Match struct {
	Word       string
	Definition string
	Selected   bool
}

// DueCard is the review card currently on screen.
type DueCard struct {
	Word         string
	Definition   string
	Box          int
	Due          time.Time
	LastReviewed time.Time
}

// ViewModel is a read-only snapshot handed to the renderer after every
// event. It fully describes what must be drawn.
type ViewModel struct {
	Mode           Mode
	ActiveStore    string
	Stores         []string
	StoreCount     int
	Query          string
	Matches        []Match
	DueCount       int
	DeckSize       int
	Due            *DueCard
	ShowDefinition bool
}

func dueCardView(c *leitner.Card) *DueCard {
	if c == nil {
		return nil
	}
	return &DueCard{
		Word:         c.Word,
		Definition:   c.Definition,
		Box:          c.Box,
		Due:          c.Due,
		LastReviewed: c.LastReviewed,
	}
}
