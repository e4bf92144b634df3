package session

// Event is an abstract input delivered by the host. The session routes each
// event according to the active mode; events that make no sense in the
// current mode are ignored.
type Event interface {
	isEvent()
}

// CharTyped appends a character to the search query.
type CharTyped struct {
	Rune rune
}

// Backspace removes the last character from the search query.
type Backspace struct{}

// MoveCursor shifts the selection by Delta, clamped at both ends. Hosts send
// ±1 for single steps and ±10 for jumps.
type MoveCursor struct {
	Delta int
}

// SwitchStore cycles the active dictionary. Direction is -1 or +1 and wraps
// around at either end.
type SwitchStore struct {
	Direction int
}

// ToggleKind selects which mode toggle a ToggleMode event performs.
type ToggleKind int

const (
	// ToggleLayout flips Default and Compact. Ignored during review.
	ToggleLayout ToggleKind = iota
	// ToggleReview enters review mode, or leaves it back to whichever
	// layout was active before.
	ToggleReview
)

// ToggleMode switches the UI mode.
type ToggleMode struct {
	Kind ToggleKind
}

// Bookmark adds the selected search match to the review deck.
type Bookmark struct{}

// Grade records the review outcome for the displayed due card.
type Grade struct {
	Correct bool
}

// ShowDefinition toggles whether the displayed due card reveals its
// definition. View state only; the card itself is untouched.
type ShowDefinition struct{}

func (CharTyped) isEvent()      {}
func (Backspace) isEvent()      {}
func (MoveCursor) isEvent()     {}
func (SwitchStore) isEvent()    {}
func (ToggleMode) isEvent()     {}
func (Bookmark) isEvent()       {}
func (Grade) isEvent()          {}
func (ShowDefinition) isEvent() {}
