package leitner

import (
	"fmt"
	"sort"
	"time"
)

// MaxBox is the longest-interval box. Box 1 is reviewed most often.
const MaxBox = 5

// DefaultIntervals is the per-box review interval in days.
var DefaultIntervals = []int{1, 2, 4, 6, 10}

// Card is one bookmarked word. Box and the timestamps change only through
// Deck.Grade.
type Card struct {
	Word         string    `json:"word"`
	Definition   string    `json:"definition,omitempty"`
	Box          int       `json:"box"`
	LastReviewed time.Time `json:"lastReviewed"`
	Due          time.Time `json:"due"`
}

// Deck holds the bookmarked cards and the queue of cards currently due for
// review. The queue is only valid between RebuildQueue calls.
type Deck struct {
	cards     map[string]*Card
	queue     []*Card
	cursor    int
	intervals []int

	// Now is the deck clock; tests swap it for a fixed time.
	Now func() time.Time
}

// Option configures a Deck.
type Option func(*Deck)

// WithIntervals overrides the per-box interval table. The table must have
// MaxBox strictly increasing positive day counts.
func WithIntervals(days []int) Option {
	return func(d *Deck) {
		d.intervals = days
	}
}

// NewDeck creates an empty deck.
func NewDeck(opts ...Option) (*Deck, error) {
	d := &Deck{
		cards:     make(map[string]*Card),
		intervals: DefaultIntervals,
		Now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := validateIntervals(d.intervals); err != nil {
		return nil, err
	}
	return d, nil
}

func validateIntervals(days []int) error {
	if len(days) != MaxBox {
		return fmt.Errorf("leitner: need %d intervals, got %d", MaxBox, len(days))
	}
	prev := 0
	for i, d := range days {
		if d <= prev {
			return fmt.Errorf("leitner: intervals must be strictly increasing and positive, box %d has %d", i+1, d)
		}
		prev = d
	}
	return nil
}

// Restore seeds the deck with previously persisted cards. Cards with an
// out-of-range box are clamped rather than dropped.
func (d *Deck) Restore(cards []*Card) {
	for _, c := range cards {
		if c == nil || c.Word == "" {
			continue
		}
		cp := *c
		if cp.Box < 1 {
			cp.Box = 1
		}
		if cp.Box > MaxBox {
			cp.Box = MaxBox
		}
		d.cards[cp.Word] = &cp
	}
}

// Add bookmarks a word into box 1, due immediately. Re-adding an existing
// word is a no-op; in particular it does not reset the card's box.
func (d *Deck) Add(word, definition string) *Card {
	if word == "" {
		return nil
	}
	if c, ok := d.cards[word]; ok {
		return c
	}
	now := d.Now()
	c := &Card{
		Word:         word,
		Definition:   definition,
		Box:          1,
		LastReviewed: now,
		Due:          now,
	}
	d.cards[word] = c
	return c
}

// Card returns the card for word, if bookmarked.
func (d *Deck) Card(word string) (*Card, bool) {
	c, ok := d.cards[word]
	return c, ok
}

// Remove deletes a card. Removal is always an explicit caller action.
func (d *Deck) Remove(word string) bool {
	if _, ok := d.cards[word]; !ok {
		return false
	}
	delete(d.cards, word)
	for i, c := range d.queue {
		if c.Word == word {
			d.queue = append(d.queue[:i], d.queue[i+1:]...)
			break
		}
	}
	d.clampCursor()
	return true
}

// interval returns the review interval for a box.
func (d *Deck) interval(box int) time.Duration {
	if box < 1 {
		box = 1
	}
	if box > MaxBox {
		box = MaxBox
	}
	return time.Duration(d.intervals[box-1]) * 24 * time.Hour
}

// Grade records a review outcome. Correct promotes the card one box, capped
// at MaxBox; incorrect sends it back to box 1. Either way the card leaves
// the current queue and is not due again before its new due time.
func (d *Deck) Grade(c *Card, correct bool) {
	if c == nil {
		return
	}
	card, ok := d.cards[c.Word]
	if !ok {
		return
	}
	if correct {
		if card.Box < MaxBox {
			card.Box++
		}
	} else {
		card.Box = 1
	}
	now := d.Now()
	card.LastReviewed = now
	card.Due = now.Add(d.interval(card.Box))
	for i, q := range d.queue {
		if q.Word == card.Word {
			d.queue = append(d.queue[:i], d.queue[i+1:]...)
			break
		}
	}
	d.clampCursor()
}

// RebuildQueue recomputes the review queue: exactly the cards due at or
// before now, ordered by due time then by box, earlier boxes first on ties.
// The queue cursor resets to the head.
func (d *Deck) RebuildQueue(now time.Time) {
	d.queue = d.queue[:0]
	for _, c := range d.cards {
		if !c.Due.After(now) {
			d.queue = append(d.queue, c)
		}
	}
	sort.SliceStable(d.queue, func(i, j int) bool {
		if d.queue[i].Due.Equal(d.queue[j].Due) {
			return d.queue[i].Box < d.queue[j].Box
		}
		return d.queue[i].Due.Before(d.queue[j].Due)
	})
	d.cursor = 0
}

// NextDue returns the head of the review queue, or nil when nothing is due.
func (d *Deck) NextDue() *Card {
	if len(d.queue) == 0 {
		return nil
	}
	return d.queue[0]
}

// Current returns the due card under the queue cursor.
func (d *Deck) Current() *Card {
	if len(d.queue) == 0 {
		return nil
	}
	return d.queue[d.cursor]
}

// Move shifts the queue cursor, clamped at both ends. With an empty queue it
// is a no-op.
func (d *Deck) Move(delta int) {
	d.cursor += delta
	d.clampCursor()
}

func (d *Deck) clampCursor() {
	if d.cursor < 0 {
		d.cursor = 0
	}
	if max := len(d.queue) - 1; d.cursor > max {
		if max < 0 {
			max = 0
		}
		d.cursor = max
	}
}

// Queue returns the current review queue in order.
func (d *Deck) Queue() []*Card {
	out := make([]*Card, len(d.queue))
	copy(out, d.queue)
	return out
}

// DueCount returns the size of the current review queue.
func (d *Deck) DueCount() int { return len(d.queue) }

// Len returns the total number of cards.
func (d *Deck) Len() int { return len(d.cards) }

// Cards returns a stable snapshot of every card, sorted by word, for
// persistence and listings.
func (d *Deck) Cards() []*Card {
	out := make([]*Card, 0, len(d.cards))
	for _, c := range d.cards {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}
