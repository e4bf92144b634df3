package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/lex/pkg/leitner"
)

type testConfig struct {
	path  string
	dicts string
}

func (t testConfig) BasePath() string         { return t.path }
func (t testConfig) DictionariesPath() string { return t.dicts }
func (t testConfig) Intervals() []int         { return leitner.DefaultIntervals }
func (t testConfig) SaveOnGrade() bool        { return true }

func TestDeckRoundTrip(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	card := &leitner.Card{
		Word:         "talo",
		Definition:   "house",
		Box:          3,
		LastReviewed: now,
		Due:          now.AddDate(0, 0, 4),
	}
	if err := p.StoreCard(card); err != nil {
		t.Fatalf("store card: %v", err)
	}

	got := p.ListCards(context.Background())
	if len(got) != 1 {
		t.Fatalf("expected 1 card, got %d", len(got))
	}
	if got[0].Word != "talo" || got[0].Box != 3 {
		t.Fatalf("unexpected card: %+v", got[0])
	}
	if !got[0].Due.Equal(card.Due) {
		t.Fatalf("due timestamp lost: %v vs %v", got[0].Due, card.Due)
	}
}

func TestStoreCardOverwritesByWord(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	if err := p.StoreCard(&leitner.Card{Word: "koira", Box: 1}); err != nil {
		t.Fatalf("store card: %v", err)
	}
	if err := p.StoreCard(&leitner.Card{Word: "koira", Box: 2}); err != nil {
		t.Fatalf("store card again: %v", err)
	}

	got := p.ListCards(context.Background())
	if len(got) != 1 {
		t.Fatalf("same word must map to one file, got %d cards", len(got))
	}
	if got[0].Box != 2 {
		t.Fatalf("expected latest write to win, got box %d", got[0].Box)
	}
}

func TestSaveDeckPrunesRemovedCards(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	deck, err := leitner.NewDeck()
	if err != nil {
		t.Fatalf("deck: %v", err)
	}
	deck.Add("one", "")
	deck.Add("two", "")
	if err := p.SaveDeck(deck); err != nil {
		t.Fatalf("save deck: %v", err)
	}
	if got := p.ListCards(context.Background()); len(got) != 2 {
		t.Fatalf("expected 2 cards persisted, got %d", len(got))
	}

	deck.Remove("one")
	if err := p.SaveDeck(deck); err != nil {
		t.Fatalf("save deck after removal: %v", err)
	}
	got := p.ListCards(context.Background())
	if len(got) != 1 || got[0].Word != "two" {
		t.Fatalf("removed card must be pruned on save, got %+v", got)
	}
}

func TestDeleteCard(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if err := p.StoreCard(&leitner.Card{Word: "kissa", Box: 1}); err != nil {
		t.Fatalf("store card: %v", err)
	}
	if err := p.DeleteCard("kissa"); err != nil {
		t.Fatalf("delete card: %v", err)
	}
	if got := p.ListCards(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty deck after delete, got %d", len(got))
	}
}

func TestPersistenceWatchEmitsDeckChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.StoreCard(&leitner.Card{Word: "talo", Box: 1}); err != nil {
		t.Fatalf("store card: %v", err)
	}

	select {
	case evt := <-ch:
		if evt.Type != EventDeckChanged {
			t.Fatalf("unexpected event type %v", evt.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for deck change event")
	}
}
