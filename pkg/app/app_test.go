package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/lex/pkg/leitner"
	"tableflip.dev/lex/pkg/store"
)

type testConfig struct {
	path  string
	dicts string
}

func (t testConfig) BasePath() string         { return t.path }
func (t testConfig) DictionariesPath() string { return t.dicts }
func (t testConfig) Intervals() []int         { return leitner.DefaultIntervals }
func (t testConfig) SaveOnGrade() bool        { return true }

func testService(t *testing.T) (*Service, testConfig) {
	t.Helper()
	cfg := testConfig{path: t.TempDir(), dicts: t.TempDir()}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return &Service{Persistence: p, Config: cfg}, cfg
}

func writeDictionary(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}
}

func TestLookupAcrossStores(t *testing.T) {
	svc, cfg := testService(t)
	writeDictionary(t, cfg.dicts, "en.jsonl", `{"word":"apple","definition":"a round fruit"}
{"word":"banana","definition":"a long yellow fruit"}
`)
	writeDictionary(t, cfg.dicts, "fi.jsonl", `{"word":"appelsiini","definition":"orange"}
`)

	results, err := svc.Lookup(context.Background(), "app")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected matches from both stores, got %d", len(results))
	}
	if len(results["en"]) != 1 || results["en"][0].Word != "apple" {
		t.Fatalf("unexpected en matches: %+v", results["en"])
	}
	if len(results["fi"]) != 1 || results["fi"][0].Word != "appelsiini" {
		t.Fatalf("unexpected fi matches: %+v", results["fi"])
	}
}

func TestBookmarkResolvesDefinition(t *testing.T) {
	svc, cfg := testService(t)
	writeDictionary(t, cfg.dicts, "en.jsonl", `{"word":"apple","definition":"a round fruit"}
`)

	ctx := context.Background()
	c, err := svc.Bookmark(ctx, "apple", "")
	if err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	if c.Definition != "a round fruit" {
		t.Fatalf("definition should resolve from the dictionary, got %q", c.Definition)
	}

	deck, err := svc.Deck(ctx)
	if err != nil {
		t.Fatalf("deck: %v", err)
	}
	if deck.Len() != 1 {
		t.Fatalf("expected card persisted, deck has %d", deck.Len())
	}
}

func TestBookmarkUnknownWord(t *testing.T) {
	svc, _ := testService(t)
	_, err := svc.Bookmark(context.Background(), "nosuchword", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookmarkKeepsExistingBox(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.Bookmark(ctx, "talo", "house"); err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	deck, err := svc.Deck(ctx)
	if err != nil {
		t.Fatalf("deck: %v", err)
	}
	deck.RebuildQueue(time.Now())
	deck.Grade(deck.NextDue(), true)
	if err := svc.SaveDeck(ctx, deck); err != nil {
		t.Fatalf("save deck: %v", err)
	}

	if _, err := svc.Bookmark(ctx, "talo", "house"); err != nil {
		t.Fatalf("bookmark again: %v", err)
	}
	deck, err = svc.Deck(ctx)
	if err != nil {
		t.Fatalf("deck reload: %v", err)
	}
	cards := deck.Cards()
	if len(cards) != 1 || cards[0].Box != 2 {
		t.Fatalf("re-bookmark must not reset the box, got %+v", cards)
	}
}

func TestRemove(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	if _, err := svc.Bookmark(ctx, "talo", "house"); err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	if err := svc.Remove(ctx, "talo"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	deck, err := svc.Deck(ctx)
	if err != nil {
		t.Fatalf("deck: %v", err)
	}
	if deck.Len() != 0 {
		t.Fatalf("card should be gone, deck has %d", deck.Len())
	}
	if err := svc.Remove(ctx, "talo"); err == nil {
		t.Fatalf("removing a missing card should error")
	}
}

func TestDueCards(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.Bookmark(ctx, "first", "x"); err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	if _, err := svc.Bookmark(ctx, "second", "y"); err != nil {
		t.Fatalf("bookmark: %v", err)
	}

	due, err := svc.DueCards(ctx, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("due cards: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("both fresh cards are due, got %d", len(due))
	}

	// Grading pushes a card out of the due window.
	deck, err := svc.Deck(ctx)
	if err != nil {
		t.Fatalf("deck: %v", err)
	}
	deck.RebuildQueue(time.Now())
	deck.Grade(deck.NextDue(), true)
	if err := svc.SaveDeck(ctx, deck); err != nil {
		t.Fatalf("save: %v", err)
	}
	due, err = svc.DueCards(ctx, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("due cards: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("graded card should not be due, got %d", len(due))
	}
}
