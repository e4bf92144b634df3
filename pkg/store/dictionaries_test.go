package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadStoresJSONL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fruit.jsonl", `{"word":"banana","definition":"a long yellow fruit"}
{"word":"apple","definition":"a round fruit"}
`)

	stores, err := LoadStores(dir)
	if err != nil {
		t.Fatalf("load stores: %v", err)
	}
	if len(stores) != 1 {
		t.Fatalf("expected 1 store, got %d", len(stores))
	}
	s := stores[0]
	if s.Name() != "fruit" {
		t.Fatalf("store name should drop the extension, got %q", s.Name())
	}
	entries := s.Entries()
	if len(entries) != 2 || entries[0].Word != "apple" {
		t.Fatalf("entries should load sorted, got %+v", entries)
	}
}

func TestLoadStoresGlossShape(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gloss.jsonl", `{"word":"juosta","pos":"verb","meanings":["to run","to flow"]}
`)

	stores, err := LoadStores(dir)
	if err != nil {
		t.Fatalf("load stores: %v", err)
	}
	if len(stores) != 1 {
		t.Fatalf("expected 1 store, got %d", len(stores))
	}
	e := stores[0].Entries()[0]
	if e.Word != "juosta" {
		t.Fatalf("unexpected word %q", e.Word)
	}
	if e.Definition != "(verb) to run\nto flow" {
		t.Fatalf("meanings should fold into the definition, got %q", e.Definition)
	}
}

func TestLoadStoresSkipsMalformedSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.jsonl", `{"word":`)
	writeFile(t, dir, "good.jsonl", `{"word":"ok","definition":"fine"}
`)

	stores, err := LoadStores(dir)
	if err != nil {
		t.Fatalf("load stores: %v", err)
	}
	if len(stores) != 1 || stores[0].Name() != "good" {
		t.Fatalf("malformed source must be skipped, got %d stores", len(stores))
	}
}

func TestLoadStoresSQLite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE dictionary (word TEXT, definition TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO dictionary (word, definition) VALUES ('talo', 'house'), ('katu', 'street')`); err != nil {
		t.Fatalf("insert rows: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close sqlite: %v", err)
	}

	stores, err := LoadStores(dir)
	if err != nil {
		t.Fatalf("load stores: %v", err)
	}
	if len(stores) != 1 {
		t.Fatalf("expected 1 store, got %d", len(stores))
	}
	s := stores[0]
	if s.Name() != "words" || s.Len() != 2 {
		t.Fatalf("unexpected store %q with %d entries", s.Name(), s.Len())
	}
	if got := s.PrefixSearch("ta"); len(got) != 1 || got[0].Definition != "house" {
		t.Fatalf("unexpected lookup result: %+v", got)
	}
}

func TestLoadStoresMissingDirectory(t *testing.T) {
	stores, err := LoadStores(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing directory should not error, got %v", err)
	}
	if len(stores) != 0 {
		t.Fatalf("expected no stores, got %d", len(stores))
	}
}

func TestLoadStoresOrderedByFileName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.jsonl", `{"word":"two"}
`)
	writeFile(t, dir, "a.jsonl", `{"word":"one"}
`)

	stores, err := LoadStores(dir)
	if err != nil {
		t.Fatalf("load stores: %v", err)
	}
	if len(stores) != 2 || stores[0].Name() != "a" || stores[1].Name() != "b" {
		t.Fatalf("stores must load in file-name order, got %+v", stores)
	}
}
