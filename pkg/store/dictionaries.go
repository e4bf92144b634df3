package store

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"tableflip.dev/lex/pkg/dict"
)

// LoadStores scans dir for dictionary sources and loads each into an
// immutable store, ordered by file name. Two formats are recognized:
//
//   - *.jsonl: one JSON object per line with "word" and "definition" (or a
//     "meanings" list, one meaning per line of the definition)
//   - *.db: a SQLite database with a dictionary(word, definition) table
//
// A malformed source is reported on stderr and skipped; the remaining
// sources still load. An empty or missing directory is not an error, it
// just yields no stores.
func LoadStores(dir string) ([]*dict.Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read dictionaries directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".jsonl", ".db":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	stores := make([]*dict.Store, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		base := strings.TrimSuffix(name, filepath.Ext(name))

		var (
			s   *dict.Store
			err error
		)
		switch filepath.Ext(name) {
		case ".jsonl":
			s, err = loadJSONL(base, path)
		case ".db":
			s, err = loadSQLite(base, path)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
			continue
		}
		stores = append(stores, s)
	}
	return stores, nil
}

// jsonlEntry accepts both the plain word/definition shape and the gloss
// shape with a meanings list.
type jsonlEntry struct {
	Word       string   `json:"word"`
	Definition string   `json:"definition"`
	Pos        string   `json:"pos"`
	Meanings   []string `json:"meanings"`
}

func (j jsonlEntry) toEntry() dict.Entry {
	def := j.Definition
	if def == "" && len(j.Meanings) > 0 {
		def = strings.Join(j.Meanings, "\n")
	}
	if j.Pos != "" {
		def = fmt.Sprintf("(%s) %s", j.Pos, def)
	}
	return dict.Entry{Word: j.Word, Definition: def}
}

func loadJSONL(name, path string) (*dict.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []dict.Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var j jsonlEntry
		if err := json.Unmarshal([]byte(raw), &j); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", dict.ErrLoad, line, err)
		}
		entries = append(entries, j.toEntry())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dict.New(name, entries)
}

func loadSQLite(name, path string) (*dict.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT word, definition FROM dictionary")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dict.ErrLoad, err)
	}
	defer rows.Close()

	var entries []dict.Entry
	for rows.Next() {
		var e dict.Entry
		if err := rows.Scan(&e.Word, &e.Definition); err != nil {
			return nil, fmt.Errorf("%w: %v", dict.ErrLoad, err)
		}
		// Some dictionary exports carry CR-delimited definitions.
		e.Definition = strings.ReplaceAll(e.Definition, "\r", "\n")
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dict.New(name, entries)
}
