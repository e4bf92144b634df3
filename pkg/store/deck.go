package store

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/lex/pkg/leitner"
)

const cardsBucket = "cards"

// Persistence is the deck storage contract: load everything at startup, save
// after grading or bookmarking, and watch for out-of-process changes.
type Persistence interface {
	ListCards(ctx context.Context) []*leitner.Card
	StoreCard(c *leitner.Card) error
	DeleteCard(word string) error
	SaveDeck(d *leitner.Deck) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*leitner.Card, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	c := leitner.Card{}
	if err := json.Unmarshal(val, &c); err != nil {
		return nil, err
	}
	if c.Word == "" {
		return nil, fmt.Errorf("store: card %s has no word", key)
	}
	return &c, nil
}

// ListCards reads every card under the deck path. Unreadable cards are
// reported on stderr and skipped so one bad file cannot hide the rest of the
// deck.
func (p *persistence) ListCards(ctx context.Context) []*leitner.Card {
	all := make([]*leitner.Card, 0)
	for key := range p.d.Keys(ctx.Done()) {
		c, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, c)
	}
	return all
}

func (p *persistence) StoreCard(c *leitner.Card) error {
	if c == nil || c.Word == "" {
		return fmt.Errorf("store: card requires a word")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(c.Word), data)
}

func (p *persistence) DeleteCard(word string) error {
	return p.d.Erase(toKey(word))
}

// SaveDeck writes the full deck state and prunes cards that no longer exist,
// so explicit removals in a session stick.
func (p *persistence) SaveDeck(d *leitner.Deck) error {
	keep := make(map[string]struct{})
	for _, c := range d.Cards() {
		if err := p.StoreCard(c); err != nil {
			return err
		}
		keep[toKey(c.Word)] = struct{}{}
	}
	for key := range p.d.Keys(nil) {
		if _, ok := keep[key]; ok {
			continue
		}
		if err := p.d.Erase(key); err != nil {
			return err
		}
	}
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `cards-<digest>`. Words are hashed so arbitrary unicode words
// become safe, fixed-length file names.
func toKey(word string) string {
	sum := md5.Sum([]byte(word))
	return fmt.Sprintf("%s-%x", cardsBucket, sum[:8])
}
