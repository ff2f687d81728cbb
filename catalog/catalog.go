// Package catalog lists the anti-patterns and runs their demos.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/jeffsasaki/antipatterns/patterns/boatanchor"
	"github.com/jeffsasaki/antipatterns/patterns/copypaste"
	"github.com/jeffsasaki/antipatterns/patterns/deadcode"
	"github.com/jeffsasaki/antipatterns/patterns/godobject"
	"github.com/jeffsasaki/antipatterns/patterns/goldenhammer"
	"github.com/jeffsasaki/antipatterns/patterns/hardcoding"
	"github.com/jeffsasaki/antipatterns/patterns/lavaflow"
	"github.com/jeffsasaki/antipatterns/patterns/leaky"
	"github.com/jeffsasaki/antipatterns/patterns/reinventing"
	"github.com/jeffsasaki/antipatterns/patterns/spaghetti"
)

// ErrNotFound is returned for an unknown slug.
var ErrNotFound = errors.New("anti-pattern not found")

//go:embed catalog.yaml
var catalogYAML []byte

// DemoFunc writes a demonstration of one anti-pattern to w.
type DemoFunc func(ctx context.Context, w io.Writer) error

type Entry struct {
	Slug     string   `yaml:"slug" json:"slug"`
	Name     string   `yaml:"name" json:"name"`
	Summary  string   `yaml:"summary" json:"summary"`
	Symptoms []string `yaml:"symptoms" json:"symptoms"`
	Remedies []string `yaml:"remedies" json:"remedies"`
}

var demos = map[string]DemoFunc{
	"boat-anchor":           boatanchor.Demo,
	"copy-paste":            copypaste.Demo,
	"dead-code":             deadcode.Demo,
	"god-object":            godobject.Demo,
	"golden-hammer":         goldenhammer.Demo,
	"hard-coding":           hardcoding.Demo,
	"lava-flow":             lavaflow.Demo,
	"leaky-abstractions":    leaky.Demo,
	"reinventing-the-wheel": reinventing.Demo,
	"spaghetti-code":        spaghetti.Demo,
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	entries []Entry
	index   map[string]int
	demos   map[string]DemoFunc
}

// Load parses the embedded catalog and binds every entry to its demo.
func Load() (*Catalog, error) {
	return Parse(catalogYAML, demos)
}

// Parse builds a Catalog from YAML. Every entry needs a demo and every demo
// needs an entry.
func Parse(data []byte, demos map[string]DemoFunc) (*Catalog, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		entries: entries,
		index:   make(map[string]int, len(entries)),
		demos:   make(map[string]DemoFunc, len(entries)),
	}
	for i, e := range entries {
		if e.Slug == "" {
			return nil, fmt.Errorf("catalog entry %d has no slug", i)
		}
		if _, dup := c.index[e.Slug]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", e.Slug)
		}
		demo, ok := demos[e.Slug]
		if !ok {
			return nil, fmt.Errorf("catalog entry %q has no demo", e.Slug)
		}
		c.index[e.Slug] = i
		c.demos[e.Slug] = demo
	}

	var orphans []string
	for slug := range demos {
		if _, ok := c.index[slug]; !ok {
			orphans = append(orphans, slug)
		}
	}
	if len(orphans) > 0 {
		sort.Strings(orphans)
		return nil, fmt.Errorf("demos without catalog entry: %v", orphans)
	}
	return c, nil
}

// List returns the entries in catalog order.
func (c *Catalog) List() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Lookup(slug string) (Entry, error) {
	i, ok := c.index[slug]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return c.entries[i], nil
}

// Run executes the demo for slug, writing its output to w.
func (c *Catalog) Run(ctx context.Context, slug string, w io.Writer) error {
	demo, ok := c.demos[slug]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return demo(ctx, w)
}

// RunString is Run into a buffer.
func (c *Catalog) RunString(ctx context.Context, slug string) (string, error) {
	var buf bytes.Buffer
	err := c.Run(ctx, slug, &buf)
	return buf.String(), err
}
