// Package stories holds named fixture override sets, one catalog entry per
// page state worth previewing.
package stories

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-auththeme/pkg/fixture"
	"github.com/goliatone/go-auththeme/pkg/page"
)

// TextCodeStoryNotFound tags lookups of unknown pages or stories.
const TextCodeStoryNotFound = "STORY_NOT_FOUND"

//go:embed stories/*.yaml
var embedded embed.FS

// Story is a named page state.
type Story struct {
	Page        page.ID
	Name        string
	Title       string
	Description string
	Overrides   fixture.Overrides
}

// Context builds the page context of the story. extra overrides apply after
// the story's own.
func (s Story) Context(extra ...fixture.Overrides) (*page.Context, error) {
	sets := append([]fixture.Overrides{s.Overrides}, extra...)
	pc, err := fixture.Build(s.Page, sets...)
	if err != nil {
		return nil, fmt.Errorf("stories: build %s/%s: %w", s.Page.Name(), s.Name, err)
	}
	return pc, nil
}

// Catalog stores stories by page, keeping declaration order.
type Catalog struct {
	mu      sync.RWMutex
	stories map[page.ID][]Story
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{stories: make(map[page.ID][]Story)}
}

// Register adds a story. Names are unique per page, ignoring case.
func (c *Catalog) Register(story Story) error {
	story.Name = strings.TrimSpace(story.Name)
	if story.Page == "" {
		return fmt.Errorf("stories: story %q has no page", story.Name)
	}
	if story.Name == "" {
		return fmt.Errorf("stories: %s story name is required", story.Page)
	}
	if story.Title == "" {
		story.Title = story.Name
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.stories[story.Page] {
		if strings.EqualFold(existing.Name, story.Name) {
			return fmt.Errorf("stories: %s story %q already registered", story.Page, story.Name)
		}
	}
	c.stories[story.Page] = append(c.stories[story.Page], story)
	return nil
}

// MustRegister panics on registration failure.
func (c *Catalog) MustRegister(story Story) {
	if err := c.Register(story); err != nil {
		panic(err)
	}
}

// Get looks up a story. Page IDs accept the bare name ("register"); story
// names match ignoring case.
func (c *Catalog) Get(id page.ID, name string) (Story, error) {
	id = page.ParseID(string(id))
	name = strings.TrimSpace(name)

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, story := range c.stories[id] {
		if strings.EqualFold(story.Name, name) {
			return story, nil
		}
	}
	return Story{}, goerrors.New(
		fmt.Sprintf("stories: %s story %q not found", id.Name(), name),
		goerrors.CategoryNotFound,
	).WithTextCode(TextCodeStoryNotFound)
}

// List returns the stories of one page in declaration order.
func (c *Catalog) List(id page.ID) []Story {
	id = page.ParseID(string(id))

	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]Story(nil), c.stories[id]...)
}

// Pages returns the pages that have stories: known pages in their canonical
// order, then the rest sorted.
func (c *Catalog) Pages() []page.ID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]page.ID, 0, len(c.stories))
	for id := range c.stories {
		out = append(out, id)
	}
	rank := make(map[page.ID]int)
	for i, id := range page.Known() {
		rank[id] = i + 1
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank[out[i]], rank[out[j]]
		switch {
		case ri > 0 && rj > 0:
			return ri < rj
		case ri > 0 || rj > 0:
			return ri > 0
		}
		return out[i] < out[j]
	})
	return out
}

// Len reports the number of stories across pages.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, list := range c.stories {
		total += len(list)
	}
	return total
}

type storyFile struct {
	Page    string       `yaml:"page"`
	Stories []storyEntry `yaml:"stories"`
}

type storyEntry struct {
	Name        string            `yaml:"name"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Overrides   fixture.Overrides `yaml:"overrides"`
}

// Load reads every *.yaml file at the root of fsys into a new catalog. Each
// story is built once so fixtures that fail the consistency check are
// reported at load time.
func Load(fsys fs.FS) (*Catalog, error) {
	matches, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("stories: list files: %w", err)
	}
	sort.Strings(matches)

	catalog := NewCatalog()
	for _, name := range matches {
		if err := catalog.loadFile(fsys, name); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func (c *Catalog) loadFile(fsys fs.FS, name string) error {
	file, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("stories: open %s: %w", name, err)
	}
	defer file.Close()

	var doc storyFile
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("stories: decode %s: %w", name, err)
	}

	id := page.ParseID(doc.Page)
	if id == "" {
		id = page.ParseID(strings.TrimSuffix(path.Base(name), path.Ext(name)))
	}
	for _, entry := range doc.Stories {
		story := Story{
			Page:        id,
			Name:        entry.Name,
			Title:       entry.Title,
			Description: entry.Description,
			Overrides:   entry.Overrides,
		}
		if _, err := story.Context(); err != nil {
			return fmt.Errorf("stories: %s: %w", name, err)
		}
		if err := c.Register(story); err != nil {
			return err
		}
	}
	return nil
}

// EmbeddedFS exposes the built-in story files.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embedded, "stories")
	if err != nil {
		return embedded
	}
	return sub
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog of built-in stories, loaded once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(EmbeddedFS())
	})
	return defaultCatalog, defaultErr
}
