package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-auththeme/pkg/page"
	"github.com/goliatone/go-auththeme/pkg/stories"
)

// PickStory resolves a story from the flags, asking through d for whatever
// is missing. A non-empty pageName or storyName is used as given.
func PickStory(ctx context.Context, d Driver, catalog *stories.Catalog, pageName, storyName string) (stories.Story, error) {
	if catalog == nil {
		return stories.Story{}, fmt.Errorf("prompt: catalog is required")
	}

	id := page.ParseID(pageName)
	if id == "" {
		pages := catalog.Pages()
		if len(pages) == 0 {
			return stories.Story{}, fmt.Errorf("prompt: catalog has no stories")
		}
		options := make([]string, 0, len(pages))
		for _, candidate := range pages {
			options = append(options, candidate.Name())
		}
		idx, err := ask(ctx, d, SelectConfig{Message: "Page", Options: options, PageSize: 10})
		if err != nil {
			return stories.Story{}, err
		}
		id = pages[idx]
	}

	if name := strings.TrimSpace(storyName); name != "" {
		return catalog.Get(id, name)
	}

	list := catalog.List(id)
	if len(list) == 0 {
		return catalog.Get(id, "")
	}
	if len(list) == 1 {
		return list[0], nil
	}
	options := make([]string, 0, len(list))
	for _, story := range list {
		label := story.Name
		if story.Title != "" && story.Title != story.Name {
			label += " - " + story.Title
		}
		options = append(options, label)
	}
	idx, err := ask(ctx, d, SelectConfig{Message: "Story", Options: options, PageSize: 15})
	if err != nil {
		return stories.Story{}, err
	}
	return list[idx], nil
}

func ask(ctx context.Context, d Driver, cfg SelectConfig) (int, error) {
	if d == nil {
		return 0, fmt.Errorf("prompt: %s is required and no terminal is available", strings.ToLower(cfg.Message))
	}
	idx, err := d.Select(ctx, cfg)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(cfg.Options) {
		return 0, fmt.Errorf("prompt: invalid %s selection", strings.ToLower(cfg.Message))
	}
	return idx, nil
}
