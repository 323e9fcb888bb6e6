package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/goliatone/go-auththeme/internal/config"
	"github.com/goliatone/go-auththeme/internal/logging"
	"github.com/goliatone/go-auththeme/internal/logging/gologger"
	"github.com/goliatone/go-auththeme/internal/prompt"
	"github.com/goliatone/go-auththeme/pkg/fixture"
	"github.com/goliatone/go-auththeme/pkg/router"
	"github.com/goliatone/go-auththeme/pkg/stories"
	"github.com/goliatone/go-auththeme/pkg/styles"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	pageName := flag.String("page", "", "page to render, e.g. register or register.ftl")
	storyName := flag.String("story", "", "story name, e.g. WithTermsAcceptance")
	locale := flag.String("locale", "", "language tag overriding the story locale")
	output := flag.String("output", "", "output file (stdout if empty)")
	force := flag.Bool("force", false, "overwrite the output file without asking")
	list := flag.Bool("list", false, "list stories and exit")
	noInput := flag.Bool("no-input", false, "never prompt; fail when page or story is missing")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, options{
		configPath: *configPath,
		page:       *pageName,
		story:      *storyName,
		locale:     *locale,
		output:     *output,
		force:      *force,
		list:       *list,
		noInput:    *noInput,
	}); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "auththeme: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	page       string
	story      string
	locale     string
	output     string
	force      bool
	list       bool
	noInput    bool
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	provider, err := gologger.New(cfg.Logging)
	if err != nil {
		return err
	}
	logger := logging.CLILogger(provider)

	catalog, err := loadCatalog(cfg.StoriesDir)
	if err != nil {
		return err
	}
	if opts.list {
		return printCatalog(catalog)
	}

	var driver prompt.Driver
	if !opts.noInput && isatty.IsTerminal(os.Stdin.Fd()) {
		driver = prompt.Survey()
	}
	story, err := prompt.PickStory(ctx, driver, catalog, opts.page, opts.story)
	if err != nil {
		return err
	}

	r := router.New(
		router.WithStyleOptions(
			styles.WithTheme(cfg.Theme.Name, cfg.Theme.Variant),
			styles.WithAssetsPrefix(cfg.Preview.AssetsPrefix),
		),
		router.WithTemplatesDir(cfg.TemplatesDir),
		router.WithLoggerProvider(provider),
	)

	base := fixture.Overrides{Locale: fixture.Ptr(cfg.Locale.Default)}
	var extra fixture.Overrides
	if tag := strings.TrimSpace(opts.locale); tag != "" {
		extra.Locale = fixture.Ptr(tag)
	}
	pc, err := fixture.Build(story.Page, base, story.Overrides, extra)
	if err != nil {
		return err
	}
	out, err := r.Route(ctx, pc)
	if err != nil {
		return err
	}
	logger.Debug("story rendered", "page", story.Page, "story", story.Name, "bytes", len(out.HTML))

	if opts.output == "" {
		_, err := fmt.Fprintln(os.Stdout, out.HTML)
		return err
	}
	if !opts.force {
		if _, statErr := os.Stat(opts.output); statErr == nil {
			if driver == nil {
				return fmt.Errorf("%s exists; use -force to overwrite", opts.output)
			}
			ok, err := driver.Confirm(ctx, prompt.ConfirmConfig{
				Message: fmt.Sprintf("Overwrite %s?", opts.output),
			})
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
	}
	if err := os.WriteFile(opts.output, []byte(out.HTML), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("%s/%s written to %s\n", story.Page.Name(), story.Name, opts.output)
	return nil
}

func loadCatalog(dir string) (*stories.Catalog, error) {
	if strings.TrimSpace(dir) == "" {
		return stories.Default()
	}
	return stories.Load(os.DirFS(dir))
}

func printCatalog(catalog *stories.Catalog) error {
	for _, id := range catalog.Pages() {
		if _, err := fmt.Println(id.Name()); err != nil {
			return err
		}
		for _, story := range catalog.List(id) {
			if _, err := fmt.Printf("  %-32s %s\n", story.Name, story.Title); err != nil {
				return err
			}
		}
	}
	return nil
}
