package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calbret/showcase/internal/config"
	"github.com/calbret/showcase/internal/github"
	"github.com/calbret/showcase/internal/pipeline"
	"github.com/calbret/showcase/internal/search"
	"github.com/calbret/showcase/internal/store"
)

func main() {
	// Command line flags
	var (
		ownerFlag   = flag.String("owner", "", "GitHub user or organization owning the project catalog")
		repoFlag    = flag.String("repo", "", "Repository holding the project catalog")
		refFlag     = flag.String("ref", "", "Branch, tag or commit to read (default branch if empty)")
		rootFlag    = flag.String("root", "", "Repository path with one directory per project (overrides config)")
		queryFlag   = flag.String("query", "", "Fuzzy query to filter the project list")
		configFlag  = flag.String("config", "", "Path to config file")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *ownerFlag != "" {
		settings.Owner = *ownerFlag
	}
	if *repoFlag != "" {
		settings.Repo = *repoFlag
	}
	if *refFlag != "" {
		settings.Ref = *refFlag
	}
	if *rootFlag != "" {
		settings.ProjectsRoot = *rootFlag
	}
	if *verboseFlag {
		settings.Verbose = true
	}

	if err := settings.Validate(); err != nil {
		if errors.Is(err, config.ErrNoSource) {
			fmt.Fprintln(os.Stderr, "Showcase - browse a project catalog hosted on GitHub")
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "Usage:")
			fmt.Fprintln(os.Stderr, "  showcase-ls -owner <user> -repo <repo> [options]")
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "For interactive mode, use: showcase-tui")
			fmt.Fprintln(os.Stderr)
			flag.PrintDefaults()
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	client := github.NewClient(settings.Owner, settings.Repo, settings.Ref,
		github.WithTimeout(time.Duration(settings.RequestTimeoutSeconds)*time.Second))

	aggregator := pipeline.New(client, pipeline.Options{
		Root:                  settings.ProjectsRoot,
		MaxConcurrentResolves: settings.MaxConcurrentResolves,
		OnProgress: func(event pipeline.ProgressEvent) {
			if event.Level == pipeline.LevelVerbose && !settings.Verbose {
				return
			}

			prefix := "   "
			switch event.Level {
			case pipeline.LevelError:
				prefix = " ✗ "
			case pipeline.LevelWarning:
				prefix = " ! "
			case pipeline.LevelSuccess:
				prefix = " ✓ "
			case pipeline.LevelInfo:
				prefix = " › "
			}

			fmt.Fprintln(os.Stderr, prefix+event.Message)
		},
	})

	snap, err := aggregator.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snapshots := store.NewSnapshotStore()
	snapshots.Publish(snap)

	results := search.Rank(*queryFlag, snapshots.Current())
	if len(results) == 0 {
		fmt.Println("No projects match.")
		return
	}

	for _, p := range results {
		markers := ""
		if p.HasAudio() {
			markers += " ♪"
		}
		if p.HasIcon() {
			markers += " ◉"
		}

		fmt.Printf("%s%s\n", p.Name, markers)
		if p.Description != "" {
			fmt.Printf("    %s\n", p.Description)
		}
		if p.HasSource() {
			fmt.Printf("    %s\n", p.SourceURL)
		}
	}

	if len(snap.Warnings) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d directories skipped:\n", len(snap.Warnings))
		for _, w := range snap.Warnings {
			fmt.Fprintf(os.Stderr, "  %s\n", w)
		}
	}
}
