package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/calbret/showcase/internal/config"
	"github.com/calbret/showcase/internal/tui"
)

func main() {
	var (
		ownerFlag  = flag.String("owner", "", "GitHub user or organization owning the project catalog")
		repoFlag   = flag.String("repo", "", "Repository holding the project catalog")
		refFlag    = flag.String("ref", "", "Branch, tag or commit to read (default branch if empty)")
		configFlag = flag.String("config", "", "Path to config file")
	)

	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	if *ownerFlag != "" {
		settings.Owner = *ownerFlag
	}
	if *repoFlag != "" {
		settings.Repo = *repoFlag
	}
	if *refFlag != "" {
		settings.Ref = *refFlag
	}

	if err := settings.Validate(); err != nil {
		if errors.Is(err, config.ErrNoSource) {
			fmt.Fprintln(os.Stderr, "Usage: showcase-tui -owner <user> -repo <repo> [options]")
			fmt.Fprintln(os.Stderr)
			flag.PrintDefaults()
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
