package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/calbret/showcase/internal/github"
	"github.com/calbret/showcase/internal/model"
	"golang.org/x/sync/errgroup"
)

// Well-known file names inside a project directory.
const (
	descriptionFile = "description.txt"
	iconFile        = "icon.png"
	audioExt        = ".mp3"
)

// DefaultMaxConcurrentResolves bounds how many project directories are
// resolved at once.
const DefaultMaxConcurrentResolves = 8

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents an aggregation progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Options configures an Aggregator.
type Options struct {
	// Root is the repository path that holds one directory per project.
	Root string

	// MaxConcurrentResolves limits concurrent per-directory resolution.
	// Zero or negative means DefaultMaxConcurrentResolves.
	MaxConcurrentResolves int

	// OnProgress, if set, receives progress events during a run.
	// It may be called from multiple goroutines.
	OnProgress func(ProgressEvent)
}

// Aggregator discovers project directories and resolves each into a
// Project record.
//
// A run is a pure transformation of remote reads into a Snapshot: it
// has no side effects beyond the network, and it never publishes a
// partial result: the caller receives either a complete Snapshot or a
// *Error, never both.
type Aggregator struct {
	client     *github.Client
	root       string
	limit      int
	onProgress func(ProgressEvent)
}

// New creates an Aggregator that reads project directories through the
// given content-source client.
func New(client *github.Client, opts Options) *Aggregator {
	limit := opts.MaxConcurrentResolves
	if limit <= 0 {
		limit = DefaultMaxConcurrentResolves
	}
	return &Aggregator{
		client:     client,
		root:       opts.Root,
		limit:      limit,
		onProgress: opts.OnProgress,
	}
}

// Run discovers and resolves all projects, returning a complete
// Snapshot.
//
// Discovery failure is fatal: without a directory list there is no
// partial result, so Run returns a *Error wrapping the cause. A
// per-directory resolution failure is not fatal: the directory is
// skipped and recorded in the snapshot's Warnings (a project whose
// listing cannot be read is reported, not invented). Missing optional
// assets inside a directory (description, icon, audio) are normal and
// never produce warnings.
//
// Resolutions run concurrently and unordered; only the final name sort
// imposes order. Run suspends until every resolution settles.
func (a *Aggregator) Run(ctx context.Context) (*model.Snapshot, error) {
	entries, err := a.client.ListDirectory(ctx, a.root)
	if err != nil {
		return nil, &Error{Stage: StageDiscover, Err: err}
	}

	var dirs []github.Entry
	for _, e := range entries {
		if e.Kind == github.KindDir {
			dirs = append(dirs, e)
		}
	}
	a.progress(ProgressEvent{
		Message: fmt.Sprintf("discovered %d project directories under %q", len(dirs), a.root),
		Level:   LevelInfo,
	})

	results := make([]*model.Project, len(dirs))

	var warnMu sync.Mutex
	var warnings []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.limit)

	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			project, err := a.resolve(gctx, dir)
			if err != nil {
				warning := fmt.Sprintf("skipped %s: %v", dir.Name, err)
				warnMu.Lock()
				warnings = append(warnings, warning)
				warnMu.Unlock()
				a.progress(ProgressEvent{Message: warning, Level: LevelWarning})
				return nil
			}
			results[i] = project
			a.progress(ProgressEvent{
				Message: fmt.Sprintf("resolved %s", project.Name),
				Level:   LevelVerbose,
			})
			return nil
		})
	}

	// Goroutines never return errors (skip policy), so Wait only
	// gathers; cancellation still has to fail the run.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, &Error{Stage: StageResolve, Err: err}
	}

	projects := make([]model.Project, 0, len(results))
	for _, p := range results {
		if p != nil {
			projects = append(projects, *p)
		}
	}

	snap := model.NewSnapshot(projects, warnings)
	a.progress(ProgressEvent{
		Message: fmt.Sprintf("aggregated %d projects (%d skipped)", len(projects), len(warnings)),
		Level:   LevelSuccess,
	})
	return snap, nil
}

// resolve turns one project directory into a Project record.
func (a *Aggregator) resolve(ctx context.Context, dir github.Entry) (*model.Project, error) {
	files, err := a.client.ListDirectory(ctx, dir.Path)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:      dir.Name,
		SourceURL: dir.HTMLURL,
	}

	if audio := selectAudio(files, dir.Name); audio != nil {
		project.AudioURL = audio.DownloadURL
	}
	if icon := findFile(files, iconFile); icon != nil {
		project.IconURL = icon.DownloadURL
	}

	if desc := findFile(files, descriptionFile); desc != nil {
		text, err := a.client.ReadText(ctx, desc.DownloadURL)
		if err != nil {
			// An unreadable description is a normal state, not an
			// error; the project keeps an empty description.
			a.progress(ProgressEvent{
				Message: fmt.Sprintf("description unavailable for %s: %v", dir.Name, err),
				Level:   LevelVerbose,
			})
		} else {
			project.Description = strings.TrimSpace(text)
		}
	}

	return project, nil
}

// selectAudio picks the project's audio track: a file named exactly
// <dirName>.mp3 wins, otherwise the first file whose name ends in .mp3
// case-insensitively, otherwise none.
func selectAudio(files []github.Entry, dirName string) *github.Entry {
	if exact := findFile(files, dirName+audioExt); exact != nil {
		return exact
	}
	for i, f := range files {
		if f.Kind == github.KindFile && strings.HasSuffix(strings.ToLower(f.Name), audioExt) {
			return &files[i]
		}
	}
	return nil
}

// findFile returns the file entry with the exact given name, or nil.
func findFile(files []github.Entry, name string) *github.Entry {
	for i, f := range files {
		if f.Kind == github.KindFile && f.Name == name {
			return &files[i]
		}
	}
	return nil
}

func (a *Aggregator) progress(event ProgressEvent) {
	if a.onProgress != nil {
		a.onProgress(event)
	}
}
