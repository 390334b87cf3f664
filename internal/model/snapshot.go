package model

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Snapshot is the complete, immutable set of projects known to the
// system, sorted by name (case-insensitive, locale-collated).
//
// A Snapshot is built once per aggregation run and never mutated; the
// current one is replaced wholesale through store.SnapshotStore.Publish.
type Snapshot struct {
	// Projects are sorted by collated name.
	Projects []Project

	// Warnings lists project directories that were skipped during
	// aggregation, with the reason. A non-empty list does not make the
	// snapshot invalid.
	Warnings []string
}

// NewSnapshot builds a Snapshot from resolved projects and warnings.
//
// The projects slice is sorted in place by name using Unicode collation
// with case folding, so "apricot" sorts between "Apple" and "Banana".
func NewSnapshot(projects []Project, warnings []string) *Snapshot {
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(projects, func(i, j int) bool {
		return c.CompareString(projects[i].Name, projects[j].Name) < 0
	})
	return &Snapshot{
		Projects: projects,
		Warnings: warnings,
	}
}

// Len returns the number of projects in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Projects)
}
