// Package model defines the core data structures shared across showcase.
//
// # Project
//
// Project is one aggregated record: name, optional description, and
// opaque asset URLs for audio, icon and source page. Projects are
// immutable after the pipeline creates them.
//
// # Snapshot
//
// Snapshot is the full, name-sorted project set produced by one
// aggregation run:
//
//	snap := model.NewSnapshot(projects, warnings)
//	for _, p := range snap.Projects {
//	    fmt.Println(p.Name)
//	}
//
// Sorting uses locale-aware, case-insensitive collation from
// golang.org/x/text.
package model
