// Package pipeline aggregates project directories into a snapshot.
//
// An Aggregator runs in three steps:
//
//  1. Discovery: list the projects root and keep its sub-directories.
//     A discovery failure fails the whole run.
//  2. Resolution: concurrently resolve every directory into a Project
//     (audio track, description.txt, icon.png, source page). A
//     directory whose listing fails is skipped and recorded in the
//     snapshot's warning list; a missing or unreadable optional asset
//     is simply absent.
//  3. Assembly: sort by name and return the complete Snapshot.
//
// The returned snapshot is not published anywhere by this package;
// callers hand it to store.SnapshotStore so readers only ever observe
// complete snapshots.
package pipeline
