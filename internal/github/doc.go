// Package github is the content-source client for showcase.
//
// The project catalog lives in a GitHub repository: one sub-directory per
// project, with optional description.txt, icon.png and MP3 files inside.
// This package exposes exactly the two reads the aggregation pipeline
// needs, structured directory listings and raw text content, and
// normalizes transport failure into typed errors:
//
//	entries, err := client.ListDirectory(ctx, "projects")
//	var remoteErr *github.RemoteError
//	if errors.As(err, &remoteErr) {
//	    fmt.Println("status:", remoteErr.StatusCode)
//	}
//
// The package performs no retries and no caching; failure policy belongs
// to the pipeline.
package github
