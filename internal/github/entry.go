package github

import "fmt"

// EntryKind distinguishes files from sub-directories in a listing.
type EntryKind int

const (
	// KindFile is a regular file entry.
	KindFile EntryKind = iota

	// KindDir is a sub-directory that can be listed again.
	KindDir

	// KindOther covers symlinks, submodules and anything else the API
	// may return; the pipeline ignores these.
	KindOther
)

// String returns the kind as the API spells it.
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "other"
	}
}

// Entry is one item of a directory listing.
//
// Entries are read-only: they are produced by ListDirectory and never
// mutated. Path re-lists or re-reads the item through the same Client;
// DownloadURL fetches raw file content; HTMLURL is the public-facing
// page for the item, when the API provides one.
type Entry struct {
	// Name is the base name of the file or directory.
	Name string

	// Kind says whether the entry is a file or a directory.
	Kind EntryKind

	// Path is the repository-relative path, usable with ListDirectory.
	Path string

	// DownloadURL is the raw content URL. Empty for directories.
	DownloadURL string

	// HTMLURL is the public web page for the entry, if any.
	HTMLURL string
}

// contentsItem is the wire shape of one GitHub contents API entry.
type contentsItem struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
	HTMLURL     string `json:"html_url"`
}

// toEntry converts the wire shape into the read-only Entry model.
func (it contentsItem) toEntry() Entry {
	kind := KindOther
	switch it.Type {
	case "file":
		kind = KindFile
	case "dir":
		kind = KindDir
	}
	return Entry{
		Name:        it.Name,
		Kind:        kind,
		Path:        it.Path,
		DownloadURL: it.DownloadURL,
		HTMLURL:     it.HTMLURL,
	}
}

// RemoteError is a non-success response from the content source.
//
// It carries the HTTP status code and a snippet of the response body so
// failures like rate limiting (403) or a missing path (404) stay
// diagnosable. Callers match it with errors.As.
type RemoteError struct {
	StatusCode int
	URL        string
	Snippet    string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("remote returned HTTP %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("remote returned HTTP %d for %s: %s", e.StatusCode, e.URL, e.Snippet)
}
