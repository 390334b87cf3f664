package model

// Project is one aggregated project record.
//
// A Project is assembled once by the aggregation pipeline from a project
// directory plus up to three sibling file lookups (audio, description,
// icon) and is immutable afterwards. Absent assets are empty strings:
// a project without a description, icon or audio track is a normal,
// renderable state, not an error.
type Project struct {
	// Name is the project name, taken from the directory name.
	// Always non-empty and unique within a snapshot.
	Name string

	// Description is the trimmed content of description.txt.
	// Empty when the file is missing or unreadable.
	Description string

	// AudioURL is the raw URL of the project's audio track, if any.
	AudioURL string

	// IconURL is the raw URL of icon.png, if present.
	IconURL string

	// SourceURL is the public page for the project directory, if any.
	SourceURL string
}

// HasAudio returns true if the project has an audio track to play.
func (p Project) HasAudio() bool {
	return p.AudioURL != ""
}

// HasIcon returns true if the project has an icon asset.
func (p Project) HasIcon() bool {
	return p.IconURL != ""
}

// HasSource returns true if the project links to a public source page.
func (p Project) HasSource() bool {
	return p.SourceURL != ""
}
