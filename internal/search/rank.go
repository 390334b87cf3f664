package search

import (
	"strings"

	"github.com/calbret/showcase/internal/model"
)

// Combined scores a project against a query across both its name and
// description. A project matches only when the query matches both
// fields' combined view: a non-matching operand makes the whole result
// non-matching rather than contributing zero.
func Combined(query string, p model.Project) (score int, ok bool) {
	nameScore, ok := Score(query, p.Name)
	if !ok {
		return 0, false
	}
	descScore, ok := Score(query, p.Description)
	if !ok {
		return 0, false
	}
	return nameScore + descScore, true
}

// Rank returns the projects of a snapshot filtered by the query.
//
// Search here is a filter, not a relevance ranker: the score decides
// inclusion only, and the returned order is always the snapshot's name
// order. That is deliberate product behavior; reordering by score
// would be a feature change.
//
// An empty (or whitespace-only) query keeps every project. Rank never
// mutates the snapshot; re-invoking with the same inputs yields an
// identical sequence.
func Rank(query string, snap *model.Snapshot) []model.Project {
	if snap == nil {
		return nil
	}

	if strings.TrimSpace(query) == "" {
		out := make([]model.Project, len(snap.Projects))
		copy(out, snap.Projects)
		return out
	}

	out := make([]model.Project, 0, len(snap.Projects))
	for _, p := range snap.Projects {
		if _, ok := Combined(query, p); ok {
			out = append(out, p)
		}
	}
	return out
}
