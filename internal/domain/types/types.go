// Package types contains common types used across the application
package types

import "github.com/okian/scout/internal/domain/model"

// Entry represents one row of the team ranking view
type Entry struct {
	Rank int `json:"rank"`
	model.TeamSummary
}

// Rank numbers summaries 1..n in the order given.
func Rank(summaries []model.TeamSummary) []Entry {
	entries := make([]Entry, len(summaries))
	for i, s := range summaries {
		entries[i] = Entry{Rank: i + 1, TeamSummary: s}
	}
	return entries
}
