package search

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	rank "github.com/sahilm/fuzzy"
)

// Matches reports whether every character of query appears in title in order,
// ignoring case. An empty query matches everything.
func Matches(query, title string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return fuzzy.MatchFold(query, title)
}

// Highlight returns the rune positions in title matched by query, for
// rendering. Nil when the query is empty or does not match.
func Highlight(query, title string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	matches := rank.Find(strings.ToLower(query), []string{strings.ToLower(title)})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}
