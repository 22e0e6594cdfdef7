// Package suggest turns a group's member preferences into ranked meetup suggestions.
//
// Algorithm:
//   - Count: for each dimension (date, time, location) count how many members listed each value
//   - Shortlist: keep the ShortlistSize most popular values per dimension
//   - Enumerate: cross-product of the three shortlists
//   - Score: date count + time count + location count
//   - Select: the MaxSuggestions highest scores
//
// Ties are broken deterministically so that re-running with unchanged
// preferences yields the same suggestions: shortlists order equal counts by
// ascending value, and the final selection keeps enumeration order among equal
// scores.
package suggest

import (
	"sort"
	"strings"

	"github.com/mmynk/friendsmeet/internal/models"
)

const (
	// ShortlistSize is how many values per dimension enter the cross-product.
	ShortlistSize = 3

	// MaxSuggestions is the maximum number of suggestions kept per run.
	MaxSuggestions = 5
)

// Tally holds the popularity count of every distinct value, per dimension.
type Tally struct {
	Dates     map[string]int
	Times     map[string]int
	Locations map[string]int
}

// RankedValue is a value together with its popularity count.
type RankedValue struct {
	Value string
	Count int
}

// Candidate is one scored (date, time, location) combination.
type Candidate struct {
	Date     string
	Time     string
	Location string
	Score    int
}

// Count builds the popularity tally for a set of preference records.
// A value counts once per member even if that member listed it twice.
func Count(prefs []*models.Preference) Tally {
	tally := Tally{
		Dates:     make(map[string]int),
		Times:     make(map[string]int),
		Locations: make(map[string]int),
	}

	for _, p := range prefs {
		if p == nil {
			continue
		}
		countDistinct(tally.Dates, p.Dates)
		countDistinct(tally.Times, p.Times)
		countDistinct(tally.Locations, p.Locations)
	}

	return tally
}

// countDistinct adds one to counts for every distinct non-blank value.
func countDistinct(counts map[string]int, values []string) {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		counts[v]++
	}
}

// Shortlist returns the n most popular values, most popular first.
// Equal counts are ordered by ascending value.
func Shortlist(counts map[string]int, n int) []RankedValue {
	ranked := make([]RankedValue, 0, len(counts))
	for v, c := range counts {
		ranked = append(ranked, RankedValue{Value: v, Count: c})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Value < ranked[j].Value
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Enumerate builds the cross-product of the shortlists, dates outermost and
// locations innermost, scoring each combination.
func Enumerate(dates, times, locations []RankedValue) []Candidate {
	candidates := make([]Candidate, 0, len(dates)*len(times)*len(locations))
	for _, d := range dates {
		for _, t := range times {
			for _, l := range locations {
				candidates = append(candidates, Candidate{
					Date:     d.Value,
					Time:     t.Value,
					Location: l.Value,
					Score:    d.Count + t.Count + l.Count,
				})
			}
		}
	}
	return candidates
}

// Top returns the n highest scoring candidates. The sort is stable, so equal
// scores keep their enumeration order.
func Top(candidates []Candidate, n int) []Candidate {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Rank runs the whole pipeline over a group's preference records.
// It returns nil when any dimension has no values at all.
func Rank(prefs []*models.Preference) []Candidate {
	tally := Count(prefs)

	dates := Shortlist(tally.Dates, ShortlistSize)
	times := Shortlist(tally.Times, ShortlistSize)
	locations := Shortlist(tally.Locations, ShortlistSize)

	candidates := Enumerate(dates, times, locations)
	if len(candidates) == 0 {
		return nil
	}
	return Top(candidates, MaxSuggestions)
}
