package models

// Suggestion is one candidate meetup slot produced by a generation run.
// A group's suggestions are replaced as a whole on every run, so they carry
// no history.
type Suggestion struct {
	// ID is the unique identifier for the suggestion (UUID format).
	ID string

	// GroupID is the group this suggestion was generated for.
	GroupID string

	Date     string
	Time     string
	Location string

	// Score is the sum of the popularity counts of Date, Time and Location.
	Score int

	// Rank is the 1-based position of the suggestion in its run's output.
	Rank int

	// CreatedAt is the Unix timestamp of the run that produced the suggestion.
	CreatedAt int64
}
