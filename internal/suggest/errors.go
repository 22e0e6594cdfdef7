package suggest

import "errors"

var (
	// ErrNoPreferences means nobody in the group has saved preferences yet.
	ErrNoPreferences = errors.New("no preferences saved for this group yet; add some preferences first")

	// ErrIncompletePreferences means preferences exist, but no member listed
	// any date, any time or any location, so no combination can be formed.
	ErrIncompletePreferences = errors.New("preferences need at least one date, one time and one location")

	// ErrStoreUnavailable means the preference records could not be read.
	ErrStoreUnavailable = errors.New("preference store unavailable")

	// ErrStoreWrite means deleting or inserting suggestions failed.
	ErrStoreWrite = errors.New("failed to store suggestions")
)
