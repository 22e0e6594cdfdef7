package models

// Group represents a circle of friends planning a meetup.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Book Club", "College Friends").
	Name string

	// Description is optional free text shown on the group card.
	Description string

	// CreatedBy is the user ID of the account that created the group.
	// Only the creator may delete the group.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last change to the group.
	UpdatedAt int64
}

// Member represents one participant of a group.
//
// Members do not need an account: friends can be added by name only, in which
// case UserID is empty. The group creator is always added with their UserID.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	// Preferences are keyed by this ID.
	ID string

	// GroupID is the group this member belongs to.
	GroupID string

	// Name is the display name shown next to the member's preferences.
	Name string

	// UserID links the member to a registered account, if any.
	UserID string

	// JoinedAt is the Unix timestamp when the member was added.
	JoinedAt int64
}
