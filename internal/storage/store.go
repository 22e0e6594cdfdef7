// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/friendsmeet/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an insert collides with a unique key.
	ErrConflict = errors.New("already exists")

	// ErrUnavailable marks a failure of the backend itself, as opposed to a
	// missing or conflicting record.
	ErrUnavailable = errors.New("storage unavailable")
)

// Store defines the interface for Friends Meet storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group together with its creator as the first
	// member. ID and timestamp fields left empty are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group, creator *models.Member) error

	// GetGroup retrieves a group by its ID.
	// Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// DeleteGroup removes a group with its members, preferences and suggestions.
	// Returns ErrNotFound if the group does not exist.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddMember adds a member to an existing group.
	AddMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves a member of a group.
	// Returns ErrNotFound if the member does not belong to the group.
	GetMember(ctx context.Context, groupID, memberID string) (*models.Member, error)

	// ListMembers returns the members of a group in join order.
	ListMembers(ctx context.Context, groupID string) ([]*models.Member, error)

	// UpsertPreference creates or replaces the member's preference record.
	// On replace, the stored ID and CreatedAt are kept and written back to pref.
	UpsertPreference(ctx context.Context, pref *models.Preference) error

	// GetPreference retrieves one member's preference record.
	// Returns ErrNotFound if the member has not saved preferences.
	GetPreference(ctx context.Context, groupID, memberID string) (*models.Preference, error)

	// ListPreferences returns every preference record of a group.
	ListPreferences(ctx context.Context, groupID string) ([]*models.Preference, error)

	// DeleteSuggestions removes all suggestions of a group.
	DeleteSuggestions(ctx context.Context, groupID string) error

	// InsertSuggestions stores a batch of suggestions.
	InsertSuggestions(ctx context.Context, suggestions []*models.Suggestion) error

	// ReplaceSuggestions deletes a group's suggestions and inserts the new ones
	// in a single transaction.
	ReplaceSuggestions(ctx context.Context, groupID string, suggestions []*models.Suggestion) error

	// ListSuggestions returns a group's suggestions, highest score first.
	ListSuggestions(ctx context.Context, groupID string) ([]*models.Suggestion, error)

	// CreateUser persists a new user account.
	// Returns ErrConflict if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns ErrNotFound if no account uses the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
