package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/friendsmeet/internal/models"
	"github.com/mmynk/friendsmeet/internal/storage"
)

// UpsertPreference inserts the member's preferences or replaces all three lists
// of the existing record. The stored ID and CreatedAt are written back to pref.
func (s *SQLiteStore) UpsertPreference(ctx context.Context, pref *models.Preference) error {
	now := time.Now().Unix()
	if pref.ID == "" {
		pref.ID = uuid.New().String()
	}
	if pref.CreatedAt == 0 {
		pref.CreatedAt = now
	}
	pref.UpdatedAt = now

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO preferences (id, group_id, member_id, member_name, dates, times, locations, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (group_id, member_id) DO UPDATE SET
		     member_name = excluded.member_name,
		     dates = excluded.dates,
		     times = excluded.times,
		     locations = excluded.locations,
		     updated_at = excluded.updated_at
		 RETURNING id, created_at`,
		pref.ID, pref.GroupID, pref.MemberID, pref.MemberName,
		pref.Dates, pref.Times, pref.Locations,
		pref.CreatedAt, pref.UpdatedAt,
	).Scan(&pref.ID, &pref.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert preference: %w", err)
	}

	return nil
}

const preferenceColumns = "id, group_id, member_id, member_name, dates, times, locations, created_at, updated_at"

// GetPreference retrieves one member's preferences.
func (s *SQLiteStore) GetPreference(ctx context.Context, groupID, memberID string) (*models.Preference, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+preferenceColumns+" FROM preferences WHERE group_id = ? AND member_id = ?",
		groupID, memberID,
	)

	pref, err := scanPreference(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("preference of member %s: %w", memberID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}

	return pref, nil
}

// ListPreferences returns every preference record of a group.
func (s *SQLiteStore) ListPreferences(ctx context.Context, groupID string) ([]*models.Preference, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+preferenceColumns+" FROM preferences WHERE group_id = ? ORDER BY created_at, rowid",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer rows.Close()

	var prefs []*models.Preference
	for rows.Next() {
		pref, err := scanPreference(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs = append(prefs, pref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate preferences: %w", err)
	}

	return prefs, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPreference(row scanner) (*models.Preference, error) {
	pref := &models.Preference{}
	err := row.Scan(
		&pref.ID,
		&pref.GroupID,
		&pref.MemberID,
		&pref.MemberName,
		&pref.Dates,
		&pref.Times,
		&pref.Locations,
		&pref.CreatedAt,
		&pref.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return pref, nil
}
