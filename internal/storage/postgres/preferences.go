package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mmynk/friendsmeet/internal/models"
	"github.com/mmynk/friendsmeet/internal/storage"
)

// UpsertPreference inserts the member's preferences or replaces all three lists
// of the existing record. The stored ID and CreatedAt are written back to pref.
func (s *PostgresStore) UpsertPreference(ctx context.Context, pref *models.Preference) error {
	now := time.Now().Unix()
	if pref.ID == "" {
		pref.ID = uuid.New().String()
	}
	if pref.CreatedAt == 0 {
		pref.CreatedAt = now
	}
	pref.UpdatedAt = now

	err := s.db.QueryRow(ctx,
		`INSERT INTO preferences (id, group_id, member_id, member_name, dates, times, locations, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (group_id, member_id) DO UPDATE SET
		     member_name = EXCLUDED.member_name,
		     dates = EXCLUDED.dates,
		     times = EXCLUDED.times,
		     locations = EXCLUDED.locations,
		     updated_at = EXCLUDED.updated_at
		 RETURNING id, created_at`,
		pref.ID, pref.GroupID, pref.MemberID, pref.MemberName,
		textArray(pref.Dates), textArray(pref.Times), textArray(pref.Locations),
		pref.CreatedAt, pref.UpdatedAt,
	).Scan(&pref.ID, &pref.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert preference: %w", err)
	}
	return nil
}

const preferenceColumns = "id, group_id, member_id, member_name, dates, times, locations, created_at, updated_at"

// GetPreference retrieves one member's preferences.
func (s *PostgresStore) GetPreference(ctx context.Context, groupID, memberID string) (*models.Preference, error) {
	row := s.db.QueryRow(ctx,
		"SELECT "+preferenceColumns+" FROM preferences WHERE group_id = $1 AND member_id = $2",
		groupID, memberID,
	)

	pref, err := scanPreference(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("preference of member %s: %w", memberID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}
	return pref, nil
}

// ListPreferences returns every preference record of a group.
func (s *PostgresStore) ListPreferences(ctx context.Context, groupID string) ([]*models.Preference, error) {
	rows, err := s.db.Query(ctx,
		"SELECT "+preferenceColumns+" FROM preferences WHERE group_id = $1 ORDER BY created_at, id",
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

// scanPreference reads TEXT[] columns into plain slices; StringList's JSON
// Scanner is for the SQLite encoding only.
func scanPreference(row pgx.Row) (*models.Preference, error) {
	pref := &models.Preference{}
	var dates, times, locations []string
	err := row.Scan(
		&pref.ID,
		&pref.GroupID,
		&pref.MemberID,
		&pref.MemberName,
		&dates,
		&times,
		&locations,
		&pref.CreatedAt,
		&pref.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	pref.Dates = textArray(dates)
	pref.Times = textArray(times)
	pref.Locations = textArray(locations)
	return pref, nil
}
