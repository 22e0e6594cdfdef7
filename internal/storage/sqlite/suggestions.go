package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/friendsmeet/internal/models"
)

// DeleteSuggestions removes all suggestions of a group.
func (s *SQLiteStore) DeleteSuggestions(ctx context.Context, groupID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM meetup_suggestions WHERE group_id = ?", groupID); err != nil {
		return fmt.Errorf("failed to delete suggestions: %w", err)
	}
	return nil
}

// InsertSuggestions stores a batch of suggestions atomically.
func (s *SQLiteStore) InsertSuggestions(ctx context.Context, suggestions []*models.Suggestion) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertSuggestions(ctx, tx, suggestions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReplaceSuggestions swaps a group's suggestions in one transaction, so readers
// see either the old set or the new one.
func (s *SQLiteStore) ReplaceSuggestions(ctx context.Context, groupID string, suggestions []*models.Suggestion) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM meetup_suggestions WHERE group_id = ?", groupID); err != nil {
		return fmt.Errorf("failed to delete suggestions: %w", err)
	}

	if err := insertSuggestions(ctx, tx, suggestions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertSuggestions(ctx context.Context, db execer, suggestions []*models.Suggestion) error {
	for _, sg := range suggestions {
		_, err := db.ExecContext(ctx,
			`INSERT INTO meetup_suggestions
			     (id, group_id, suggested_date, suggested_time, suggested_location, score, rank, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			sg.ID, sg.GroupID, sg.Date, sg.Time, sg.Location, sg.Score, sg.Rank, sg.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert suggestion: %w", err)
		}
	}
	return nil
}

// ListSuggestions returns a group's suggestions, highest score first.
func (s *SQLiteStore) ListSuggestions(ctx context.Context, groupID string) ([]*models.Suggestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, suggested_date, suggested_time, suggested_location, score, rank, created_at
		 FROM meetup_suggestions WHERE group_id = ? ORDER BY score DESC, rank`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []*models.Suggestion
	for rows.Next() {
		sg := &models.Suggestion{}
		if err := rows.Scan(&sg.ID, &sg.GroupID, &sg.Date, &sg.Time, &sg.Location, &sg.Score, &sg.Rank, &sg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suggestions: %w", err)
	}

	return suggestions, nil
}
