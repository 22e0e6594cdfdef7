package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmynk/friendsmeet/internal/models"
)

// DeleteSuggestions removes all suggestions of a group.
func (s *PostgresStore) DeleteSuggestions(ctx context.Context, groupID string) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM meetup_suggestions WHERE group_id = $1", groupID); err != nil {
		return fmt.Errorf("failed to delete suggestions: %w", err)
	}
	return nil
}

// InsertSuggestions stores a batch of suggestions atomically.
func (s *PostgresStore) InsertSuggestions(ctx context.Context, suggestions []*models.Suggestion) error {
	return s.runInTx(ctx, func(tx pgx.Tx) error {
		return insertSuggestions(ctx, tx, suggestions)
	})
}

// ReplaceSuggestions swaps a group's suggestions in one transaction.
func (s *PostgresStore) ReplaceSuggestions(ctx context.Context, groupID string, suggestions []*models.Suggestion) error {
	return s.runInTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM meetup_suggestions WHERE group_id = $1", groupID); err != nil {
			return fmt.Errorf("failed to delete suggestions: %w", err)
		}
		return insertSuggestions(ctx, tx, suggestions)
	})
}

func insertSuggestions(ctx context.Context, q querier, suggestions []*models.Suggestion) error {
	for _, sg := range suggestions {
		_, err := q.Exec(ctx,
			`INSERT INTO meetup_suggestions
			     (id, group_id, suggested_date, suggested_time, suggested_location, score, rank, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			sg.ID, sg.GroupID, sg.Date, sg.Time, sg.Location, sg.Score, sg.Rank, sg.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert suggestion: %w", err)
		}
	}
	return nil
}

// ListSuggestions returns a group's suggestions, highest score first.
func (s *PostgresStore) ListSuggestions(ctx context.Context, groupID string) ([]*models.Suggestion, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, group_id, suggested_date, suggested_time, suggested_location, score, rank, created_at
		 FROM meetup_suggestions WHERE group_id = $1 ORDER BY score DESC, rank`,
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
