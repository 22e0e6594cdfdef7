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

// CreateGroup persists a new group and its creator as the first member.
func (s *PostgresStore) CreateGroup(ctx context.Context, group *models.Group, creator *models.Member) error {
	now := time.Now().Unix()
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = now
	}
	group.UpdatedAt = group.CreatedAt

	return s.runInTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO groups (id, name, description, created_by, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			group.ID, group.Name, group.Description, group.CreatedBy, group.CreatedAt, group.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		if creator == nil {
			return nil
		}
		creator.GroupID = group.ID
		return insertMember(ctx, tx, creator)
	})
}

// GetGroup retrieves a group by ID.
func (s *PostgresStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, description, created_by, created_at, updated_at
		 FROM groups WHERE id = $1`,
		groupID,
	).Scan(&group.ID, &group.Name, &group.Description, &group.CreatedBy, &group.CreatedAt, &group.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// ListGroups returns all groups, newest first.
func (s *PostgresStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, description, created_by, created_at, updated_at
		 FROM groups ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.Description, &group.CreatedBy, &group.CreatedAt, &group.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// DeleteGroup removes a group and, through ON DELETE CASCADE, everything in it.
func (s *PostgresStore) DeleteGroup(ctx context.Context, groupID string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM groups WHERE id = $1", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return nil
}

// AddMember adds a member to an existing group.
func (s *PostgresStore) AddMember(ctx context.Context, member *models.Member) error {
	return insertMember(ctx, s.db, member)
}

func insertMember(ctx context.Context, q querier, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}

	var userID *string
	if member.UserID != "" {
		userID = &member.UserID
	}

	_, err := q.Exec(ctx,
		"INSERT INTO group_members (id, group_id, name, user_id, joined_at) VALUES ($1, $2, $3, $4, $5)",
		member.ID, member.GroupID, member.Name, userID, member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

const memberColumns = "id, group_id, name, COALESCE(user_id, ''), joined_at"

// GetMember retrieves a member of a group.
func (s *PostgresStore) GetMember(ctx context.Context, groupID, memberID string) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.QueryRow(ctx,
		"SELECT "+memberColumns+" FROM group_members WHERE group_id = $1 AND id = $2",
		groupID, memberID,
	).Scan(&member.ID, &member.GroupID, &member.Name, &member.UserID, &member.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("member %s in group %s: %w", memberID, groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// ListMembers returns a group's members in join order.
func (s *PostgresStore) ListMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	rows, err := s.db.Query(ctx,
		"SELECT "+memberColumns+" FROM group_members WHERE group_id = $1 ORDER BY joined_at, seq",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		if err := rows.Scan(&member.ID, &member.GroupID, &member.Name, &member.UserID, &member.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}
