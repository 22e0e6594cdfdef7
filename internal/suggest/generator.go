package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/friendsmeet/internal/lock"
	"github.com/mmynk/friendsmeet/internal/metrics"
	"github.com/mmynk/friendsmeet/internal/models"
)

// Repository is the storage the Generator reads preferences from and writes
// suggestions to.
type Repository interface {
	ListPreferences(ctx context.Context, groupID string) ([]*models.Preference, error)
	DeleteSuggestions(ctx context.Context, groupID string) error
	InsertSuggestions(ctx context.Context, suggestions []*models.Suggestion) error
}

// Replacer is implemented by repositories that can swap a group's suggestions
// in a single transaction. The Generator prefers it over delete-then-insert.
type Replacer interface {
	ReplaceSuggestions(ctx context.Context, groupID string, suggestions []*models.Suggestion) error
}

// Generator computes and stores a group's meetup suggestions.
type Generator struct {
	repo   Repository
	locker lock.Locker
	logger *slog.Logger
	now    func() time.Time

	// lockTimeout bounds the wait for the group lock; zero waits as long as ctx allows.
	lockTimeout time.Duration
}

// Option configures a Generator.
type Option func(*Generator)

// WithLocker sets the lock used to serialize runs per group.
func WithLocker(l lock.Locker) Option {
	return func(g *Generator) { g.locker = l }
}

// WithLockTimeout bounds how long Generate waits for another run on the same
// group to finish.
func WithLockTimeout(d time.Duration) Option {
	return func(g *Generator) { g.lockTimeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a Generator. Without options it uses an in-process
// lock and the default logger.
func NewGenerator(repo Repository, opts ...Option) *Generator {
	g := &Generator{
		repo:   repo,
		locker: lock.NewLocal(),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate replaces the group's suggestions with a fresh ranking of its
// members' preferences and returns the stored suggestions in rank order.
//
// Nothing is written when the group has no usable preferences
// (ErrNoPreferences, ErrIncompletePreferences) or the preferences cannot be
// read (ErrStoreUnavailable). On ErrStoreWrite the previous suggestions may
// already be gone.
func (g *Generator) Generate(ctx context.Context, groupID string) ([]*models.Suggestion, error) {
	start := time.Now()

	lockCtx := ctx
	if g.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, g.lockTimeout)
		defer cancel()
	}

	release, err := g.locker.Acquire(lockCtx, groupID)
	if err != nil {
		metrics.RecordGeneration(metrics.StatusLockError, time.Since(start).Seconds(), 0)
		return nil, fmt.Errorf("failed to lock group %s: %w", groupID, err)
	}
	defer release()

	suggestions, status, err := g.generate(ctx, groupID)
	metrics.RecordGeneration(status, time.Since(start).Seconds(), len(suggestions))
	if err != nil {
		return nil, err
	}

	g.logger.Info("Suggestions generated",
		"group_id", groupID,
		"count", len(suggestions),
		"top_score", suggestions[0].Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return suggestions, nil
}

func (g *Generator) generate(ctx context.Context, groupID string) ([]*models.Suggestion, string, error) {
	prefs, err := g.repo.ListPreferences(ctx, groupID)
	if err != nil {
		g.logger.Error("Failed to read preferences", "group_id", groupID, "error", err)
		return nil, metrics.StatusReadError, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if len(prefs) == 0 {
		return nil, metrics.StatusNoPreferences, ErrNoPreferences
	}

	candidates := Rank(prefs)
	if len(candidates) == 0 {
		return nil, metrics.StatusNoPreferences, ErrIncompletePreferences
	}

	g.logger.Debug("Ranked candidates",
		"group_id", groupID,
		"members", len(prefs),
		"selected", len(candidates),
	)

	createdAt := g.now().Unix()
	suggestions := make([]*models.Suggestion, len(candidates))
	for i, c := range candidates {
		suggestions[i] = &models.Suggestion{
			ID:        uuid.New().String(),
			GroupID:   groupID,
			Date:      c.Date,
			Time:      c.Time,
			Location:  c.Location,
			Score:     c.Score,
			Rank:      i + 1,
			CreatedAt: createdAt,
		}
	}

	if err := g.replace(ctx, groupID, suggestions); err != nil {
		return nil, metrics.StatusWriteError, err
	}
	return suggestions, metrics.StatusOK, nil
}

// replace swaps the stored suggestions, in one transaction when the
// repository supports it.
func (g *Generator) replace(ctx context.Context, groupID string, suggestions []*models.Suggestion) error {
	if r, ok := g.repo.(Replacer); ok {
		if err := r.ReplaceSuggestions(ctx, groupID, suggestions); err != nil {
			g.logger.Error("Failed to replace suggestions", "group_id", groupID, "error", err)
			return fmt.Errorf("%w: %w", ErrStoreWrite, err)
		}
		return nil
	}

	if err := g.repo.DeleteSuggestions(ctx, groupID); err != nil {
		g.logger.Error("Failed to delete suggestions", "group_id", groupID, "error", err)
		return fmt.Errorf("%w: delete: %w", ErrStoreWrite, err)
	}

	if err := g.repo.InsertSuggestions(ctx, suggestions); err != nil {
		metrics.RecordSuggestionsLost()
		g.logger.Error("Suggestions cleared but not replaced; group has no suggestions until the next run",
			"group_id", groupID,
			"error", err,
		)
		return fmt.Errorf("%w: insert: %w", ErrStoreWrite, err)
	}
	return nil
}

// IsPreconditionError reports whether err is a user-correctable failure
// rather than an infrastructure fault.
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrNoPreferences) || errors.Is(err, ErrIncompletePreferences)
}
