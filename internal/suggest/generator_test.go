package suggest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mmynk/friendsmeet/internal/models"
)

// memRepo is an in-memory Repository with failure injection.
type memRepo struct {
	mu          sync.Mutex
	prefs       map[string][]*models.Preference
	suggestions map[string][]*models.Suggestion

	readErr   error
	deleteErr error
	insertErr error

	// inFlight tracks concurrent writers per group to detect overlapping runs.
	inFlight map[string]int
	overlap  bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		prefs:       make(map[string][]*models.Preference),
		suggestions: make(map[string][]*models.Suggestion),
		inFlight:    make(map[string]int),
	}
}

func (r *memRepo) ListPreferences(ctx context.Context, groupID string) ([]*models.Preference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	return r.prefs[groupID], nil
}

func (r *memRepo) DeleteSuggestions(ctx context.Context, groupID string) error {
	r.mu.Lock()
	r.inFlight[groupID]++
	if r.inFlight[groupID] > 1 {
		r.overlap = true
	}
	r.mu.Unlock()

	// Widen the window between delete and insert so overlapping runs show up.
	time.Sleep(time.Millisecond)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		r.inFlight[groupID]--
		return r.deleteErr
	}
	delete(r.suggestions, groupID)
	return nil
}

func (r *memRepo) InsertSuggestions(ctx context.Context, suggestions []*models.Suggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(suggestions) > 0 {
		r.inFlight[suggestions[0].GroupID]--
	}
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, s := range suggestions {
		r.suggestions[s.GroupID] = append(r.suggestions[s.GroupID], s)
	}
	return nil
}

func (r *memRepo) stored(groupID string) []*models.Suggestion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.suggestions[groupID]
}

// txRepo adds a transactional replace on top of memRepo.
type txRepo struct {
	*memRepo
	replaceCalls int
	replaceErr   error
}

func (r *txRepo) ReplaceSuggestions(ctx context.Context, groupID string, suggestions []*models.Suggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaceCalls++
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.suggestions[groupID] = suggestions
	return nil
}

func seedOld(repo *memRepo, groupID string) []*models.Suggestion {
	old := []*models.Suggestion{
		{ID: "old-1", GroupID: groupID, Date: "2024-12-01", Time: "08:00", Location: "Old Place", Score: 3, Rank: 1},
	}
	repo.suggestions[groupID] = old
	return old
}

func TestGenerate_ExampleGroup(t *testing.T) {
	repo := newMemRepo()
	repo.prefs["group-1"] = threeFriends()
	seedOld(repo, "group-1")

	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	gen := NewGenerator(repo, WithClock(func() time.Time { return fixed }))

	got, err := gen.Generate(context.Background(), "group-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 suggestions, got %d", len(got))
	}

	stored := repo.stored("group-1")
	if len(stored) != 5 {
		t.Fatalf("expected 5 stored suggestions, got %d", len(stored))
	}
	for _, s := range stored {
		if s.ID == "old-1" {
			t.Error("previous suggestion survived the run")
		}
	}

	for i, s := range got {
		if s.Rank != i+1 {
			t.Errorf("suggestion %d has rank %d", i, s.Rank)
		}
		if s.Score != 6 {
			t.Errorf("suggestion %d has score %d, want 6", i, s.Score)
		}
		if s.GroupID != "group-1" {
			t.Errorf("suggestion %d has group %s", i, s.GroupID)
		}
		if s.CreatedAt != fixed.Unix() {
			t.Errorf("suggestion %d has created_at %d, want %d", i, s.CreatedAt, fixed.Unix())
		}
		if s.ID == "" {
			t.Errorf("suggestion %d has no ID", i)
		}
	}
	if got[0].Date != "2025-01-10" || got[0].Time != "18:00" || got[0].Location != "Cafe" {
		t.Errorf("unexpected top suggestion: %+v", got[0])
	}
	if got[4].Date != "2025-01-11" || got[4].Time != "18:00" || got[4].Location != "Cafe" {
		t.Errorf("unexpected fifth suggestion: %+v", got[4])
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	repo := newMemRepo()
	repo.prefs["group-1"] = threeFriends()
	gen := NewGenerator(repo)

	first, err := gen.Generate(context.Background(), "group-1")
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := gen.Generate(context.Background(), "group-1")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("runs returned %d and %d suggestions", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.Date != b.Date || a.Time != b.Time || a.Location != b.Location || a.Score != b.Score {
			t.Errorf("run results differ at %d: %+v vs %+v", i, a, b)
		}
	}
	if n := len(repo.stored("group-1")); n != len(second) {
		t.Errorf("expected %d stored suggestions after rerun, got %d", len(second), n)
	}
}

func TestGenerate_Failures(t *testing.T) {
	dbErr := errors.New("connection refused")

	tests := []struct {
		name       string
		setup      func(r *memRepo)
		wantErr    error
		wantStored int // -1 means the seeded suggestion must be untouched
	}{
		{
			name:       "no preferences",
			setup:      func(r *memRepo) {},
			wantErr:    ErrNoPreferences,
			wantStored: -1,
		},
		{
			name: "no member listed a location",
			setup: func(r *memRepo) {
				r.prefs["group-1"] = []*models.Preference{
					pref("A", []string{"2025-01-10"}, []string{"18:00"}, nil),
				}
			},
			wantErr:    ErrIncompletePreferences,
			wantStored: -1,
		},
		{
			name: "read failure",
			setup: func(r *memRepo) {
				r.prefs["group-1"] = threeFriends()
				r.readErr = dbErr
			},
			wantErr:    ErrStoreUnavailable,
			wantStored: -1,
		},
		{
			name: "delete failure",
			setup: func(r *memRepo) {
				r.prefs["group-1"] = threeFriends()
				r.deleteErr = dbErr
			},
			wantErr:    ErrStoreWrite,
			wantStored: -1,
		},
		{
			name: "insert failure after delete",
			setup: func(r *memRepo) {
				r.prefs["group-1"] = threeFriends()
				r.insertErr = dbErr
			},
			wantErr:    ErrStoreWrite,
			wantStored: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			old := seedOld(repo, "group-1")
			tt.setup(repo)

			got, err := NewGenerator(repo).Generate(context.Background(), "group-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got != nil {
				t.Errorf("expected no suggestions on failure, got %d", len(got))
			}

			stored := repo.stored("group-1")
			if tt.wantStored == -1 {
				if len(stored) != 1 || stored[0] != old[0] {
					t.Errorf("previous suggestions were modified: %v", stored)
				}
				return
			}
			if len(stored) != tt.wantStored {
				t.Errorf("expected %d stored suggestions, got %d", tt.wantStored, len(stored))
			}
		})
	}
}

func TestGenerate_ReadFailureKeepsCause(t *testing.T) {
	dbErr := errors.New("disk I/O error")
	repo := newMemRepo()
	repo.readErr = dbErr

	_, err := NewGenerator(repo).Generate(context.Background(), "group-1")
	if !errors.Is(err, ErrStoreUnavailable) || !errors.Is(err, dbErr) {
		t.Errorf("expected error wrapping both ErrStoreUnavailable and the cause, got %v", err)
	}
	if IsPreconditionError(err) {
		t.Error("read failure must not be reported as a precondition error")
	}
}

func TestGenerate_PrefersReplacer(t *testing.T) {
	repo := &txRepo{memRepo: newMemRepo()}
	repo.prefs["group-1"] = threeFriends()
	// Delete/insert would fail; a successful run proves they were not used.
	repo.deleteErr = errors.New("should not be called")
	repo.insertErr = errors.New("should not be called")

	got, err := NewGenerator(repo).Generate(context.Background(), "group-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if repo.replaceCalls != 1 {
		t.Errorf("expected 1 ReplaceSuggestions call, got %d", repo.replaceCalls)
	}
	if len(repo.stored("group-1")) != len(got) {
		t.Errorf("expected %d stored suggestions, got %d", len(got), len(repo.stored("group-1")))
	}
}

func TestGenerate_ReplacerFailureKeepsOldSuggestions(t *testing.T) {
	repo := &txRepo{memRepo: newMemRepo(), replaceErr: errors.New("tx aborted")}
	repo.prefs["group-1"] = threeFriends()
	old := seedOld(repo.memRepo, "group-1")

	_, err := NewGenerator(repo).Generate(context.Background(), "group-1")
	if !errors.Is(err, ErrStoreWrite) {
		t.Fatalf("expected ErrStoreWrite, got %v", err)
	}
	stored := repo.stored("group-1")
	if len(stored) != 1 || stored[0] != old[0] {
		t.Errorf("expected previous suggestions to survive a failed transaction, got %v", stored)
	}
}

func TestGenerate_ConcurrentRunsAreSerialized(t *testing.T) {
	repo := newMemRepo()
	repo.prefs["group-1"] = threeFriends()
	gen := NewGenerator(repo)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := gen.Generate(context.Background(), "group-1"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent run failed: %v", err)
	}
	if repo.overlap {
		t.Error("two runs for the same group overlapped")
	}
	if n := len(repo.stored("group-1")); n != 5 {
		t.Errorf("expected exactly 5 stored suggestions, got %d", n)
	}
}

func TestGenerate_CancelledWhileWaitingForLock(t *testing.T) {
	repo := newMemRepo()
	repo.prefs["group-1"] = threeFriends()
	gen := NewGenerator(repo)

	release, err := gen.locker.Acquire(context.Background(), "group-1")
	if err != nil {
		t.Fatalf("failed to take lock: %v", err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := gen.Generate(ctx, "group-1"); err == nil {
		t.Fatal("expected an error while the group is locked")
	}
	if n := len(repo.stored("group-1")); n != 0 {
		t.Errorf("expected nothing stored, got %d", n)
	}
}

func TestIsPreconditionError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrNoPreferences, true},
		{ErrIncompletePreferences, true},
		{ErrStoreUnavailable, false},
		{ErrStoreWrite, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsPreconditionError(tt.err); got != tt.want {
			t.Errorf("IsPreconditionError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
