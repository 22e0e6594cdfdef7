package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/friendsmeet/internal/models"
	"github.com/mmynk/friendsmeet/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "friendsmeet-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createGroup(t *testing.T, store *SQLiteStore, name string) (*models.Group, *models.Member) {
	t.Helper()

	group := &models.Group{Name: name, CreatedBy: "user-1"}
	creator := &models.Member{Name: "Alice", UserID: "user-1"}
	if err := store.CreateGroup(context.Background(), group, creator); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return group, creator
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and adds creator", func(t *testing.T) {
		group, creator := createGroup(t, store, "Book Club")

		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if creator.ID == "" || creator.GroupID != group.ID {
			t.Errorf("Expected creator to be stored in the group, got %+v", creator)
		}

		members, err := store.ListMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 1 || members[0].UserID != "user-1" {
			t.Errorf("Expected creator as only member, got %+v", members)
		}
	})

	t.Run("GetGroup retrieves stored fields", func(t *testing.T) {
		original := &models.Group{Name: "Hikers", Description: "Weekend trips", CreatedBy: "user-2"}
		if err := store.CreateGroup(ctx, original, nil); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		retrieved, err := store.GetGroup(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if retrieved.Name != original.Name {
			t.Errorf("Name mismatch: got %s, want %s", retrieved.Name, original.Name)
		}
		if retrieved.Description != original.Description {
			t.Errorf("Description mismatch: got %s, want %s", retrieved.Description, original.Description)
		}
		if retrieved.CreatedBy != original.CreatedBy {
			t.Errorf("CreatedBy mismatch: got %s, want %s", retrieved.CreatedBy, original.CreatedBy)
		}
	})

	t.Run("GetGroup returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListGroups returns newest first", func(t *testing.T) {
		older := &models.Group{Name: "Older", CreatedBy: "u", CreatedAt: 1000}
		newer := &models.Group{Name: "Newer", CreatedBy: "u", CreatedAt: 2000}
		for _, g := range []*models.Group{older, newer} {
			if err := store.CreateGroup(ctx, g, nil); err != nil {
				t.Fatalf("CreateGroup failed: %v", err)
			}
		}

		groups, err := store.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		pos := make(map[string]int)
		for i, g := range groups {
			pos[g.ID] = i
		}
		if pos[newer.ID] > pos[older.ID] {
			t.Errorf("Expected %s before %s", newer.Name, older.Name)
		}
	})

	t.Run("AddMember and GetMember", func(t *testing.T) {
		group, _ := createGroup(t, store, "Cinema")

		bob := &models.Member{GroupID: group.ID, Name: "Bob"}
		if err := store.AddMember(ctx, bob); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}

		got, err := store.GetMember(ctx, group.ID, bob.ID)
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if got.Name != "Bob" || got.UserID != "" {
			t.Errorf("Unexpected member: %+v", got)
		}

		members, err := store.ListMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 2 || members[0].Name != "Alice" || members[1].Name != "Bob" {
			t.Errorf("Expected [Alice Bob] in join order, got %+v", members)
		}

		if _, err := store.GetMember(ctx, "other-group", bob.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for member of another group, got %v", err)
		}
	})

	t.Run("AddMember to missing group fails", func(t *testing.T) {
		err := store.AddMember(ctx, &models.Member{GroupID: "missing", Name: "Ghost"})
		if err == nil {
			t.Error("Expected foreign key error, got nil")
		}
	})

	t.Run("DeleteGroup cascades", func(t *testing.T) {
		group, creator := createGroup(t, store, "Doomed")
		pref := &models.Preference{
			GroupID: group.ID, MemberID: creator.ID, MemberName: creator.Name,
			Dates: []string{"2025-01-10"}, Times: []string{"18:00"}, Locations: []string{"Cafe"},
		}
		if err := store.UpsertPreference(ctx, pref); err != nil {
			t.Fatalf("UpsertPreference failed: %v", err)
		}
		if err := store.InsertSuggestions(ctx, []*models.Suggestion{
			{ID: "s-doomed", GroupID: group.ID, Date: "2025-01-10", Time: "18:00", Location: "Cafe", Score: 3, Rank: 1},
		}); err != nil {
			t.Fatalf("InsertSuggestions failed: %v", err)
		}

		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}

		members, _ := store.ListMembers(ctx, group.ID)
		prefs, _ := store.ListPreferences(ctx, group.ID)
		suggestions, _ := store.ListSuggestions(ctx, group.ID)
		if len(members)+len(prefs)+len(suggestions) != 0 {
			t.Errorf("Expected cascade delete, got %d members, %d prefs, %d suggestions",
				len(members), len(prefs), len(suggestions))
		}

		if err := store.DeleteGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestPreferences(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group, alice := createGroup(t, store, "Friends")

	t.Run("GetPreference returns ErrNotFound before saving", func(t *testing.T) {
		_, err := store.GetPreference(ctx, group.ID, alice.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpsertPreference replaces all lists", func(t *testing.T) {
		first := &models.Preference{
			GroupID: group.ID, MemberID: alice.ID, MemberName: "Alice",
			Dates:     []string{"2025-01-10", "2025-01-11"},
			Times:     []string{"18:00"},
			Locations: []string{"Cafe"},
		}
		if err := store.UpsertPreference(ctx, first); err != nil {
			t.Fatalf("UpsertPreference failed: %v", err)
		}

		second := &models.Preference{
			GroupID: group.ID, MemberID: alice.ID, MemberName: "Alice",
			Dates:     []string{"2025-02-01"},
			Times:     nil,
			Locations: []string{"Park", "Museum"},
		}
		if err := store.UpsertPreference(ctx, second); err != nil {
			t.Fatalf("UpsertPreference failed: %v", err)
		}

		if second.ID != first.ID {
			t.Errorf("Expected record ID to be kept: got %s, want %s", second.ID, first.ID)
		}
		if second.CreatedAt != first.CreatedAt {
			t.Errorf("Expected CreatedAt to be kept: got %d, want %d", second.CreatedAt, first.CreatedAt)
		}

		got, err := store.GetPreference(ctx, group.ID, alice.ID)
		if err != nil {
			t.Fatalf("GetPreference failed: %v", err)
		}
		if len(got.Dates) != 1 || got.Dates[0] != "2025-02-01" {
			t.Errorf("Dates not replaced: %v", got.Dates)
		}
		if got.Times == nil || len(got.Times) != 0 {
			t.Errorf("Expected empty non-nil times, got %#v", got.Times)
		}
		if len(got.Locations) != 2 || got.Locations[0] != "Park" || got.Locations[1] != "Museum" {
			t.Errorf("Locations not replaced in order: %v", got.Locations)
		}

		prefs, err := store.ListPreferences(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListPreferences failed: %v", err)
		}
		if len(prefs) != 1 {
			t.Errorf("Expected one record per member, got %d", len(prefs))
		}
	})

	t.Run("ListPreferences returns every member", func(t *testing.T) {
		bob := &models.Member{GroupID: group.ID, Name: "Bob"}
		if err := store.AddMember(ctx, bob); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if err := store.UpsertPreference(ctx, &models.Preference{
			GroupID: group.ID, MemberID: bob.ID, MemberName: "Bob",
			Dates: []string{"2025-02-01"}, Times: []string{"19:00"}, Locations: []string{"Park"},
		}); err != nil {
			t.Fatalf("UpsertPreference failed: %v", err)
		}

		prefs, err := store.ListPreferences(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListPreferences failed: %v", err)
		}
		if len(prefs) != 2 {
			t.Errorf("Expected 2 records, got %d", len(prefs))
		}
	})
}

func TestSuggestions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group, _ := createGroup(t, store, "Friends")

	batch := func(prefix string, scores ...int) []*models.Suggestion {
		var out []*models.Suggestion
		for i, score := range scores {
			out = append(out, &models.Suggestion{
				ID: prefix + string(rune('a'+i)), GroupID: group.ID,
				Date: "2025-01-10", Time: "18:00", Location: prefix,
				Score: score, Rank: i + 1, CreatedAt: 1000,
			})
		}
		return out
	}

	t.Run("ListSuggestions orders by score then rank", func(t *testing.T) {
		if err := store.InsertSuggestions(ctx, batch("first", 4, 6, 6)); err != nil {
			t.Fatalf("InsertSuggestions failed: %v", err)
		}

		got, err := store.ListSuggestions(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListSuggestions failed: %v", err)
		}
		want := []string{"firstb", "firstc", "firsta"}
		if len(got) != len(want) {
			t.Fatalf("Expected %d suggestions, got %d", len(want), len(got))
		}
		for i, id := range want {
			if got[i].ID != id {
				t.Errorf("Position %d: got %s, want %s", i, got[i].ID, id)
			}
		}
	})

	t.Run("ReplaceSuggestions swaps the whole set", func(t *testing.T) {
		if err := store.ReplaceSuggestions(ctx, group.ID, batch("second", 5)); err != nil {
			t.Fatalf("ReplaceSuggestions failed: %v", err)
		}

		got, err := store.ListSuggestions(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListSuggestions failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "seconda" {
			t.Errorf("Expected only the new suggestion, got %+v", got)
		}
	})

	t.Run("failed ReplaceSuggestions keeps the old set", func(t *testing.T) {
		// Duplicate IDs violate the primary key on the second insert.
		dup := batch("third", 3, 2)
		dup[1].ID = dup[0].ID

		if err := store.ReplaceSuggestions(ctx, group.ID, dup); err == nil {
			t.Fatal("Expected error for duplicate IDs, got nil")
		}

		got, err := store.ListSuggestions(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListSuggestions failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "seconda" {
			t.Errorf("Expected rollback to keep the previous set, got %+v", got)
		}
	})

	t.Run("DeleteSuggestions clears the group", func(t *testing.T) {
		if err := store.DeleteSuggestions(ctx, group.ID); err != nil {
			t.Fatalf("DeleteSuggestions failed: %v", err)
		}
		got, err := store.ListSuggestions(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListSuggestions failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Expected no suggestions, got %d", len(got))
		}
	})
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("GetUserByEmail", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != user.ID || got.DisplayName != "Alice" {
			t.Errorf("Unexpected user: %+v", got)
		}
	})

	t.Run("GetUserByID", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.Email != user.Email {
			t.Errorf("Email mismatch: got %s, want %s", got.Email, user.Email)
		}
	})

	t.Run("missing user returns ErrNotFound", func(t *testing.T) {
		if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetUserByID(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := models.NewUser("alice@example.com", "Other Alice", "hash")
		if err := store.CreateUser(ctx, dup); !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})
}
