package sqlite

import (
	"database/sql"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/emberhabits/ember/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testUser(id string) models.User {
	return models.User{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: "hash",
		PasswordSalt: "salt",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestUserRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	want := testUser("u1")
	if err := store.CreateUser(want); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	got, err := store.GetUser("u1")
	if err != nil {
		t.Fatalf("GetUser() failed: %v", err)
	}
	if got.Email != want.Email || got.PasswordHash != want.PasswordHash {
		t.Errorf("GetUser() = %+v, want %+v", got, want)
	}

	byEmail, err := store.GetUserByEmail(want.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail() failed: %v", err)
	}
	if byEmail.ID != "u1" {
		t.Errorf("GetUserByEmail() ID = %q, want u1", byEmail.ID)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.GetUser("missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetUser() error = %v, want sql.ErrNoRows", err)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	store := setupTestStore(t)

	u1 := testUser("u1")
	if err := store.CreateUser(u1); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	u2 := testUser("u2")
	u2.Email = u1.Email
	if err := store.CreateUser(u2); err == nil {
		t.Error("CreateUser() with duplicate email should fail")
	}
}

func addHabit(t *testing.T, store *Store, id, userID, title string) {
	t.Helper()
	err := store.AddHabit(models.Habit{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Emoji:     "🔥",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("AddHabit(%s) failed: %v", id, err)
	}
}

func TestHabitLifecycle(t *testing.T) {
	store := setupTestStore(t)
	addHabit(t, store, "h1", "u1", "Read")

	h, err := store.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit() failed: %v", err)
	}
	if h.Title != "Read" || h.Archived {
		t.Errorf("GetHabit() = %+v", h)
	}

	h.Title = "Read more"
	h.Emoji = "📚"
	if err := store.UpdateHabit(h); err != nil {
		t.Fatalf("UpdateHabit() failed: %v", err)
	}
	h, err = store.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit() after update failed: %v", err)
	}
	if h.Title != "Read more" || h.Emoji != "📚" {
		t.Errorf("update not persisted: %+v", h)
	}

	if err := store.ArchiveHabit("h1"); err != nil {
		t.Fatalf("ArchiveHabit() failed: %v", err)
	}
	active, err := store.GetActiveHabits("u1")
	if err != nil {
		t.Fatalf("GetActiveHabits() failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("archived habit still active: %v", active)
	}

	// Archived habits remain fetchable by ID; archive is soft.
	h, err = store.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit() after archive failed: %v", err)
	}
	if !h.Archived {
		t.Error("habit not marked archived")
	}
}

func TestArchiveMissingHabit(t *testing.T) {
	store := setupTestStore(t)
	if err := store.ArchiveHabit("nope"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("ArchiveHabit() error = %v, want sql.ErrNoRows", err)
	}
}

func TestCountActiveHabits(t *testing.T) {
	store := setupTestStore(t)

	if n, _ := store.CountActiveHabits("u1"); n != 0 {
		t.Errorf("CountActiveHabits() = %d, want 0", n)
	}

	addHabit(t, store, "h1", "u1", "Read")
	addHabit(t, store, "h2", "u1", "Run")
	addHabit(t, store, "h3", "u2", "Other user")

	n, err := store.CountActiveHabits("u1")
	if err != nil {
		t.Fatalf("CountActiveHabits() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CountActiveHabits() = %d, want 2", n)
	}

	if err := store.ArchiveHabit("h1"); err != nil {
		t.Fatal(err)
	}
	if n, _ := store.CountActiveHabits("u1"); n != 1 {
		t.Errorf("CountActiveHabits() after archive = %d, want 1", n)
	}
}

func TestDailyLogUpsert(t *testing.T) {
	store := setupTestStore(t)

	log := models.NewDailyLog("u1", "2026-08-30")
	log.Toggle("h1")
	if err := store.PutDailyLog(log); err != nil {
		t.Fatalf("PutDailyLog() failed: %v", err)
	}

	got, err := store.GetDailyLog("u1", "2026-08-30")
	if err != nil {
		t.Fatalf("GetDailyLog() failed: %v", err)
	}
	if !got.Completed("h1") {
		t.Errorf("GetDailyLog() = %+v, missing h1", got)
	}

	// Second put for the same (user, date) must update, not duplicate.
	log.Toggle("h2")
	if err := store.PutDailyLog(log); err != nil {
		t.Fatalf("PutDailyLog() upsert failed: %v", err)
	}
	got, err = store.GetDailyLog("u1", "2026-08-30")
	if err != nil {
		t.Fatalf("GetDailyLog() after upsert failed: %v", err)
	}
	if got.CompletedCount() != 2 {
		t.Errorf("completed count = %d, want 2", got.CompletedCount())
	}

	logs, err := store.GetDailyLogsForRange("u1", "2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("GetDailyLogsForRange() failed: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("range returned %d logs, want 1", len(logs))
	}
}

func TestGetDailyLogsForRange(t *testing.T) {
	store := setupTestStore(t)

	for _, date := range []string{"2026-08-01", "2026-08-15", "2026-08-30", "2026-09-01"} {
		log := models.NewDailyLog("u1", date)
		log.Toggle("h1")
		if err := store.PutDailyLog(log); err != nil {
			t.Fatalf("PutDailyLog(%s) failed: %v", date, err)
		}
	}

	logs, err := store.GetDailyLogsForRange("u1", "2026-08-10", "2026-08-31")
	if err != nil {
		t.Fatalf("GetDailyLogsForRange() failed: %v", err)
	}

	var dates []string
	for _, l := range logs {
		dates = append(dates, l.Date)
	}
	want := []string{"2026-08-15", "2026-08-30"}
	if !slices.Equal(dates, want) {
		t.Errorf("range dates = %v, want %v", dates, want)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	sess := models.Session{
		Token:     "tok",
		UserID:    "u1",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second),
	}
	if err := store.CreateSession(sess); err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}

	got, err := store.GetSession("tok")
	if err != nil {
		t.Fatalf("GetSession() failed: %v", err)
	}
	if got.UserID != "u1" {
		t.Errorf("GetSession() UserID = %q, want u1", got.UserID)
	}

	if err := store.DeleteSession("tok"); err != nil {
		t.Fatalf("DeleteSession() failed: %v", err)
	}
	if _, err := store.GetSession("tok"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetSession() after delete error = %v, want sql.ErrNoRows", err)
	}
}

func TestDeleteUserData(t *testing.T) {
	store := setupTestStore(t)

	if err := store.CreateUser(testUser("u1")); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateUser(testUser("u2")); err != nil {
		t.Fatal(err)
	}
	addHabit(t, store, "h1", "u1", "Read")
	addHabit(t, store, "h2", "u2", "Keep")

	log := models.NewDailyLog("u1", "2026-08-30")
	log.Toggle("h1")
	if err := store.PutDailyLog(log); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateSession(models.Session{
		Token: "tok", UserID: "u1",
		CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteUserData("u1"); err != nil {
		t.Fatalf("DeleteUserData() failed: %v", err)
	}

	if _, err := store.GetUser("u1"); !errors.Is(err, sql.ErrNoRows) {
		t.Error("user record survived deletion")
	}
	if _, err := store.GetHabit("h1"); !errors.Is(err, sql.ErrNoRows) {
		t.Error("habit survived deletion")
	}
	if _, err := store.GetDailyLog("u1", "2026-08-30"); !errors.Is(err, sql.ErrNoRows) {
		t.Error("daily log survived deletion")
	}
	if _, err := store.GetSession("tok"); !errors.Is(err, sql.ErrNoRows) {
		t.Error("session survived deletion")
	}

	// Other users are untouched.
	if _, err := store.GetUser("u2"); err != nil {
		t.Errorf("unrelated user affected: %v", err)
	}
	if _, err := store.GetHabit("h2"); err != nil {
		t.Errorf("unrelated habit affected: %v", err)
	}
}
