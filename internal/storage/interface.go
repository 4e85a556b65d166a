package storage

import (
	"database/sql"

	"github.com/emberhabits/ember/internal/models"
)

// ErrNotFound is returned when a requested record does not exist. Both
// backends surface their driver's no-rows error unchanged, which database/sql
// normalizes for single-row queries.
var ErrNotFound = sql.ErrNoRows

// Provider is the document-store collaborator: CRUD over the users, habits
// and daily_logs collections plus the session table backing local auth.
// Live subscriptions are layered on top by Watcher.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Users
	CreateUser(models.User) error
	GetUser(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	UpdateUserPassword(id, hash, salt string) error

	// Sessions
	CreateSession(models.Session) error
	GetSession(token string) (models.Session, error)
	DeleteSession(token string) error
	DeleteSessionsForUser(userID string) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetActiveHabits(userID string) ([]models.Habit, error)
	CountActiveHabits(userID string) (int, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(id string) error

	// Daily logs. PutDailyLog upserts on the (user, date) natural key.
	GetDailyLog(userID, date string) (models.DailyLog, error)
	PutDailyLog(models.DailyLog) error
	GetDailyLogsForRange(userID, startDate, endDate string) ([]models.DailyLog, error)

	// DeleteUserData removes the user's habits, daily logs, sessions and
	// user record in a single transaction.
	DeleteUserData(userID string) error
}
