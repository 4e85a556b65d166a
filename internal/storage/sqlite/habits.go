package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/emberhabits/ember/internal/models"
)

func scanHabit(scan func(dest ...any) error) (models.Habit, error) {
	var h models.Habit
	var createdAt string
	var archived int

	if err := scan(&h.ID, &h.UserID, &h.Title, &h.Emoji, &createdAt, &archived); err != nil {
		return models.Habit{}, err
	}

	var err error
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	h.Archived = archived != 0
	return h, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	archived := 0
	if habit.Archived {
		archived = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO habits (id, user_id, title, emoji, created_at, archived)
		VALUES (?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.UserID, habit.Title, habit.Emoji,
		habit.CreatedAt.Format(time.RFC3339), archived)
	return err
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, title, emoji, created_at, archived
		FROM habits WHERE id = ?`, id)
	return scanHabit(row.Scan)
}

func (s *Store) GetActiveHabits(userID string) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, emoji, created_at, archived
		FROM habits WHERE user_id = ? AND archived = 0
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) CountActiveHabits(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT count(*) FROM habits WHERE user_id = ? AND archived = 0`, userID).Scan(&count)
	return count, err
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	archived := 0
	if habit.Archived {
		archived = 1
	}
	_, err := s.db.Exec(`
		UPDATE habits SET title = ?, emoji = ?, archived = ? WHERE id = ?`,
		habit.Title, habit.Emoji, archived, habit.ID)
	return err
}

func (s *Store) ArchiveHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET archived = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
