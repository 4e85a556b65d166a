package postgres

import (
	"database/sql"

	"github.com/emberhabits/ember/internal/models"
)

func scanHabit(scan func(dest ...any) error) (models.Habit, error) {
	var h models.Habit
	if err := scan(&h.ID, &h.UserID, &h.Title, &h.Emoji, &h.CreatedAt, &h.Archived); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (id, user_id, title, emoji, created_at, archived)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		habit.ID, habit.UserID, habit.Title, habit.Emoji, habit.CreatedAt, habit.Archived)
	return err
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, title, emoji, created_at, archived
		FROM habits WHERE id = $1`, id)
	return scanHabit(row.Scan)
}

func (s *Store) GetActiveHabits(userID string) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, emoji, created_at, archived
		FROM habits WHERE user_id = $1 AND NOT archived
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
		SELECT count(*) FROM habits WHERE user_id = $1 AND NOT archived`, userID).Scan(&count)
	return count, err
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		UPDATE habits SET title = $1, emoji = $2, archived = $3 WHERE id = $4`,
		habit.Title, habit.Emoji, habit.Archived, habit.ID)
	return err
}

func (s *Store) ArchiveHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET archived = TRUE WHERE id = $1`, id)
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
