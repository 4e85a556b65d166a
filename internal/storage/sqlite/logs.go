package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/emberhabits/ember/internal/models"
)

func scanLog(scan func(dest ...any) error) (models.DailyLog, error) {
	var l models.DailyLog
	var completed string

	if err := scan(&l.ID, &l.UserID, &l.Date, &completed); err != nil {
		return models.DailyLog{}, err
	}
	if err := json.Unmarshal([]byte(completed), &l.CompletedHabitIDs); err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to parse completed_habit_ids: %w", err)
	}
	return l, nil
}

func (s *Store) GetDailyLog(userID, date string) (models.DailyLog, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, date, completed_habit_ids
		FROM daily_logs WHERE user_id = ? AND date = ?`, userID, date)
	return scanLog(row.Scan)
}

func (s *Store) PutDailyLog(log models.DailyLog) error {
	completed, err := json.Marshal(log.CompletedHabitIDs)
	if err != nil {
		return err
	}
	if log.CompletedHabitIDs == nil {
		completed = []byte("[]")
	}

	_, err = s.db.Exec(`
		INSERT INTO daily_logs (id, user_id, date, completed_habit_ids)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET completed_habit_ids = excluded.completed_habit_ids`,
		log.ID, log.UserID, log.Date, string(completed))
	return err
}

func (s *Store) GetDailyLogsForRange(userID, startDate, endDate string) ([]models.DailyLog, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, date, completed_habit_ids
		FROM daily_logs
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date`, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		l, err := scanLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// DeleteUserData removes everything belonging to the user in one
// transaction: habits (archived included), daily logs, sessions and the
// user record itself.
func (s *Store) DeleteUserData(userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	for _, stmt := range []string{
		`DELETE FROM habits WHERE user_id = ?`,
		`DELETE FROM daily_logs WHERE user_id = ?`,
		`DELETE FROM sessions WHERE user_id = ?`,
		`DELETE FROM users WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, userID); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to delete user data: %w", err)
		}
	}

	return tx.Commit()
}
