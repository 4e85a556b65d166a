package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/emberhabits/ember/internal/models"
)

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var createdAt string

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.PasswordSalt, &createdAt)
	if err != nil {
		return models.User{}, err
	}

	u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return u, nil
}

func (s *Store) CreateUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, password_hash, password_salt, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, user.PasswordSalt,
		user.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetUser(id string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, email, password_hash, password_salt, created_at
		FROM users WHERE id = ?`, id)

	return scanUser(row)
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, email, password_hash, password_salt, created_at
		FROM users WHERE email = ?`, email)

	return scanUser(row)
}

func (s *Store) UpdateUserPassword(id, hash, salt string) error {
	_, err := s.db.Exec(`
		UPDATE users SET password_hash = ?, password_salt = ? WHERE id = ?`,
		hash, salt, id)
	return err
}

func (s *Store) CreateSession(session models.Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		session.Token, session.UserID,
		session.CreatedAt.Format(time.RFC3339),
		session.ExpiresAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetSession(token string) (models.Session, error) {
	row := s.db.QueryRow(`
		SELECT token, user_id, created_at, expires_at
		FROM sessions WHERE token = ?`, token)

	var sess models.Session
	var createdAt, expiresAt string
	err := row.Scan(&sess.Token, &sess.UserID, &createdAt, &expiresAt)
	if err != nil {
		return models.Session{}, err
	}

	sess.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	sess.ExpiresAt, err = time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to parse expires_at: %w", err)
	}
	return sess, nil
}

func (s *Store) DeleteSession(token string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}

func (s *Store) DeleteSessionsForUser(userID string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}
