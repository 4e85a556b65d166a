package postgres

import (
	"database/sql"

	"github.com/emberhabits/ember/internal/models"
)

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.PasswordSalt, &u.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) CreateUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, password_hash, password_salt, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.PasswordHash, user.PasswordSalt, user.CreatedAt)
	return err
}

func (s *Store) GetUser(id string) (models.User, error) {
	return scanUser(s.db.QueryRow(`
		SELECT id, email, password_hash, password_salt, created_at
		FROM users WHERE id = $1`, id))
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	return scanUser(s.db.QueryRow(`
		SELECT id, email, password_hash, password_salt, created_at
		FROM users WHERE email = $1`, email))
}

func (s *Store) UpdateUserPassword(id, hash, salt string) error {
	_, err := s.db.Exec(`
		UPDATE users SET password_hash = $1, password_salt = $2 WHERE id = $3`,
		hash, salt, id)
	return err
}

func (s *Store) CreateSession(session models.Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`,
		session.Token, session.UserID, session.CreatedAt, session.ExpiresAt)
	return err
}

func (s *Store) GetSession(token string) (models.Session, error) {
	var sess models.Session
	err := s.db.QueryRow(`
		SELECT token, user_id, created_at, expires_at
		FROM sessions WHERE token = $1`, token).
		Scan(&sess.Token, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (s *Store) DeleteSession(token string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func (s *Store) DeleteSessionsForUser(userID string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}
