package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emberhabits/ember/internal/keyring"
	"github.com/emberhabits/ember/internal/logger"
	"github.com/emberhabits/ember/internal/models"
	"github.com/emberhabits/ember/internal/storage"
)

// SessionTTL is how long a sign-in stays valid without re-authentication.
const SessionTTL = 90 * 24 * time.Hour

// TokenStore abstracts the device credential slot so tests can avoid the
// OS keyring. The default uses the keyring package.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

type keyringTokenStore struct{}

func (keyringTokenStore) Get() (string, error) { return keyring.GetSessionToken() }
func (keyringTokenStore) Set(t string) error   { return keyring.SetSessionToken(t) }
func (keyringTokenStore) Delete() error        { return keyring.DeleteSessionToken() }

// Local authenticates against the users table and keeps the device session
// token in the OS keyring.
type Local struct {
	store  storage.Provider
	tokens TokenStore
	now    func() time.Time
}

// NewLocal creates a Local provider over the given store.
func NewLocal(store storage.Provider) *Local {
	return &Local{store: store, tokens: keyringTokenStore{}, now: time.Now}
}

// NewLocalWithTokens is NewLocal with an explicit token store, for tests.
func NewLocalWithTokens(store storage.Provider, tokens TokenStore) *Local {
	return &Local{store: store, tokens: tokens, now: time.Now}
}

func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

func newSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func verifyPassword(user models.User, password string) bool {
	got := hashPassword(password, user.PasswordSalt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(user.PasswordHash)) == 1
}

func (l *Local) SignUp(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := l.store.GetUserByEmail(email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("failed to check existing account: %w", err)
	}

	salt, err := newSalt()
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashPassword(password, salt),
		PasswordSalt: salt,
		CreatedAt:    l.now().UTC(),
	}
	if err := l.store.CreateUser(user); err != nil {
		return models.User{}, fmt.Errorf("failed to create account: %w", err)
	}
	logger.Info("Account created", "email", email)

	if err := l.openSession(user.ID); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (l *Local) SignIn(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := l.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("failed to look up account: %w", err)
	}
	if !verifyPassword(user, password) {
		return models.User{}, ErrInvalidCredentials
	}

	if err := l.openSession(user.ID); err != nil {
		return models.User{}, err
	}
	logger.Info("Signed in", "email", email)
	return user, nil
}

func (l *Local) SignOut() error {
	token, err := l.tokens.Get()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := l.store.DeleteSession(token); err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Warn("Failed to delete session row on sign-out", "error", err)
	}
	if err := l.tokens.Delete(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

func (l *Local) CurrentUser() (models.User, error) {
	sess, err := l.currentSession()
	if err != nil {
		return models.User{}, err
	}
	user, err := l.store.GetUser(sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Account deleted elsewhere while this device held a token.
			l.dropToken()
			return models.User{}, ErrSessionExpired
		}
		return models.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (l *Local) ResetPassword(oldPassword, newPassword string) error {
	user, err := l.CurrentUser()
	if err != nil {
		return err
	}
	if !verifyPassword(user, oldPassword) {
		return ErrInvalidCredentials
	}

	salt, err := newSalt()
	if err != nil {
		return err
	}
	if err := l.store.UpdateUserPassword(user.ID, hashPassword(newPassword, salt), salt); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Invalidate every session, then re-open this device's.
	if err := l.store.DeleteSessionsForUser(user.ID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	if err := l.openSession(user.ID); err != nil {
		return err
	}
	logger.Info("Password reset", "email", user.Email)
	return nil
}

func (l *Local) DeleteAccount(password string) error {
	user, err := l.CurrentUser()
	if err != nil {
		return err
	}
	if !verifyPassword(user, password) {
		return ErrInvalidCredentials
	}
	if err := l.store.DeleteUserData(user.ID); err != nil {
		return fmt.Errorf("failed to delete account data: %w", err)
	}
	l.dropToken()
	logger.Info("Account deleted", "email", user.Email)
	return nil
}

func (l *Local) SignInWithProvider(name string) (models.User, error) {
	return models.User{}, ErrFederatedUnsupported
}

func (l *Local) SupportsFederatedSignIn() bool { return false }

func (l *Local) currentSession() (models.Session, error) {
	token, err := l.tokens.Get()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return models.Session{}, ErrNotSignedIn
		}
		return models.Session{}, err
	}
	sess, err := l.store.GetSession(token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.dropToken()
			return models.Session{}, ErrSessionExpired
		}
		return models.Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	if sess.Expired(l.now()) {
		if err := l.store.DeleteSession(token); err != nil {
			logger.Warn("Failed to delete expired session", "error", err)
		}
		l.dropToken()
		return models.Session{}, ErrSessionExpired
	}
	return sess, nil
}

func (l *Local) openSession(userID string) error {
	now := l.now().UTC()
	sess := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := l.store.CreateSession(sess); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if err := l.tokens.Set(sess.Token); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	return nil
}

func (l *Local) dropToken() {
	if err := l.tokens.Delete(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Warn("Failed to clear session token", "error", err)
	}
}
