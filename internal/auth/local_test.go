package auth

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/emberhabits/ember/internal/keyring"
	"github.com/emberhabits/ember/internal/models"
	"github.com/emberhabits/ember/internal/storage/sqlite"
)

type memTokens struct {
	token string
}

func (m *memTokens) Get() (string, error) {
	if m.token == "" {
		return "", keyring.ErrNotFound
	}
	return m.token, nil
}

func (m *memTokens) Set(t string) error { m.token = t; return nil }
func (m *memTokens) Delete() error      { m.token = ""; return nil }

func setupLocal(t *testing.T) (*Local, *memTokens) {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tokens := &memTokens{}
	return NewLocalWithTokens(store, tokens), tokens
}

func TestSignUpAndCurrentUser(t *testing.T) {
	local, tokens := setupLocal(t)

	user, err := local.SignUp("Alice@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignUp() failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if tokens.token == "" {
		t.Error("no session token stored after sign-up")
	}

	got, err := local.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser() failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("CurrentUser() ID = %q, want %q", got.ID, user.ID)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	local, _ := setupLocal(t)

	if _, err := local.SignUp("a@b.com", "hunter22"); err != nil {
		t.Fatal(err)
	}
	if _, err := local.SignUp("a@b.com", "other123"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("SignUp() error = %v, want ErrEmailTaken", err)
	}
}

func TestSignInWrongCredentials(t *testing.T) {
	local, _ := setupLocal(t)

	if _, err := local.SignUp("a@b.com", "hunter22"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "a@b.com", "nope"},
		{"unknown email", "c@d.com", "hunter22"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := local.SignIn(tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("SignIn() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestSignOut(t *testing.T) {
	local, tokens := setupLocal(t)

	if _, err := local.SignUp("a@b.com", "hunter22"); err != nil {
		t.Fatal(err)
	}
	if err := local.SignOut(); err != nil {
		t.Fatalf("SignOut() failed: %v", err)
	}
	if tokens.token != "" {
		t.Error("token survived sign-out")
	}
	if _, err := local.CurrentUser(); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("CurrentUser() after sign-out error = %v, want ErrNotSignedIn", err)
	}

	// Signing out while signed out is a no-op.
	if err := local.SignOut(); err != nil {
		t.Errorf("second SignOut() failed: %v", err)
	}
}

func TestStaleTokenIsSessionExpired(t *testing.T) {
	local, tokens := setupLocal(t)

	if _, err := local.SignUp("a@b.com", "hunter22"); err != nil {
		t.Fatal(err)
	}

	// Simulate a credential whose session row is gone.
	tokens.token = "stale-token"
	if _, err := local.CurrentUser(); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("CurrentUser() error = %v, want ErrSessionExpired", err)
	}
	if tokens.token != "" {
		t.Error("stale token not cleared")
	}
}

func TestExpiredSession(t *testing.T) {
	local, _ := setupLocal(t)

	if _, err := local.SignUp("a@b.com", "hunter22"); err != nil {
		t.Fatal(err)
	}

	local.now = func() time.Time { return time.Now().Add(SessionTTL + time.Hour) }
	if _, err := local.CurrentUser(); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("CurrentUser() error = %v, want ErrSessionExpired", err)
	}
}

func TestResetPassword(t *testing.T) {
	local, _ := setupLocal(t)

	if _, err := local.SignUp("a@b.com", "hunter22"); err != nil {
		t.Fatal(err)
	}

	if err := local.ResetPassword("wrong", "newpass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ResetPassword() with wrong old password error = %v", err)
	}

	if err := local.ResetPassword("hunter22", "newpass1"); err != nil {
		t.Fatalf("ResetPassword() failed: %v", err)
	}

	// Still signed in on this device afterwards.
	if _, err := local.CurrentUser(); err != nil {
		t.Errorf("CurrentUser() after reset failed: %v", err)
	}

	if _, err := local.SignIn("a@b.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password still accepted")
	}
	if _, err := local.SignIn("a@b.com", "newpass1"); err != nil {
		t.Errorf("SignIn() with new password failed: %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	local, tokens := setupLocal(t)

	if _, err := local.SignUp("a@b.com", "hunter22"); err != nil {
		t.Fatal(err)
	}

	if err := local.DeleteAccount("wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("DeleteAccount() with wrong password error = %v", err)
	}

	if err := local.DeleteAccount("hunter22"); err != nil {
		t.Fatalf("DeleteAccount() failed: %v", err)
	}
	if tokens.token != "" {
		t.Error("token survived account deletion")
	}
	if _, err := local.SignIn("a@b.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("deleted account still signs in: %v", err)
	}
}

func TestFederatedSignInUnsupported(t *testing.T) {
	local, _ := setupLocal(t)

	if local.SupportsFederatedSignIn() {
		t.Error("SupportsFederatedSignIn() = true")
	}
	if _, err := local.SignInWithProvider("google"); !errors.Is(err, ErrFederatedUnsupported) {
		t.Errorf("SignInWithProvider() error = %v, want ErrFederatedUnsupported", err)
	}
}

func TestPasswordHashingSaltsDiffer(t *testing.T) {
	local, _ := setupLocal(t)

	if _, err := local.SignUp("a@b.com", "samepass"); err != nil {
		t.Fatal(err)
	}
	if err := local.SignOut(); err != nil {
		t.Fatal(err)
	}
	if _, err := local.SignUp("c@d.com", "samepass"); err != nil {
		t.Fatal(err)
	}

	var users [2]models.User
	for i, email := range []string{"a@b.com", "c@d.com"} {
		u, err := local.store.GetUserByEmail(email)
		if err != nil {
			t.Fatal(err)
		}
		users[i] = u
	}
	if users[0].PasswordHash == users[1].PasswordHash {
		t.Error("identical passwords produced identical hashes")
	}
}
