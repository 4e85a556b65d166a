package auth

import (
	"errors"

	"github.com/emberhabits/ember/internal/models"
)

var (
	// ErrInvalidCredentials is returned when the email or password is wrong.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionExpired is returned when the stored device credential no
	// longer maps to a live session. The caller should prompt for login.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// ErrNotSignedIn is returned by operations that need a current user
	// when no credential is stored on the device.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrEmailTaken is returned by SignUp when the email is already registered.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrFederatedUnsupported is returned for identity-provider sign-in,
	// which the local backend does not offer.
	ErrFederatedUnsupported = errors.New("federated sign-in is not supported by this backend")
)

// Provider is the authentication collaborator. The local implementation
// backs it with the storage layer and the OS keyring; a hosted backend
// could substitute its own without touching callers.
type Provider interface {
	// SignUp creates an account and signs the device in.
	SignUp(email, password string) (models.User, error)

	// SignIn verifies credentials and stores a session token on the device.
	SignIn(email, password string) (models.User, error)

	// SignOut destroys the device's session. Signing out while signed out
	// is a no-op.
	SignOut() error

	// CurrentUser resolves the device's stored credential to a user.
	// Returns ErrNotSignedIn when no credential exists and
	// ErrSessionExpired when the credential is stale.
	CurrentUser() (models.User, error)

	// ResetPassword sets a new password for the signed-in user and
	// invalidates every other session.
	ResetPassword(oldPassword, newPassword string) error

	// DeleteAccount verifies the password, removes all of the user's data
	// and signs the device out.
	DeleteAccount(password string) error

	// SignInWithProvider starts a federated sign-in flow. Backends without
	// one return ErrFederatedUnsupported.
	SignInWithProvider(name string) (models.User, error)

	// SupportsFederatedSignIn reports whether SignInWithProvider works.
	SupportsFederatedSignIn() bool
}
