package auth

import (
	"context"
	"errors"
	"time"

	"github.com/emberhabits/ember/internal/models"
	"github.com/emberhabits/ember/internal/storage"
)

// UserSnapshot is one delivery from a current-user subscription.
// SignedIn=false means the device has no live session.
type UserSnapshot struct {
	User     models.User
	SignedIn bool
	At       time.Time
}

// WatchCurrentUser polls the provider and delivers a snapshot whenever the
// signed-in user changes, starting with an immediate one. Useful for
// long-lived frontends that must react to sign-out or account deletion
// happening underneath them.
func WatchCurrentUser(p Provider, interval time.Duration) (<-chan UserSnapshot, storage.CancelFunc) {
	if interval <= 0 {
		interval = storage.DefaultWatchInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan UserSnapshot, 1)

	go func() {
		defer close(out)

		var last UserSnapshot
		first := true

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			snap := UserSnapshot{At: time.Now()}
			user, err := p.CurrentUser()
			if err == nil {
				snap.User = user
				snap.SignedIn = true
			} else if !errors.Is(err, ErrNotSignedIn) && !errors.Is(err, ErrSessionExpired) {
				// Transient backend failure; keep the last known state.
				snap.User = last.User
				snap.SignedIn = last.SignedIn
			}

			if first || snap.SignedIn != last.SignedIn || snap.User.ID != last.User.ID {
				first = false
				last = snap
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, storage.CancelFunc(cancel)
}
