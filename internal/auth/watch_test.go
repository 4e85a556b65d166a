package auth

import (
	"testing"
	"time"
)

func waitSnapshot(t *testing.T, ch <-chan UserSnapshot) UserSnapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatal("channel closed unexpectedly")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for user snapshot")
	}
	panic("unreachable")
}

func TestWatchCurrentUser(t *testing.T) {
	local, _ := setupLocal(t)

	user, err := local.SignUp("a@b.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	ch, cancel := WatchCurrentUser(local, 5*time.Millisecond)
	defer cancel()

	first := waitSnapshot(t, ch)
	if !first.SignedIn || first.User.ID != user.ID {
		t.Fatalf("first snapshot = %+v", first)
	}

	if err := local.SignOut(); err != nil {
		t.Fatal(err)
	}

	second := waitSnapshot(t, ch)
	if second.SignedIn {
		t.Fatalf("snapshot after sign-out still signed in: %+v", second)
	}
}

func TestWatchCurrentUserCancel(t *testing.T) {
	local, _ := setupLocal(t)

	ch, cancel := WatchCurrentUser(local, 5*time.Millisecond)
	waitSnapshot(t, ch)
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}
