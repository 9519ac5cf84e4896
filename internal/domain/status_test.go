package domain

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	all := []OrderStatus{StatusPending, StatusInProgress, StatusFinished}
	legal := map[[2]OrderStatus]bool{
		{StatusPending, StatusInProgress}:  true,
		{StatusInProgress, StatusFinished}: true,
	}
	for _, from := range all {
		for _, to := range all {
			want := legal[[2]OrderStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Fatalf("CanTransition(%q,%q): want=%v got=%v", from, to, want, got)
			}
		}
	}
	if !StatusFinished.Terminal() || StatusPending.Terminal() {
		t.Fatalf("unexpected terminal classification")
	}
	if next, ok := StatusPending.Next(); !ok || next != StatusInProgress {
		t.Fatalf("Pending.Next: got=%q ok=%v", next, ok)
	}
	if _, ok := StatusFinished.Next(); ok {
		t.Fatalf("Finished should have no next state")
	}
}

func TestParseOrderStatus(t *testing.T) {
	if s, err := ParseOrderStatus("In Progress"); err != nil || s != StatusInProgress {
		t.Fatalf("parse In Progress: s=%q err=%v", s, err)
	}
	if _, err := ParseOrderStatus("in_progress"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestParseRoleAndHome(t *testing.T) {
	r, err := ParseRole(" Worker ")
	if err != nil || r != RoleWorker {
		t.Fatalf("parse role: r=%q err=%v", r, err)
	}
	if r.Home() != "/worker" || RoleAdmin.Home() != "/admin" || RoleUser.Home() != "/" {
		t.Fatalf("unexpected home paths")
	}
	if _, err := ParseRole("root"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
