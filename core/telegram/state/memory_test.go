package state

import (
	"testing"
	"time"
)

const testState State = "test_awaiting_input"

func TestMemoryManagerTransitions(t *testing.T) {
	mgr := NewMemoryManager()
	const userID int64 = 7

	if got := mgr.GetState(userID); got != StateIdle {
		t.Fatalf("fresh state = %s, want %s", got, StateIdle)
	}
	if mgr.InProgress(userID) {
		t.Fatal("fresh user must not be in progress")
	}

	mgr.SetState(userID, testState)
	if got := mgr.GetState(userID); got != testState {
		t.Fatalf("state = %s, want %s", got, testState)
	}
	if !mgr.InProgress(userID) {
		t.Fatal("expected in-progress after SetState")
	}

	mgr.ClearState(userID)
	if got := mgr.GetState(userID); got != StateIdle {
		t.Fatalf("state after ClearState = %s, want idle", got)
	}
}

func TestMemoryManagerTempData(t *testing.T) {
	mgr := NewMemoryManager()
	const userID int64 = 11

	if _, ok := mgr.GetTemp(userID, "name"); ok {
		t.Fatal("unexpected temp value on fresh session")
	}

	mgr.SetTemp(userID, "name", "alice")
	got, ok := mgr.GetTempString(userID, "name")
	if !ok || got != "alice" {
		t.Fatalf("GetTempString = %q, %v", got, ok)
	}

	mgr.SetTemp(userID, "count", 3)
	if _, ok := mgr.GetTempString(userID, "count"); ok {
		t.Fatal("non-string temp value must not assert as string")
	}

	mgr.ClearTemp(userID, "name")
	if _, ok := mgr.GetTemp(userID, "name"); ok {
		t.Fatal("temp value survived ClearTemp")
	}

	mgr.Clear(userID)
	if _, ok := mgr.GetTemp(userID, "count"); ok {
		t.Fatal("temp value survived Clear")
	}
}

func TestMemoryManagerTTLExpiry(t *testing.T) {
	mgr := NewMemoryManagerTTL(10 * time.Minute)
	mm := mgr.(*memoryManager)

	now := time.Now()
	mm.now = func() time.Time { return now }

	const userID int64 = 21
	mgr.SetState(userID, testState)
	mgr.SetTemp(userID, "name", "alice")

	now = now.Add(5 * time.Minute)
	if got := mgr.GetState(userID); got != testState {
		t.Fatalf("state inside TTL = %s, want %s", got, testState)
	}

	// Reading inside the TTL must not refresh the session.
	now = now.Add(6 * time.Minute)
	if got := mgr.GetState(userID); got != StateIdle {
		t.Fatalf("state past TTL = %s, want idle", got)
	}
	if _, ok := mgr.GetTemp(userID, "name"); ok {
		t.Fatal("temp data survived TTL expiry")
	}
	if mgr.InProgress(userID) {
		t.Fatal("expired session reported as in progress")
	}
}

func TestMemoryManagerZeroTTLNeverExpires(t *testing.T) {
	mgr := NewMemoryManagerTTL(0)
	mm := mgr.(*memoryManager)

	now := time.Now()
	mm.now = func() time.Time { return now }

	const userID int64 = 31
	mgr.SetState(userID, testState)

	now = now.Add(72 * time.Hour)
	if got := mgr.GetState(userID); got != testState {
		t.Fatalf("state with zero TTL = %s, want %s", got, testState)
	}
}

func TestMemoryManagerWritesRefreshTTL(t *testing.T) {
	mgr := NewMemoryManagerTTL(10 * time.Minute)
	mm := mgr.(*memoryManager)

	now := time.Now()
	mm.now = func() time.Time { return now }

	const userID int64 = 41
	mgr.SetState(userID, testState)

	now = now.Add(8 * time.Minute)
	mgr.SetTemp(userID, "name", "alice")

	now = now.Add(8 * time.Minute)
	if got := mgr.GetState(userID); got != testState {
		t.Fatalf("state = %s, want %s after refresh", got, testState)
	}
}
