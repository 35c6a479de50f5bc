package notify

import (
	"testing"
	"time"
)

func TestSetAppliesDefaults(t *testing.T) {
	store := NewStore()
	store.Set(Notification{Text: "saved"})

	got := store.Snapshot()
	if !got.Show || got.Text != "saved" {
		t.Fatalf("unexpected notification: %+v", got)
	}
	if got.Color != "success" {
		t.Fatalf("expected default color, got %q", got.Color)
	}
	if got.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout, got %v", got.Timeout)
	}
}

func TestSetKeepsExplicitValues(t *testing.T) {
	store := NewStore()
	store.Set(Notification{Text: "failed", Color: "error", Timeout: time.Minute})

	got := store.Snapshot()
	if got.Color != "error" || got.Timeout != time.Minute {
		t.Fatalf("unexpected notification: %+v", got)
	}
}

func TestCloseHides(t *testing.T) {
	store := NewStore()
	store.Set(Notification{Text: "saved"})
	store.Close()

	if store.Snapshot().Show {
		t.Fatal("expected hidden notification")
	}
}

func TestAutoDismiss(t *testing.T) {
	store := NewStore()
	store.Set(Notification{Text: "quick", Timeout: 5 * time.Millisecond})

	deadline := time.After(2 * time.Second)
	for store.Snapshot().Show {
		select {
		case <-deadline:
			t.Fatal("notification never dismissed")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestNewerSetSupersedesOldTimer(t *testing.T) {
	store := NewStore()
	store.Set(Notification{Text: "first", Timeout: 5 * time.Millisecond})
	store.Set(Notification{Text: "second", Timeout: time.Minute})

	time.Sleep(50 * time.Millisecond)
	got := store.Snapshot()
	if !got.Show || got.Text != "second" {
		t.Fatalf("stale timer dismissed the newer notification: %+v", got)
	}
}

func TestNegativeTimeoutDisablesDismiss(t *testing.T) {
	store := NewStore()
	store.Set(Notification{Text: "sticky", Timeout: -1})

	time.Sleep(20 * time.Millisecond)
	if !store.Snapshot().Show {
		t.Fatal("expected notification to stay visible")
	}
}
