package deskauth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ticketry/deskauth/credstore"
)

func collectEvent(t *testing.T, sink *ChannelSink) AuditEvent {
	t.Helper()
	select {
	case event := <-sink.Events():
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit event")
		return AuditEvent{}
	}
}

func TestAuditDispatcherDeliversInOrder(t *testing.T) {
	sink := NewChannelSink(8)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 8}, sink)
	defer d.Close()

	d.Emit(context.Background(), AuditEvent{EventType: "first"})
	d.Emit(context.Background(), AuditEvent{EventType: "second"})

	if got := collectEvent(t, sink).EventType; got != "first" {
		t.Fatalf("expected first, got %q", got)
	}
	if got := collectEvent(t, sink).EventType; got != "second" {
		t.Fatalf("expected second, got %q", got)
	}
}

func TestAuditDispatcherDisabled(t *testing.T) {
	d := newAuditDispatcher(AuditConfig{Enabled: false}, NewChannelSink(1))
	if d != nil {
		t.Fatal("expected nil dispatcher when auditing is disabled")
	}
	// Nil receivers are no-ops.
	d.Emit(context.Background(), AuditEvent{EventType: "x"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("expected zero dropped")
	}
}

// gateSink blocks every Emit until the gate opens.
type gateSink struct {
	open chan struct{}
}

func (s gateSink) Emit(context.Context, AuditEvent) { <-s.open }

func TestAuditDispatcherDropIfFull(t *testing.T) {
	gate := gateSink{open: make(chan struct{})}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, gate)

	for i := 0; i < 64; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: "flood"})
	}
	if d.Dropped() == 0 {
		t.Fatal("expected dropped events under backpressure")
	}

	close(gate.open)
	d.Close()
}

func TestAuditDispatcherCloseDrains(t *testing.T) {
	sink := NewChannelSink(8)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 8}, sink)

	d.Emit(context.Background(), AuditEvent{EventType: "queued"})
	d.Close()

	if got := collectEvent(t, sink).EventType; got != "queued" {
		t.Fatalf("expected queued event after close, got %q", got)
	}
	// Emit after close is a no-op.
	d.Emit(context.Background(), AuditEvent{EventType: "late"})
}

func TestJSONWriterSinkOneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{EventType: "login_success", Success: true})
	sink.Emit(context.Background(), AuditEvent{EventType: "logout", Success: true})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var event AuditEvent
	if err := json.Unmarshal(lines[0], &event); err != nil {
		t.Fatalf("invalid JSON line: %v", err)
	}
	if event.EventType != "login_success" || !event.Success {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestSessionEmitsAuditEvents(t *testing.T) {
	server := httptest.NewServer(loginHandler(t, "T1", `{"id":42,"role":"support"}`))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Client.BaseURL = server.URL

	sink := NewChannelSink(16)
	session, err := New().
		WithConfig(cfg).
		WithStore(credstore.NewMemory()).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer session.Close()

	if !session.Login(context.Background(), Credentials{Username: "ada", Password: "pw"}) {
		t.Fatal("expected login to succeed")
	}

	event := collectEvent(t, sink)
	if event.EventType != "login_success" || !event.Success {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.UserID != "42" || event.Role != "support" {
		t.Fatalf("expected identity fields on the event, got %+v", event)
	}

	session.Logout(context.Background())
	if got := collectEvent(t, sink).EventType; got != "logout" {
		t.Fatalf("expected logout event, got %q", got)
	}
}
