package deskauth

import (
	"context"
	"strconv"
	"time"
)

// Audit event types emitted on session transitions.
const (
	auditLoginSuccess          = "login_success"
	auditLoginFailure          = "login_failure"
	auditOAuthLoginSuccess     = "oauth_login_success"
	auditOAuthLoginFailure     = "oauth_login_failure"
	auditLogout                = "logout"
	auditCredentialExpired     = "credential_expired"
	auditIdentityRefreshed     = "identity_refreshed"
	auditIdentityRefreshFailed = "identity_refresh_failed"
	auditIdentityUpdated       = "identity_updated"
	auditSessionHydrated       = "session_hydrated"
	auditStorageInconsistent   = "storage_inconsistent"
	auditUnknownCommand        = "unknown_command"
)

// emitAudit records a session transition. The identity fields are read under
// the session lock; callers must not hold it.
func (s *Session) emitAudit(ctx context.Context, eventType string, success bool, errMsg string, metadata map[string]string) {
	if s.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Success:   success,
		Error:     errMsg,
		Metadata:  metadata,
	}

	s.mu.Lock()
	if s.identity != nil {
		event.UserID = strconv.FormatInt(s.identity.ID, 10)
		event.Role = string(s.identity.Role)
	}
	s.mu.Unlock()

	s.audit.Emit(ctx, event)
}
