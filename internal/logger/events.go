package logger

import (
	"log/slog"
	"time"
)

// EventLogger records security and data-integrity events.
// It ensures credentials are never logged.
type EventLogger struct {
	logger *slog.Logger
}

// NewEventLogger wraps logger; a nil logger falls back to slog.Default()
func NewEventLogger(logger *slog.Logger) *EventLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventLogger{logger: logger}
}

// NewEventLoggerWithHandler creates an EventLogger with a custom handler.
func NewEventLoggerWithHandler(handler slog.Handler) *EventLogger {
	return &EventLogger{logger: slog.New(handler)}
}

// AuthFailure logs a failed authentication attempt.
// Never logs the actual credentials.
func (e *EventLogger) AuthFailure(ip, path, reason string) {
	e.logger.Warn("authentication_failure",
		slog.String("event_type", "auth_failure"),
		slog.String("ip", ip),
		slog.String("path", path),
		slog.String("reason", reason),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// AccessDenied logs an authorization denial.
func (e *EventLogger) AccessDenied(email, action, resource string) {
	e.logger.Warn("access_denied",
		slog.String("event_type", "access_denied"),
		slog.String("email", email),
		slog.String("action", action),
		slog.String("resource", resource),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// RateLimitExceeded logs when a client exceeds rate limits.
func (e *EventLogger) RateLimitExceeded(ip, path string) {
	e.logger.Warn("rate_limit_exceeded",
		slog.String("event_type", "rate_limit"),
		slog.String("ip", ip),
		slog.String("path", path),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// BootstrapOutcome logs the result of an admin bootstrap.
func (e *EventLogger) BootstrapOutcome(email string, created, promoted bool) {
	e.logger.Info("admin_bootstrap",
		slog.String("event_type", "bootstrap"),
		slog.String("email", email),
		slog.Bool("created", created),
		slog.Bool("promoted", promoted),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// ImportSummary logs the totals of a bulk import.
func (e *EventLogger) ImportSummary(total, valid, invalid, created, skipped, failed int) {
	e.logger.Info("bulk_import",
		slog.String("event_type", "import"),
		slog.Int("total", total),
		slog.Int("valid", valid),
		slog.Int("invalid", invalid),
		slog.Int("created", created),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// DuplicateForwarding logs a forwarding row shadowed by a later one for the same account.
func (e *EventLogger) DuplicateForwarding(accountEmail, keptID, shadowedID string) {
	e.logger.Warn("duplicate_forwarding",
		slog.String("event_type", "integrity"),
		slog.String("account_email", accountEmail),
		slog.String("kept_id", keptID),
		slog.String("shadowed_id", shadowedID),
	)
}

// StaleForwarding logs a forwarding row whose account email no longer matches its owner.
func (e *EventLogger) StaleForwarding(forwardingID, recordedEmail, accountEmail string) {
	e.logger.Warn("stale_forwarding",
		slog.String("event_type", "integrity"),
		slog.String("forwarding_id", forwardingID),
		slog.String("recorded_email", recordedEmail),
		slog.String("account_email", accountEmail),
	)
}

// PartialReconciliation logs an operation that applied only one of its two halves.
func (e *EventLogger) PartialReconciliation(operation, completed, failed string, err error) {
	e.logger.Error("partial_reconciliation",
		slog.String("event_type", "integrity"),
		slog.String("operation", operation),
		slog.String("completed", completed),
		slog.String("failed", failed),
		slog.String("error", err.Error()),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// SecurityEvent logs a generic security event.
func (e *EventLogger) SecurityEvent(eventType, ip string, details map[string]string) {
	attrs := []any{
		slog.String("event_type", eventType),
		slog.String("ip", ip),
		slog.Time("timestamp", time.Now().UTC()),
	}

	for k, v := range details {
		// Filter out sensitive keys
		if isSensitiveKey(k) {
			continue
		}
		attrs = append(attrs, slog.String(k, v))
	}

	e.logger.Warn("security_event", attrs...)
}

// GetLogger returns the underlying slog.Logger for use with middleware.
func (e *EventLogger) GetLogger() *slog.Logger {
	return e.logger
}

// isSensitiveKey checks if a key might contain sensitive data.
func isSensitiveKey(key string) bool {
	sensitiveKeys := map[string]bool{
		"password":      true,
		"token":         true,
		"secret":        true,
		"authorization": true,
		"auth":          true,
		"credential":    true,
		"credentials":   true,
		"session":       true,
		"cookie":        true,
	}
	return sensitiveKeys[key]
}
