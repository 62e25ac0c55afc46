package bootstrap

import "context"

// AuditLog is one operational audit entry, separate from application logs so
// it can be shipped to a different sink later.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
