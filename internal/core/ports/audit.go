package ports

import (
	"context"

	"github.com/saariz/identity-service/internal/core/domain"
)

// AuditRecorder accepts audit entries for asynchronous persistence.
// Record must not block the calling request path.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
