package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/pokerhub/pokerhub-backend/internal/models"
	repo "github.com/pokerhub/pokerhub-backend/internal/repository"
	"github.com/pokerhub/pokerhub-backend/internal/worker"
)

// AuditRecorder appends admin-action audit rows off the request path.
// Failures are logged and dropped; auditing never fails a request.
type AuditRecorder struct {
	r   repo.AuditLogs
	wp  *worker.Pool
	log *slog.Logger
}

func NewAuditRecorder(r repo.AuditLogs, wp *worker.Pool, log *slog.Logger) *AuditRecorder {
	return &AuditRecorder{r: r, wp: wp, log: log}
}

func (a *AuditRecorder) Record(entityType, entityID, action string, details map[string]any) {
	l := models.AuditLog{
		EntityType: entityType,
		Action:     action,
		Details:    details,
	}
	if entityID != "" {
		l.EntityID = &entityID
	}
	a.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.r.Create(ctx, l); err != nil {
			a.log.Warn("audit append failed", "entity_type", entityType, "action", action, "err", err)
		}
	})
}
