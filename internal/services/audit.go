package services

import (
	"context"
	"log/slog"

	"github.com/mdiaw/bibliotheque/internal/models"
	repo "github.com/mdiaw/bibliotheque/internal/repository"
	"github.com/mdiaw/bibliotheque/internal/worker"
)

// auditTrail records domain actions off the request path. Failures are
// logged, never surfaced to the user.
type auditTrail struct {
	logs repo.AuditLogs
	wp   *worker.Pool
}

func (a *auditTrail) record(entityType, entityID, action string, details map[string]any) {
	if a.logs == nil || a.wp == nil {
		return
	}
	id := entityID
	a.wp.Submit(func() {
		err := a.logs.Create(context.Background(), models.AuditLog{
			EntityType: entityType,
			EntityID:   &id,
			Action:     action,
			Details:    details,
		})
		if err != nil {
			slog.Error("audit write", "err", err, "entity", entityType, "action", action)
		}
	})
}
