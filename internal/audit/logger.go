// internal/audit/logger.go
package audit

import (
	"context"
	"log/slog"

	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/repository"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Entry describes one admin action inside an organization.
type Entry struct {
	OrganizationID uuid.UUID
	ActorID        uuid.UUID
	Action         string
	SubjectType    string
	SubjectID      string
	Context        model.JSONMap
}

// Logger defines the interface for recording admin actions.
type Logger interface {
	RecordAction(ctx context.Context, entry Entry)
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

// RecordAction implements Logger.RecordAction
func (l *NoOpLogger) RecordAction(ctx context.Context, entry Entry) {}

// DBLogger persists audit entries. Recording is best-effort: failures are
// logged and never block the action being audited.
type DBLogger struct {
	repo repository.AuditLogRepositoryIface
	log  *slog.Logger
}

func NewDBLogger(repo repository.AuditLogRepositoryIface, log *slog.Logger) *DBLogger {
	return &DBLogger{repo: repo, log: log}
}

// RecordAction implements Logger.RecordAction
func (l *DBLogger) RecordAction(ctx context.Context, entry Entry) {
	row := &model.AuditLog{
		OrganizationID: entry.OrganizationID,
		ActorID:        entry.ActorID,
		Action:         entry.Action,
		SubjectType:    entry.SubjectType,
		SubjectID:      entry.SubjectID,
		Context:        entry.Context,
		RequestID:      chimw.GetReqID(ctx),
	}

	if err := l.repo.Create(ctx, row); err != nil {
		l.log.WarnContext(ctx, "failed to record audit entry",
			"error", err,
			"action", entry.Action,
			"organizationID", entry.OrganizationID,
		)
	}
}
