// internal/service/reconciler.go
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/beatbookhq/beatbook/internal/repository"
)

// InvitationReconciler periodically sweeps pending invitations past their
// deadline. Read paths already expire lazily; the sweep keeps listings
// honest for organizations nobody is looking at.
type InvitationReconciler struct {
	invitationRepo repository.InvitationRepositoryIface
	interval       time.Duration
	log            *slog.Logger
}

func NewInvitationReconciler(invitationRepo repository.InvitationRepositoryIface, interval time.Duration, log *slog.Logger) *InvitationReconciler {
	return &InvitationReconciler{
		invitationRepo: invitationRepo,
		interval:       interval,
		log:            log,
	}
}

// Run blocks until ctx is cancelled, sweeping once per interval. Call it
// from its own goroutine.
func (r *InvitationReconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			r.log.InfoContext(ctx, "invitation reconciler stopped")
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *InvitationReconciler) sweep(ctx context.Context) {
	expired, err := r.invitationRepo.ExpirePending(ctx, time.Now())
	if err != nil {
		r.log.ErrorContext(ctx, "invitation sweep failed", "error", err)
		return
	}
	if expired > 0 {
		r.log.InfoContext(ctx, "expired stale invitations", "count", expired)
	}
}
