// internal/service/saga.go
package service

import (
	"context"
	"log/slog"
)

type compensation struct {
	name string
	fn   func(context.Context) error
}

// Saga collects compensating actions for a multi-step write that is not
// covered by a single database transaction. On failure the recorded
// compensations run in reverse order; each failure is logged, not retried.
//
// Usage:
//
//	saga := NewSaga()
//	defer saga.Compensate(ctx)
//	... first write ...
//	saga.Push("delete organization", func(ctx context.Context) error { ... })
//	... second write ...
//	saga.Disarm()
type Saga struct {
	steps    []compensation
	disarmed bool
}

func NewSaga() *Saga {
	return &Saga{}
}

// Push records a compensating action for a completed step.
func (s *Saga) Push(name string, fn func(context.Context) error) {
	s.steps = append(s.steps, compensation{name: name, fn: fn})
}

// Disarm marks the saga as successful; Compensate becomes a no-op.
func (s *Saga) Disarm() {
	s.disarmed = true
}

// Compensate runs the recorded actions in reverse order.
func (s *Saga) Compensate(ctx context.Context) {
	if s.disarmed {
		return
	}
	for i := len(s.steps) - 1; i >= 0; i-- {
		step := s.steps[i]
		if err := step.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "compensating action failed",
				"step", step.name,
				"error", err,
			)
		} else {
			slog.WarnContext(ctx, "compensating action applied", "step", step.name)
		}
	}
}
