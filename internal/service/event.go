// internal/service/event.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beatbookhq/beatbook/internal/audit"
	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/policy"
	"github.com/beatbookhq/beatbook/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type EventService struct {
	eventRepo repository.EventRepositoryIface
	tagRepo   repository.TagRepositoryIface
	auditLog  audit.Logger
	validate  *validator.Validate
}

func NewEventService(
	eventRepo repository.EventRepositoryIface,
	tagRepo repository.TagRepositoryIface,
	auditLog audit.Logger,
) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		tagRepo:   tagRepo,
		auditLog:  auditLog,
		validate:  validator.New(),
	}
}

// EventPage is one page of a filtered event listing.
type EventPage struct {
	Events     []model.Event `json:"events"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"totalPages"`
}

// List returns the events visible to the caller, filtered and paginated.
// Visibility is computed by policy, never by the caller's parameters alone.
func (s *EventService) List(ctx context.Context, p policy.Principal, query policy.EventQuery) (*EventPage, error) {
	if d := policy.Authorize(p, nil, policy.ActionEventRead); !d.Allowed {
		return nil, d.Err()
	}

	filter := policy.BuildEventFilter(p, query)

	events, total, err := s.eventRepo.FindPaginated(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &EventPage{
		Events:     events,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: policy.TotalPages(total, filter.Limit),
	}, nil
}

// Get returns a single event if the caller may see it: admins see all events
// in their organization, members only their own.
func (s *EventService) Get(ctx context.Context, p policy.Principal, id uuid.UUID) (*model.Event, error) {
	if d := policy.Authorize(p, nil, policy.ActionEventRead); !d.Allowed {
		return nil, d.Err()
	}

	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OrganizationID != p.Profile.OrganizationID {
		// Cross-tenant ids read as absent, not forbidden.
		return nil, domain.ErrEventNotFound
	}
	if !p.IsAdmin() && event.OfficerID != p.UserID {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

type CreateEventInput struct {
	StartTime       time.Time  `json:"start_time" validate:"required"`
	EndTime         *time.Time `json:"end_time"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes"`
	InvolvedParties string     `json:"involved_parties"`
	TagIDs          []uuid.UUID `json:"tag_ids"`
}

// Create logs a new event for the caller. Officer identity is always taken
// from the authenticated profile, never from the request body. Tag attachment
// is best-effort: a failed association leaves the event untagged.
func (s *EventService) Create(ctx context.Context, p policy.Principal, input CreateEventInput) (*model.Event, error) {
	if d := policy.Authorize(p, nil, policy.ActionEventCreate); !d.Allowed {
		return nil, d.Err()
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	status := model.EventStatus(input.Status)
	if input.Status == "" {
		status = model.EventDraft
	}
	if !model.ValidEventStatus(status) {
		return nil, fmt.Errorf("%w: status must be draft or submitted", domain.ErrInvalidStatus)
	}

	event := &model.Event{
		OrganizationID:  p.Profile.OrganizationID,
		OfficerID:       p.UserID,
		OfficerName:     p.Profile.FullName,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Status:          status,
		Notes:           input.Notes,
		InvolvedParties: input.InvolvedParties,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	if len(input.TagIDs) > 0 {
		if err := s.attachTags(ctx, p, event, input.TagIDs); err != nil {
			slog.WarnContext(ctx, "failed to attach tags to new event",
				"eventID", event.ID,
				"error", err,
			)
		}
	}

	return event, nil
}

type UpdateEventInput struct {
	StartTime       *time.Time  `json:"start_time"`
	EndTime         *time.Time  `json:"end_time"`
	Status          *string     `json:"status"`
	Notes           *string     `json:"notes"`
	InvolvedParties *string     `json:"involved_parties"`
	TagIDs          *[]uuid.UUID `json:"tag_ids"`
}

// Update applies a partial edit. Members may only edit their own drafts;
// submitting flips the draft to its locked state. Admins may edit anything in
// their organization, including reverting submitted events to draft.
func (s *EventService) Update(ctx context.Context, p policy.Principal, id uuid.UUID, input UpdateEventInput) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := policy.CanModifyEvent(p, event, policy.ActionEventUpdate); !d.Allowed {
		return nil, d.Err()
	}

	if input.StartTime != nil {
		event.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = input.EndTime
	}
	if input.Notes != nil {
		event.Notes = *input.Notes
	}
	if input.InvolvedParties != nil {
		event.InvolvedParties = *input.InvolvedParties
	}
	if input.Status != nil {
		status := model.EventStatus(*input.Status)
		if !model.ValidEventStatus(status) {
			return nil, fmt.Errorf("%w: status must be draft or submitted", domain.ErrInvalidStatus)
		}
		if status == model.EventDraft && event.Status == model.EventSubmitted && !p.IsAdmin() {
			return nil, domain.ErrEventSubmitted
		}
		event.Status = status
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	if input.TagIDs != nil {
		if err := s.attachTags(ctx, p, event, *input.TagIDs); err != nil {
			return nil, err
		}
	}

	return s.eventRepo.FindByID(ctx, id)
}

// Delete removes a single event under the same lifecycle rules as Update.
func (s *EventService) Delete(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if d := policy.CanModifyEvent(p, event, policy.ActionEventDelete); !d.Allowed {
		return d.Err()
	}

	return s.eventRepo.Delete(ctx, event.ID)
}

// BulkDelete removes a set of events in the caller's organization. Admin
// only; ids outside the organization are silently skipped by the repository.
func (s *EventService) BulkDelete(ctx context.Context, p policy.Principal, ids []uuid.UUID) (int64, error) {
	if d := policy.Authorize(p, nil, policy.ActionEventBulkDelete); !d.Allowed {
		return 0, d.Err()
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids must not be empty", domain.ErrInvalidInput)
	}

	deleted, err := s.eventRepo.DeleteBulk(ctx, p.Profile.OrganizationID, ids)
	if err != nil {
		return 0, err
	}

	s.auditLog.RecordAction(ctx, audit.Entry{
		OrganizationID: p.Profile.OrganizationID,
		ActorID:        p.UserID,
		Action:         model.ActionEventBulkDelete,
		SubjectType:    "event",
		SubjectID:      fmt.Sprintf("%d", deleted),
		Context:        model.JSONMap{"requested": len(ids), "deleted": deleted},
	})

	return deleted, nil
}

// attachTags replaces the event's tag set with the ids that resolve inside
// the caller's organization. Unknown and cross-tenant ids are dropped.
func (s *EventService) attachTags(ctx context.Context, p policy.Principal, event *model.Event, tagIDs []uuid.UUID) error {
	tags := []model.Tag{}
	if len(tagIDs) > 0 {
		found, err := s.tagRepo.FindByIDs(ctx, p.Profile.OrganizationID, tagIDs)
		if err != nil {
			return err
		}
		tags = found
	}
	return s.eventRepo.ReplaceTags(ctx, event, tags)
}
