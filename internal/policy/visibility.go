// internal/policy/visibility.go
package policy

import (
	"time"

	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/google/uuid"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// EventQuery carries the caller-supplied listing parameters after transport
// parsing. Dates arrive as YYYY-MM-DD strings.
type EventQuery struct {
	Status     *model.EventStatus
	StartDate  string
	EndDate    string
	TagIDs     []uuid.UUID
	OfficerIDs []uuid.UUID
	Page       int
	Limit      int
}

// FilterSpec is the computed event filter handed to the repository. Exactly
// one of OwnerID, OfficerIDs, or OwnDraftsFor is set, depending on role.
type FilterSpec struct {
	OrganizationID uuid.UUID

	// OwnerID restricts to a single officer (non-admin callers).
	OwnerID *uuid.UUID
	// OfficerIDs restricts to an explicit officer set (admin filter).
	OfficerIDs []uuid.UUID
	// OwnDraftsFor selects (officer_id = X AND draft) OR submitted: the
	// default admin view, which never exposes another officer's drafts.
	OwnDraftsFor *uuid.UUID

	Status *model.EventStatus
	// StartAfter is the inclusive lower bound on start_time.
	StartAfter *time.Time
	// EndBefore is the exclusive upper bound on start_time; an inclusive
	// end date becomes the following midnight with a strict less-than.
	EndBefore *time.Time
	TagIDs    []uuid.UUID

	Page   int
	Limit  int
	Offset int
}

// BuildEventFilter computes the visibility filter for a listing request.
// Non-admins only ever see their own events. Admins see either an explicit
// officer set or, by default, all submitted events plus their own drafts.
func BuildEventFilter(p Principal, q EventQuery) FilterSpec {
	f := FilterSpec{
		OrganizationID: p.Profile.OrganizationID,
		Status:         q.Status,
		TagIDs:         q.TagIDs,
	}

	switch {
	case !p.IsAdmin():
		id := p.UserID
		f.OwnerID = &id
	case len(q.OfficerIDs) > 0:
		f.OfficerIDs = q.OfficerIDs
	default:
		id := p.UserID
		f.OwnDraftsFor = &id
	}

	if t, err := time.Parse("2006-01-02", q.StartDate); err == nil {
		start := t.UTC()
		f.StartAfter = &start
	}
	if t, err := time.Parse("2006-01-02", q.EndDate); err == nil {
		end := t.UTC().AddDate(0, 0, 1)
		f.EndBefore = &end
	}

	f.Page = q.Page
	if f.Page < 1 {
		f.Page = 1
	}
	f.Limit = q.Limit
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	f.Offset = (f.Page - 1) * f.Limit

	return f
}

// TotalPages computes the page count for a filtered total.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
