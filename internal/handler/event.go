// internal/handler/event.go
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/policy"
	"github.com/beatbookhq/beatbook/internal/service"
	"github.com/google/uuid"
)

type EventHandler struct {
	eventService *service.EventService
	resolver     PrincipalResolver
	debug        bool
}

func NewEventHandler(eventService *service.EventService, resolver PrincipalResolver, debug bool) *EventHandler {
	return &EventHandler{eventService: eventService, resolver: resolver, debug: debug}
}

// ListHandler returns the caller's visible events, filtered and paginated.
//
// Query parameters: status, start_date, end_date (YYYY-MM-DD), tag_ids and
// officer_ids (comma-separated UUIDs), page, limit.
func (h *EventHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}

	query := policy.EventQuery{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := model.EventStatus(s)
		if !model.ValidEventStatus(status) {
			respondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		query.Status = &status
	}

	var ok2 bool
	if query.TagIDs, ok2 = parseUUIDList(w, r.URL.Query().Get("tag_ids"), "tag_ids"); !ok2 {
		return
	}
	if query.OfficerIDs, ok2 = parseUUIDList(w, r.URL.Query().Get("officer_ids"), "officer_ids"); !ok2 {
		return
	}

	query.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	query.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	page, err := h.eventService.List(r.Context(), p, query)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, page)
}

type EventResponse struct {
	BaseResponse
	Event *model.Event `json:"event"`
}

func (h *EventHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	event, err := h.eventService.Get(r.Context(), p, id)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, EventResponse{
		BaseResponse: BaseResponse{Ok: true},
		Event:        event,
	})
}

func (h *EventHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}

	var input service.CreateEventInput
	if !decodeJSON(w, r, &input) {
		return
	}

	event, err := h.eventService.Create(r.Context(), p, input)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusCreated, EventResponse{
		BaseResponse: BaseResponse{Ok: true},
		Event:        event,
	})
}

func (h *EventHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var input service.UpdateEventInput
	if !decodeJSON(w, r, &input) {
		return
	}

	event, err := h.eventService.Update(r.Context(), p, id, input)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, EventResponse{
		BaseResponse: BaseResponse{Ok: true},
		Event:        event,
	})
}

func (h *EventHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.eventService.Delete(r.Context(), p, id); err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type BulkDeleteResponse struct {
	BaseResponse
	Deleted int64 `json:"deleted"`
}

func (h *EventHandler) BulkDeleteHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}

	var req BulkDeleteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	deleted, err := h.eventService.BulkDelete(r.Context(), p, req.IDs)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, BulkDeleteResponse{
		BaseResponse: BaseResponse{Ok: true},
		Deleted:      deleted,
	})
}

func parseUUIDList(w http.ResponseWriter, raw, name string) ([]uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid "+name)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
