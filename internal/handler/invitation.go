// internal/handler/invitation.go
package handler

import (
	"net/http"

	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/service"
	"github.com/go-chi/chi/v5"
)

type InvitationHandler struct {
	invitationService *service.InvitationService
	resolver          PrincipalResolver
	debug             bool
}

func NewInvitationHandler(invitationService *service.InvitationService, resolver PrincipalResolver, debug bool) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService, resolver: resolver, debug: debug}
}

type InvitationResponse struct {
	BaseResponse
	Invitation *model.Invitation `json:"invitation"`
}

func (h *InvitationHandler) SendHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}

	var input service.SendInvitationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	invitation, err := h.invitationService.Send(r.Context(), p, input)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusCreated, InvitationResponse{
		BaseResponse: BaseResponse{Ok: true},
		Invitation:   invitation,
	})
}

type InvitationListResponse struct {
	BaseResponse
	Invitations []model.Invitation `json:"invitations"`
}

func (h *InvitationHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}

	invitations, err := h.invitationService.List(r.Context(), p)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, InvitationListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Invitations:  invitations,
	})
}

// PreviewHandler resolves an invitation token for the public accept page.
// The token itself is the credential here; no bearer token is required.
func (h *InvitationHandler) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		respondWithError(w, http.StatusBadRequest, "Token is required")
		return
	}

	preview, err := h.invitationService.FetchByToken(r.Context(), token)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, preview)
}

type AcceptResponse struct {
	BaseResponse
	User *model.User `json:"user"`
}

// AcceptHandler joins the authenticated caller to the inviting organization.
func (h *InvitationHandler) AcceptHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}

	token := chi.URLParam(r, "token")
	if token == "" {
		respondWithError(w, http.StatusBadRequest, "Token is required")
		return
	}

	var input service.AcceptInvitationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	user, err := h.invitationService.Accept(r.Context(), principal, token, input)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusCreated, AcceptResponse{
		BaseResponse: BaseResponse{Ok: true},
		User:         user,
	})
}

func (h *InvitationHandler) ResendHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.invitationService.Resend(r.Context(), p, id); err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *InvitationHandler) RevokeHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.invitationService.Revoke(r.Context(), p, id); err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
