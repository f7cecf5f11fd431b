// internal/handler/common.go
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/beatbookhq/beatbook/internal/auth"
	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/policy"
	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ErrorResponse struct { // TypeGen: ErrorResponse
	BaseResponse
	Error   string  `json:"error"`
	Details *string `json:"details,omitempty"`
	Code    *string `json:"error_code,omitempty"`
}

type BaseResponse struct { // TypeGen: DefaultResponse
	Ok bool `json:"ok"`
}

// PrincipalResolver loads the caller's profile for policy checks.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, principal auth.Principal) (policy.Principal, error)
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// If encoding fails, logs the error and sends a plain text response
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// errorStatus maps a domain error to its HTTP status and client-safe message.
// 4xx denials are grouped: bad input, missing, and state conflicts each keep
// a stable shape regardless of which operation hit them. An expired
// invitation counts as bad input: the token is no longer usable.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidNonce):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvitationExpired):
		return http.StatusBadRequest, "Invitation has expired"
	case errors.Is(err, domain.ErrPasswordTooWeak):
		return http.StatusBadRequest, "Password does not meet requirements"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden, "Insufficient role"
	case errors.Is(err, domain.ErrCrossTenant):
		return http.StatusForbidden, "Resource belongs to another organization"
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden, "Not the owner of this resource"
	case errors.Is(err, domain.ErrSelfAction):
		return http.StatusForbidden, "Cannot perform this action on yourself"
	case errors.Is(err, domain.ErrTargetIsAdmin):
		return http.StatusForbidden, "Demote the admin before removing them"
	case errors.Is(err, domain.ErrEmailMismatch):
		return http.StatusForbidden, "Invitation was issued to a different email"
	case errors.Is(err, domain.ErrLastAdmin):
		return http.StatusConflict, "Organization must keep at least one admin"
	case errors.Is(err, domain.ErrEventSubmitted):
		return http.StatusConflict, "Submitted events are locked"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return http.StatusConflict, "Email already exists"
	case errors.Is(err, domain.ErrProfileExists):
		return http.StatusConflict, "Profile already exists"
	case errors.Is(err, domain.ErrTagNameTaken):
		return http.StatusConflict, "A tag with that name already exists"
	case errors.Is(err, domain.ErrDuplicatePending):
		return http.StatusConflict, "A pending invitation already exists for that email"
	case errors.Is(err, domain.ErrAlreadyMember):
		return http.StatusConflict, "That user is already a member of an organization"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return http.StatusConflict, "That email already has an account"
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrInvitationNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOrganizationNotFound),
		errors.Is(err, domain.ErrIdentityNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// handleServiceError writes the mapped response for a service failure. The
// raw error only reaches the client when debug detail is switched on; it is
// always logged with the request id.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, debug bool) {
	code, message := errorStatus(err)

	if code >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"error", err,
			"requestID", chmw.GetReqID(r.Context()),
		)
	}

	resp := ErrorResponse{Error: message}
	if debug {
		details := err.Error()
		resp.Details = &details
	}
	respondWithJSON(w, code, resp)
}

// principalFrom pulls the authenticated principal set by the auth middleware.
func principalFrom(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return auth.Principal{}, false
	}
	return principal, true
}

// resolvePrincipal loads the caller's profile for policy checks, writing the
// 401 itself when the token is missing.
func resolvePrincipal(w http.ResponseWriter, r *http.Request, resolver PrincipalResolver) (policy.Principal, bool) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return policy.Principal{}, false
	}

	p, err := resolver.ResolvePrincipal(r.Context(), principal)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return policy.Principal{}, false
	}
	return p, true
}

// parseUUIDParam reads a chi URL parameter as a UUID.
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON parses the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}
