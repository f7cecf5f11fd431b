// internal/handler/auth.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/service"
	chmw "github.com/go-chi/chi/v5/middleware"
)

type AuthHandler struct {
	userService  *service.UserService
	cacheService *service.CacheService
	debug        bool
}

func NewAuthHandler(userService *service.UserService, cacheService *service.CacheService, debug bool) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		cacheService: cacheService,
		debug:        debug,
	}
}

type SignupResponse struct {
	BaseResponse
	Identity *model.Identity `json:"identity"`
	Token    string          `json:"token"`
}

// SignupHandler issues a nonce on GET and registers an identity on POST. The
// nonce is single-use; replaying one fails the second request.
func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if r.Method == http.MethodGet {
		nonce, err := h.userService.GenerateNonce(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to generate nonce")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"nonce": nonce})
		return
	}

	nonce := r.URL.Query().Get("nonce")
	if nonce == "" {
		respondWithError(w, http.StatusBadRequest, "Nonce is required")
		return
	}

	exists, err := h.cacheService.CheckNonce(r.Context(), nonce)
	if err != nil || !exists {
		respondWithError(w, http.StatusBadRequest, "Invalid or expired nonce")
		return
	}

	var input service.SignupInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.userService.Signup(r.Context(), input)
	if err != nil {
		slog.ErrorContext(r.Context(), "User registration error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusCreated, SignupResponse{
		BaseResponse: BaseResponse{Ok: true},
		Identity:     output.Identity,
		Token:        output.Token,
	})
}

type LoginResponse struct {
	BaseResponse
	Identity *model.Identity `json:"identity,omitempty"`
	Token    string          `json:"token,omitempty"`
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var input service.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.userService.Authenticate(r.Context(), input)
	if err != nil {
		slog.WarnContext(r.Context(), "User login error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{
		BaseResponse: BaseResponse{Ok: true},
		Identity:     output.Identity,
		Token:        output.Token,
	})
}

// CheckProfileHandler reports whether the caller finished onboarding.
func (h *AuthHandler) CheckProfileHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}

	status, err := h.userService.CheckProfile(r.Context(), principal)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, status)
}

type SetupProfileResponse struct {
	BaseResponse
	User *model.User `json:"user"`
}

// SetupProfileHandler creates an organization with the caller as first admin.
func (h *AuthHandler) SetupProfileHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var input service.SetupProfileInput
	if !decodeJSON(w, r, &input) {
		return
	}

	user, err := h.userService.SetupProfile(r.Context(), principal, input)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusCreated, SetupProfileResponse{
		BaseResponse: BaseResponse{Ok: true},
		User:         user,
	})
}
