// internal/handler/profile.go
package handler

import (
	"net/http"

	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/service"
)

type ProfileHandler struct {
	userService *service.UserService
	debug       bool
}

func NewProfileHandler(userService *service.UserService, debug bool) *ProfileHandler {
	return &ProfileHandler{userService: userService, debug: debug}
}

type ProfileResponse struct {
	BaseResponse
	User *model.User `json:"user"`
}

func (h *ProfileHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.userService)
	if !ok {
		return
	}
	if !p.Onboarded() {
		handleServiceError(w, r, domain.ErrUserNotFound, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, ProfileResponse{
		BaseResponse: BaseResponse{Ok: true},
		User:         p.Profile,
	})
}

func (h *ProfileHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.userService)
	if !ok {
		return
	}

	var input service.UpdateProfileInput
	if !decodeJSON(w, r, &input) {
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), p, input)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, ProfileResponse{
		BaseResponse: BaseResponse{Ok: true},
		User:         user,
	})
}
