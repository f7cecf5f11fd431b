// internal/handler/user.go
package handler

import (
	"net/http"

	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	debug       bool
}

func NewUserHandler(userService *service.UserService, debug bool) *UserHandler {
	return &UserHandler{userService: userService, debug: debug}
}

type UserListResponse struct {
	BaseResponse
	Users []model.User `json:"users"`
}

func (h *UserHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.userService)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(r.Context(), p)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, UserListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Users:        users,
	})
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type UserResponse struct {
	BaseResponse
	User *model.User `json:"user"`
}

func (h *UserHandler) ChangeRoleHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.userService)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.ChangeRole(r.Context(), p, id, model.Role(req.Role))
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, UserResponse{
		BaseResponse: BaseResponse{Ok: true},
		User:         user,
	})
}

func (h *UserHandler) RemoveHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.userService)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.userService.RemoveUser(r.Context(), p, id); err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
