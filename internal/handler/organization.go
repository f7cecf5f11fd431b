// internal/handler/organization.go
package handler

import (
	"net/http"

	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/service"
)

type OrganizationHandler struct {
	orgService *service.OrganizationService
	resolver   PrincipalResolver
	debug      bool
}

func NewOrganizationHandler(orgService *service.OrganizationService, resolver PrincipalResolver, debug bool) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService, resolver: resolver, debug: debug}
}

type OrganizationResponse struct {
	BaseResponse
	Organization *model.Organization `json:"organization"`
}

func (h *OrganizationHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}

	org, err := h.orgService.Get(r.Context(), p)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, OrganizationResponse{
		BaseResponse: BaseResponse{Ok: true},
		Organization: org,
	})
}

type RenameRequest struct {
	Name string `json:"name"`
}

func (h *OrganizationHandler) RenameHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}

	var req RenameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	org, err := h.orgService.Rename(r.Context(), p, req.Name)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, OrganizationResponse{
		BaseResponse: BaseResponse{Ok: true},
		Organization: org,
	})
}
