// internal/handler/audit.go
package handler

import (
	"net/http"
	"strconv"

	"github.com/beatbookhq/beatbook/internal/service"
)

type AuditHandler struct {
	auditService *service.AuditService
	resolver     PrincipalResolver
	debug        bool
}

func NewAuditHandler(auditService *service.AuditService, resolver PrincipalResolver, debug bool) *AuditHandler {
	return &AuditHandler{auditService: auditService, resolver: resolver, debug: debug}
}

// ListHandler returns the organization's audit trail, newest first.
func (h *AuditHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.auditService.List(r.Context(), p, page, limit)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}
