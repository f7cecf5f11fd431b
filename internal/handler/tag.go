// internal/handler/tag.go
package handler

import (
	"net/http"

	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/service"
)

type TagHandler struct {
	tagService *service.TagService
	resolver   PrincipalResolver
	debug      bool
}

func NewTagHandler(tagService *service.TagService, resolver PrincipalResolver, debug bool) *TagHandler {
	return &TagHandler{tagService: tagService, resolver: resolver, debug: debug}
}

type TagListResponse struct {
	BaseResponse
	Tags []model.Tag `json:"tags"`
}

type TagResponse struct {
	BaseResponse
	Tag *model.Tag `json:"tag"`
}

func (h *TagHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}

	tags, err := h.tagService.List(r.Context(), p)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, TagListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Tags:         tags,
	})
}

func (h *TagHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}

	var input service.TagInput
	if !decodeJSON(w, r, &input) {
		return
	}

	tag, err := h.tagService.Create(r.Context(), p, input)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusCreated, TagResponse{
		BaseResponse: BaseResponse{Ok: true},
		Tag:          tag,
	})
}

func (h *TagHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var input service.TagInput
	if !decodeJSON(w, r, &input) {
		return
	}

	tag, err := h.tagService.Update(r.Context(), p, id, input)
	if err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, TagResponse{
		BaseResponse: BaseResponse{Ok: true},
		Tag:          tag,
	})
}

func (h *TagHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := resolvePrincipal(w, r, h.resolver)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.tagService.Delete(r.Context(), p, id); err != nil {
		handleServiceError(w, r, err, h.debug)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
