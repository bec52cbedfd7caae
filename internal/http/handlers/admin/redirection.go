package admin

import (
	handlershared "github.com/jagoron-news/internal/http/handlers/shared"
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

type redirectionPayload struct {
	OldURL       string `json:"old_url"`
	NewURL       string `json:"new_url"`
	RedirectType string `json:"redirect_type"`
	IsActive     *bool  `json:"is_active"`
}

func (p redirectionPayload) toInput() service.RedirectionInput {
	return service.RedirectionInput{
		OldURL:       p.OldURL,
		NewURL:       p.NewURL,
		RedirectType: p.RedirectType,
		IsActive:     p.IsActive,
	}
}

// ListRedirections redirection rules filtered by ?search and ?is_active
func (h *Handler) ListRedirections(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	isActive, ok := handlershared.OptionalBoolQuery(c, "is_active")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid is_active", nil)
		return
	}
	rows, total, err := h.RedirectionService.List(c.Query("search"), isActive, page, pageSize)
	if err != nil {
		respondServiceError(c, err, "redirection list failed")
		return
	}
	response.SuccessWithPage(c, rows, response.NewPagination(page, pageSize, total))
}

// CreateRedirection adds a rule
func (h *Handler) CreateRedirection(c *gin.Context) {
	var req redirectionPayload
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.RedirectionService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "redirection create failed")
		return
	}
	response.Success(c, row)
}

// UpdateRedirection edits a rule
func (h *Handler) UpdateRedirection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req redirectionPayload
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.RedirectionService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "redirection update failed")
		return
	}
	response.Success(c, row)
}

// DeleteRedirection removes a rule
func (h *Handler) DeleteRedirection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.RedirectionService.Delete(id); err != nil {
		respondServiceError(c, err, "redirection delete failed")
		return
	}
	response.Success(c, nil)
}
