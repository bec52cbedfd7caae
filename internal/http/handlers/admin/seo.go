package admin

import (
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/models"

	"github.com/gin-gonic/gin"
)

// seo override owners addressed by /seo/:kind/:id
const (
	seoKindArticle    = "article"
	seoKindSection    = "section"
	seoKindSubsection = "subsection"
)

// GetSeoOverride stored meta override of one owner; data is null when none
func (h *Handler) GetSeoOverride(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var (
		override interface{}
		err      error
	)
	switch c.Param("kind") {
	case seoKindArticle:
		override, err = h.SeoService.GetArticleOverride(id)
	case seoKindSection:
		override, err = h.SeoService.GetSectionOverride(id)
	case seoKindSubsection:
		override, err = h.SeoService.GetSubsectionOverride(id)
	default:
		respondError(c, response.CodeBadRequest, "unknown seo kind", nil)
		return
	}
	if err != nil {
		respondServiceError(c, err, "seo fetch failed")
		return
	}
	response.Success(c, override)
}

// SaveSeoOverride upserts the meta override of one owner
func (h *Handler) SaveSeoOverride(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var fields models.SeoFields
	if !bindJSON(c, &fields) {
		return
	}
	var (
		saved interface{}
		err   error
	)
	switch c.Param("kind") {
	case seoKindArticle:
		saved, err = h.SeoService.SaveArticleOverride(id, fields)
	case seoKindSection:
		saved, err = h.SeoService.SaveSectionOverride(id, fields)
	case seoKindSubsection:
		saved, err = h.SeoService.SaveSubsectionOverride(id, fields)
	default:
		respondError(c, response.CodeBadRequest, "unknown seo kind", nil)
		return
	}
	if err != nil {
		respondServiceError(c, err, "seo save failed")
		return
	}
	response.Success(c, saved)
}
