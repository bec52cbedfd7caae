package admin

import (
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

type specialTitlePayload struct {
	Title    string `json:"title"`
	IsActive *bool  `json:"is_active"`
}

type specialArticlePayload struct {
	SpecialTitleID uint `json:"special_title_id" binding:"required"`
	ArticleID      uint `json:"article_id" binding:"required"`
	MainNews       bool `json:"main_news"`
}

// ListSpecialTitles special block headings
func (h *Handler) ListSpecialTitles(c *gin.Context) {
	titles, err := h.SpecialService.ListTitles()
	if err != nil {
		respondServiceError(c, err, "special title list failed")
		return
	}
	response.Success(c, titles)
}

// CreateSpecialTitle adds a heading
func (h *Handler) CreateSpecialTitle(c *gin.Context) {
	h.saveSpecialTitle(c, 0)
}

// UpdateSpecialTitle edits a heading
func (h *Handler) UpdateSpecialTitle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.saveSpecialTitle(c, id)
}

func (h *Handler) saveSpecialTitle(c *gin.Context, id uint) {
	var req specialTitlePayload
	if !bindJSON(c, &req) {
		return
	}
	title, err := h.SpecialService.SaveTitle(id, service.SpecialTitleInput{Title: req.Title, IsActive: req.IsActive})
	if err != nil {
		respondServiceError(c, err, "special title save failed")
		return
	}
	response.Success(c, title)
}

// DeleteSpecialTitle removes a heading with its pinned articles
func (h *Handler) DeleteSpecialTitle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.SpecialService.DeleteTitle(id); err != nil {
		respondServiceError(c, err, "special title delete failed")
		return
	}
	response.Success(c, nil)
}

// ListSpecialArticles pinned articles of ?special_title_id
func (h *Handler) ListSpecialArticles(c *gin.Context) {
	titleID, ok := parseOptionalUint(c, "special_title_id")
	if !ok {
		return
	}
	if titleID == nil || *titleID == 0 {
		respondError(c, response.CodeBadRequest, "special_title_id is required", nil)
		return
	}
	items, err := h.SpecialService.ListArticles(*titleID)
	if err != nil {
		respondServiceError(c, err, "special article list failed")
		return
	}
	response.Success(c, items)
}

// CreateSpecialArticle pins an article
func (h *Handler) CreateSpecialArticle(c *gin.Context) {
	h.saveSpecialArticle(c, 0)
}

// UpdateSpecialArticle edits a pinned article
func (h *Handler) UpdateSpecialArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.saveSpecialArticle(c, id)
}

func (h *Handler) saveSpecialArticle(c *gin.Context, id uint) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req specialArticlePayload
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.SpecialService.SaveArticle(id, service.SpecialArticleInput{
		SpecialTitleID: req.SpecialTitleID,
		ArticleID:      req.ArticleID,
		MainNews:       req.MainNews,
	}, adminID)
	if err != nil {
		respondServiceError(c, err, "special article save failed")
		return
	}
	response.Success(c, item)
}

// DeleteSpecialArticle unpins an article
func (h *Handler) DeleteSpecialArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.SpecialService.DeleteArticle(id); err != nil {
		respondServiceError(c, err, "special article delete failed")
		return
	}
	response.Success(c, nil)
}
