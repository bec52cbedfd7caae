package admin

import (
	"time"

	handlershared "github.com/jagoron-news/internal/http/handlers/shared"
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

// ArticleRequest article create/update body
type ArticleRequest struct {
	SectionID          *uint      `json:"section_id"`
	SubsectionID       *uint      `json:"subsection_id"`
	CategoryIDs        []uint     `json:"category_ids"`
	TagIDs             []uint     `json:"tag_ids"`
	TopSubTitle        string     `json:"top_sub_title"`
	Title              string     `json:"title"`
	SubTitle           string     `json:"sub_title"`
	Content            string     `json:"content"`
	SubContent         string     `json:"sub_content"`
	HeadingImage       string     `json:"heading_image"`
	HeadingImageTitle  string     `json:"heading_image_title"`
	MainImage          string     `json:"main_image"`
	MainImageTitle     string     `json:"main_image_title"`
	Reporter           string     `json:"reporter"`
	ScheduledPublishAt *time.Time `json:"scheduled_publish_at"`
}

func (r ArticleRequest) toInput() service.ArticleInput {
	return service.ArticleInput{
		SectionID:          r.SectionID,
		SubsectionID:       r.SubsectionID,
		CategoryIDs:        r.CategoryIDs,
		TagIDs:             r.TagIDs,
		TopSubTitle:        r.TopSubTitle,
		Title:              r.Title,
		SubTitle:           r.SubTitle,
		Content:            r.Content,
		SubContent:         r.SubContent,
		HeadingImage:       r.HeadingImage,
		HeadingImageTitle:  r.HeadingImageTitle,
		MainImage:          r.MainImage,
		MainImageTitle:     r.MainImageTitle,
		Reporter:           r.Reporter,
		ScheduledPublishAt: r.ScheduledPublishAt,
	}
}

// ListArticles newsroom article list, scheduled ones included
func (h *Handler) ListArticles(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	sectionID, ok := parseOptionalUint(c, "section_id")
	if !ok {
		return
	}
	subsectionID, ok := parseOptionalUint(c, "subsection_id")
	if !ok {
		return
	}

	articles, total, err := h.ArticleService.ListAdmin(service.ArticleAdminQuery{
		Page:         page,
		PageSize:     pageSize,
		SectionID:    sectionID,
		SubsectionID: subsectionID,
		Search:       c.Query("search"),
		Status:       c.Query("status"),
	})
	if err != nil {
		respondServiceError(c, err, "article list failed")
		return
	}
	response.SuccessWithPage(c, articles, response.NewPagination(page, pageSize, total))
}

// GetArticle one article regardless of its schedule
func (h *Handler) GetArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	article, err := h.ArticleService.GetAdmin(id)
	if err != nil {
		respondServiceError(c, err, "article fetch failed")
		return
	}
	response.Success(c, article)
}

// CreateArticle saves a new article
func (h *Handler) CreateArticle(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req ArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	article, err := h.ArticleService.Create(req.toInput(), adminID)
	if err != nil {
		respondServiceError(c, err, "article create failed")
		return
	}
	logger.Infow("admin_article_created", "admin_id", adminID, "article_id", article.ID)
	response.Success(c, article)
}

// UpdateArticle saves an existing article
func (h *Handler) UpdateArticle(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	article, err := h.ArticleService.Update(id, req.toInput(), adminID)
	if err != nil {
		respondServiceError(c, err, "article update failed")
		return
	}
	response.Success(c, article)
}

// DeleteArticle removes an article
func (h *Handler) DeleteArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ArticleService.Delete(id); err != nil {
		respondServiceError(c, err, "article delete failed")
		return
	}
	logger.Infow("admin_article_deleted", "admin_id", currentAdminID(c), "article_id", id)
	response.Success(c, nil)
}
