package admin

import (
	handlershared "github.com/jagoron-news/internal/http/handlers/shared"
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/logger"

	"github.com/gin-gonic/gin"
)

// ListReviews reader comments, optionally of ?article_id
func (h *Handler) ListReviews(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	articleID, ok := parseOptionalUint(c, "article_id")
	if !ok {
		return
	}
	var id uint
	if articleID != nil {
		id = *articleID
	}
	reviews, total, err := h.ReviewService.ListAdmin(id, page, pageSize)
	if err != nil {
		respondServiceError(c, err, "review list failed")
		return
	}
	response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
}

// DeleteReview removes a reader comment
func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(id); err != nil {
		respondServiceError(c, err, "review delete failed")
		return
	}
	logger.Infow("admin_review_deleted", "admin_id", currentAdminID(c), "review_id", id)
	response.Success(c, nil)
}

// ListShortURLs generated short links
func (h *Handler) ListShortURLs(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	rows, total, err := h.ShortURLService.ListAdmin(c.Query("search"), page, pageSize)
	if err != nil {
		respondServiceError(c, err, "short url list failed")
		return
	}
	response.SuccessWithPage(c, rows, response.NewPagination(page, pageSize, total))
}

// DeleteShortURL removes a short link
func (h *Handler) DeleteShortURL(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ShortURLService.Delete(id); err != nil {
		respondServiceError(c, err, "short url delete failed")
		return
	}
	response.Success(c, nil)
}
