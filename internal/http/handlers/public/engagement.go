package public

import (
	"net/http"

	"github.com/jagoron-news/internal/constants"
	handlershared "github.com/jagoron-news/internal/http/handlers/shared"
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

// ReactRequest reaction body
type ReactRequest struct {
	Reaction string `json:"reaction" binding:"required"`
}

// ReviewRequest anonymous review body
type ReviewRequest struct {
	Name           string                              `json:"name"`
	Comment        string                              `json:"comment" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// ShortenRequest short url body
type ShortenRequest struct {
	URL string `json:"url" binding:"required"`
}

// GetReactions reaction summary of an article with the visitor's own reaction
func (h *Handler) GetReactions(c *gin.Context) {
	id, ok := handlershared.ParseID(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid article id", nil)
		return
	}
	summary, err := h.ReactionService.Summary(id, handlershared.VisitorKey(c))
	if err != nil {
		respondEngagementError(c, err, "reaction fetch failed")
		return
	}
	response.Success(c, summary)
}

// React records or replaces the visitor's reaction
func (h *Handler) React(c *gin.Context) {
	id, ok := handlershared.ParseID(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid article id", nil)
		return
	}
	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	summary, err := h.ReactionService.React(id, handlershared.VisitorKey(c), req.Reaction)
	if err != nil {
		respondEngagementError(c, err, "reaction failed")
		return
	}
	response.Success(c, summary)
}

// GetReviews reviews of an article, newest first
func (h *Handler) GetReviews(c *gin.Context) {
	id, ok := handlershared.ParseID(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid article id", nil)
		return
	}
	page, pageSize := handlershared.PageQuery(c)
	reviews, total, err := h.ReviewService.ListForArticle(id, page, pageSize)
	if err != nil {
		respondEngagementError(c, err, "review fetch failed")
		return
	}
	response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
}

// SubmitReview stores an anonymous review after the captcha check
func (h *Handler) SubmitReview(c *gin.Context) {
	id, ok := handlershared.ParseID(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid article id", nil)
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	review, err := h.ReviewService.Submit(service.SubmitReviewInput{
		ArticleID: id,
		Name:      req.Name,
		Comment:   req.Comment,
		ClientIP:  c.ClientIP(),
		Captcha:   req.CaptchaPayload.ToServicePayload(),
	})
	if err != nil {
		respondEngagementError(c, err, "review submit failed")
		return
	}
	response.Success(c, review)
}

// GetImageCaptcha issues a captcha challenge for review submission
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "captcha unavailable", nil)
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "captcha generate failed", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      h.CaptchaService.Enabled(constants.CaptchaSceneReview),
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// CreateShortURL returns the short code of a url, reusing an existing one
func (h *Handler) CreateShortURL(c *gin.Context) {
	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	shortURL, err := h.ShortURLService.Shorten(req.URL)
	if err != nil {
		respondEngagementError(c, err, "short url failed")
		return
	}
	response.Success(c, gin.H{
		"short_code":   shortURL.ShortCode,
		"short_path":   "/s/" + shortURL.ShortCode,
		"original_url": shortURL.OriginalURL,
	})
}

// FollowShortURL redirects to the original url and counts the click
func (h *Handler) FollowShortURL(c *gin.Context) {
	target, err := h.ShortURLService.Follow(c.Param("code"))
	if err != nil {
		respondResolveError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}
