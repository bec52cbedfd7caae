package admin

import (
	"strings"

	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

type robotsPayload struct {
	Content  string `json:"content"`
	IsActive *bool  `json:"is_active"`
}

type siteInfoPayload struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type defaultPagePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Link    string `json:"link"`
}

// ListRobots robots.txt versions
func (h *Handler) ListRobots(c *gin.Context) {
	rows, err := h.SiteService.ListRobots()
	if err != nil {
		respondServiceError(c, err, "robots list failed")
		return
	}
	response.Success(c, rows)
}

// CreateRobots adds a robots.txt version
func (h *Handler) CreateRobots(c *gin.Context) {
	h.saveRobots(c, 0)
}

// UpdateRobots edits a robots.txt version; activating one deactivates the rest
func (h *Handler) UpdateRobots(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.saveRobots(c, id)
}

func (h *Handler) saveRobots(c *gin.Context, id uint) {
	var req robotsPayload
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.SiteService.SaveRobots(id, service.RobotsInput{Content: req.Content, IsActive: req.IsActive})
	if err != nil {
		respondServiceError(c, err, "robots save failed")
		return
	}
	response.Success(c, row)
}

// DeleteRobots removes a robots.txt version
func (h *Handler) DeleteRobots(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.SiteService.DeleteRobots(id); err != nil {
		respondServiceError(c, err, "robots delete failed")
		return
	}
	response.Success(c, nil)
}

// GetSiteInfo site name and logo
func (h *Handler) GetSiteInfo(c *gin.Context) {
	info, err := h.SiteService.SiteInfo()
	if err != nil {
		respondServiceError(c, err, "site info fetch failed")
		return
	}
	response.Success(c, info)
}

// UpdateSiteInfo saves site name and logo
func (h *Handler) UpdateSiteInfo(c *gin.Context) {
	var req siteInfoPayload
	if !bindJSON(c, &req) {
		return
	}
	info, err := h.SiteService.SaveSiteInfo(req.Name, req.Logo)
	if err != nil {
		respondServiceError(c, err, "site info save failed")
		return
	}
	response.Success(c, info)
}

// GetSettings one settings document by ?key
func (h *Handler) GetSettings(c *gin.Context) {
	key := strings.TrimSpace(c.Query("key"))
	if key == "" {
		respondError(c, response.CodeBadRequest, "key is required", nil)
		return
	}
	value, err := h.SettingService.GetByKey(key)
	if err != nil {
		respondServiceError(c, err, "settings fetch failed")
		return
	}
	response.Success(c, value)
}

// UpdateSettings replaces a settings document
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req struct {
		Key   string                 `json:"key" binding:"required"`
		Value map[string]interface{} `json:"value" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	value, err := h.SettingService.Update(req.Key, req.Value)
	if err != nil {
		respondServiceError(c, err, "settings save failed")
		return
	}
	response.Success(c, value)
}

// ListDefaultPages static pages
func (h *Handler) ListDefaultPages(c *gin.Context) {
	pages, err := h.SiteService.ListDefaultPages()
	if err != nil {
		respondServiceError(c, err, "default page list failed")
		return
	}
	response.Success(c, pages)
}

// CreateDefaultPage adds a static page
func (h *Handler) CreateDefaultPage(c *gin.Context) {
	h.saveDefaultPage(c, 0)
}

// UpdateDefaultPage edits a static page
func (h *Handler) UpdateDefaultPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.saveDefaultPage(c, id)
}

func (h *Handler) saveDefaultPage(c *gin.Context, id uint) {
	var req defaultPagePayload
	if !bindJSON(c, &req) {
		return
	}
	page, err := h.SiteService.SaveDefaultPage(id, service.DefaultPageInput{
		Title:   req.Title,
		Content: req.Content,
		Link:    req.Link,
	})
	if err != nil {
		respondServiceError(c, err, "default page save failed")
		return
	}
	response.Success(c, page)
}

// DeleteDefaultPage removes a static page
func (h *Handler) DeleteDefaultPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.SiteService.DeleteDefaultPage(id); err != nil {
		respondServiceError(c, err, "default page delete failed")
		return
	}
	response.Success(c, nil)
}
