package public

import (
	"net/http"
	"strconv"

	handlershared "github.com/jagoron-news/internal/http/handlers/shared"
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

// GetHome latest articles, special blocks and most read
func (h *Handler) GetHome(c *gin.Context) {
	feed, err := h.ArticleService.Home()
	if err != nil {
		respondError(c, response.CodeInternal, "home feed failed", err)
		return
	}
	response.Success(c, feed)
}

// GetNav active sections with subsections and their canonical paths
func (h *Handler) GetNav(c *gin.Context) {
	nav, err := h.SectionService.Nav()
	if err != nil {
		respondError(c, response.CodeInternal, "navigation failed", err)
		return
	}
	response.Success(c, nav)
}

// GetMostRead most read and today's most viewed panels
func (h *Handler) GetMostRead(c *gin.Context) {
	mostRead, err := h.ArticleService.MostRead()
	if err != nil {
		respondError(c, response.CodeInternal, "most read failed", err)
		return
	}
	today, err := h.ArticleService.TodaysMostViewed()
	if err != nil {
		respondError(c, response.CodeInternal, "most read failed", err)
		return
	}
	response.Success(c, gin.H{
		"most_read":          mostRead,
		"todays_most_viewed": today,
	})
}

// GetTagArticles visible articles carrying a tag
func (h *Handler) GetTagArticles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	listing, err := h.ArticleService.ListByTag(c.Param("slug"), page)
	if err != nil {
		respondContentError(c, err, "tag listing failed")
		return
	}
	response.Success(c, listing)
}

// Search visible articles by title
func (h *Handler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	listing, err := h.ArticleService.Search(c.Query("q"), page)
	if err != nil {
		respondError(c, response.CodeInternal, "search failed", err)
		return
	}
	response.Success(c, listing)
}

// GetConfig site info merged with the public site config
func (h *Handler) GetConfig(c *gin.Context) {
	siteConfig, err := h.SettingService.GetSiteConfig()
	if err != nil {
		respondError(c, response.CodeInternal, "config fetch failed", err)
		return
	}
	info, err := h.SiteService.SiteInfo()
	if err != nil {
		respondError(c, response.CodeInternal, "config fetch failed", err)
		return
	}
	response.Success(c, gin.H{
		"site":   info,
		"config": siteConfig,
	})
}

// GetDefaultPage static page by link
func (h *Handler) GetDefaultPage(c *gin.Context) {
	page, err := h.SiteService.DefaultPageByLink(c.Param("link"))
	if err != nil {
		respondContentError(c, err, "page fetch failed")
		return
	}
	response.Success(c, page)
}

// GetRobots serves robots.txt as plain text
func (h *Handler) GetRobots(c *gin.Context) {
	body, err := h.SiteService.Robots()
	if err != nil {
		handlershared.RequestLog(c).Warnw("robots_fetch_failed", "error", err)
		body = h.SiteService.DefaultRobots()
	}
	c.String(http.StatusOK, body)
}

// GetSitemapSections section and subsection urls
func (h *Handler) GetSitemapSections(c *gin.Context) {
	entries, err := h.SitemapService.Sections()
	if err != nil {
		respondError(c, response.CodeInternal, "sitemap failed", err)
		return
	}
	response.Success(c, entries)
}

// GetSitemapTopics tag urls
func (h *Handler) GetSitemapTopics(c *gin.Context) {
	entries, err := h.SitemapService.Topics()
	if err != nil {
		respondError(c, response.CodeInternal, "sitemap failed", err)
		return
	}
	response.Success(c, entries)
}

// GetSitemapCategories category listing urls
func (h *Handler) GetSitemapCategories(c *gin.Context) {
	entries, err := h.SitemapService.Categories()
	if err != nil {
		respondError(c, response.CodeInternal, "sitemap failed", err)
		return
	}
	response.Success(c, entries)
}

// GetSitemapArticles one page of article urls
func (h *Handler) GetSitemapArticles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	result, err := h.SitemapService.Articles(page)
	if err != nil {
		respondError(c, response.CodeInternal, "sitemap failed", err)
		return
	}
	response.Success(c, result)
}

// GetGoogleNews articles of the last 48 hours
func (h *Handler) GetGoogleNews(c *gin.Context) {
	feed, err := h.SitemapService.GoogleNews()
	if err != nil {
		respondError(c, response.CodeInternal, "google news failed", err)
		return
	}
	response.Success(c, feed)
}

// GetAuthors author directory
func (h *Handler) GetAuthors(c *gin.Context) {
	categories, err := h.AuthorService.Directory()
	if err != nil {
		respondError(c, response.CodeInternal, "authors fetch failed", err)
		return
	}
	response.Success(c, categories)
}

// GetAuthor active author by slug
func (h *Handler) GetAuthor(c *gin.Context) {
	author, err := h.AuthorService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondContentError(c, err, "author fetch failed")
		return
	}
	response.Success(c, author)
}

// GetVideos paginated videos, optionally of one section
func (h *Handler) GetVideos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	sectionID, ok := handlershared.OptionalUintQuery(c, "section")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid section", nil)
		return
	}
	videos, total, err := h.VideoService.List(page, sectionID)
	if err != nil {
		respondError(c, response.CodeInternal, "videos fetch failed", err)
		return
	}
	if page < 1 {
		page = 1
	}
	response.SuccessWithPage(c, videos, response.NewPagination(page, service.VideoPageSize, total))
}
