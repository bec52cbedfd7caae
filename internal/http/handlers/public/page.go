package public

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	handlershared "github.com/jagoron-news/internal/http/handlers/shared"
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

// PageView everything a page renderer needs for one public path
type PageView struct {
	Kind          service.ResolutionKind `json:"kind"`
	CanonicalPath string                 `json:"canonical_path"`
	Section       *models.Section        `json:"section,omitempty"`
	Subsection    *models.Subsection     `json:"subsection,omitempty"`
	Seo           *service.SeoMeta       `json:"seo,omitempty"`
	Home          *service.HomeFeed      `json:"home,omitempty"`
	Listing       *service.ListingPage   `json:"listing,omitempty"`
	Detail        *service.ArticleDetail `json:"detail,omitempty"`
}

// ResolvePage resolves the path given in ?path= and returns its page data.
// GET /api/v1/public/page?path=/sports/cricket/&page=2
func (h *Handler) ResolvePage(c *gin.Context) {
	query := c.Request.URL.Query()
	path := strings.TrimSpace(query.Get("path"))
	query.Del("path")
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	h.renderPath(c, path, query)
}

// ServePath resolves the request path itself. It is the NoRoute handler, so
// old section and article urls reach the resolver and get their redirects.
func (h *Handler) ServePath(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		response.Status(c, http.StatusNotFound, response.CodeNotFound, "not found")
		return
	}
	h.renderPath(c, c.Request.URL.Path, c.Request.URL.Query())
}

func (h *Handler) renderPath(c *gin.Context, path string, query url.Values) {
	privileged := handlershared.IsPrivileged(c)
	res, err := h.PathResolver.Resolve(service.ResolveRequest{
		Path:       path,
		Query:      query,
		Privileged: privileged,
	})
	if err != nil {
		respondResolveError(c, err)
		return
	}

	view := &PageView{
		Kind:          res.Kind,
		CanonicalPath: res.CanonicalPath,
		Section:       res.Section,
		Subsection:    res.Subsection,
	}
	page, _ := strconv.Atoi(query.Get("page"))
	switch res.Kind {
	case service.ResolutionHome:
		view.Home, err = h.ArticleService.Home()
	case service.ResolutionArticle:
		view.Detail, err = h.ArticleService.Detail(res, privileged)
	default:
		view.Listing, err = h.ArticleService.Listing(res, service.ListingQuery{
			Page:     page,
			Tag:      query.Get("tag"),
			Category: query.Get("category"),
		})
	}
	if err != nil {
		respondResolveError(c, err)
		return
	}
	if seo, err := h.SeoService.ForResolution(res); err != nil {
		handlershared.RequestLog(c).Warnw("page_seo_build_failed", "path", path, "error", err)
	} else {
		view.Seo = seo
	}
	response.Success(c, view)
}

func respondResolveError(c *gin.Context, err error) {
	if redirect, ok := service.AsRedirect(err); ok {
		c.Header("Location", redirect.Location)
		c.JSON(redirect.StatusCode(), response.Response{
			StatusCode: redirect.StatusCode(),
			Msg:        "moved",
			Data:       gin.H{"location": redirect.Location},
		})
		return
	}
	if validation, ok := service.AsValidation(err); ok {
		response.Status(c, http.StatusBadRequest, response.CodeBadRequest, validation.Error())
		return
	}
	if errors.Is(err, service.ErrContentNotFound) || errors.Is(err, service.ErrPathReserved) {
		response.Status(c, http.StatusNotFound, response.CodeNotFound, "not found")
		return
	}
	handlershared.RequestLog(c).Errorw("page_resolve_failed", "path", c.Request.URL.Path, "error", err)
	response.Status(c, http.StatusInternalServerError, response.CodeInternal, "internal error")
}
