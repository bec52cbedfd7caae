package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/provider"
	"github.com/jagoron-news/internal/repository"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type publicFixture struct {
	db      *gorm.DB
	router  *gin.Engine
	section *models.Section
	article *models.Article
}

func setupPublicHandlerTest(t *testing.T) *publicFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_handler_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{NowFunc: models.NowUTC})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	section := &models.Section{Title: "জাতীয়", EnglishTitle: "National", IsActive: true}
	if err := db.Create(section).Error; err != nil {
		t.Fatalf("seed section failed: %v", err)
	}
	article := &models.Article{SectionID: &section.ID, Title: "ঢাকার খবর", CreatedAt: time.Now().UTC().Add(-time.Hour)}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("seed article failed: %v", err)
	}

	cfg := &config.Config{Site: config.SiteConfig{Name: "Jagoron", URL: "https://example.com"}}
	sectionRepo := repository.NewSectionRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	ranker := service.NewRelevanceRanker(articleRepo, nil)
	h := New(&provider.Container{
		Config:          cfg,
		PathResolver:    service.NewPathResolver(sectionRepo, articleRepo, nil),
		RelevanceRanker: ranker,
		ArticleService: service.NewArticleService(
			articleRepo,
			sectionRepo,
			repository.NewTaxonomyRepository(db),
			repository.NewSpecialRepository(db),
			ranker,
			nil,
			cfg.Content,
			nil,
		),
		SeoService:      service.NewSeoService(repository.NewSeoRepository(db), cfg.Site),
		ShortURLService: service.NewShortURLService(repository.NewShortURLRepository(db)),
	})

	router := gin.New()
	router.GET("/api/v1/public/page", h.ResolvePage)
	router.POST("/api/v1/public/short-urls", h.CreateShortURL)
	router.GET("/s/:code", h.FollowShortURL)
	router.NoRoute(h.ServePath)
	return &publicFixture{db: db, router: router, section: section, article: article}
}

func (f *publicFixture) do(method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	f.router.ServeHTTP(w, req)
	return w
}

func TestServePathArticleDetail(t *testing.T) {
	f := setupPublicHandlerTest(t)

	w := f.do(http.MethodGet, fmt.Sprintf("/national/%d/", f.article.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("article want 200, got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			Kind          string `json:"kind"`
			CanonicalPath string `json:"canonical_path"`
			Detail        struct {
				Article struct {
					ID uint `json:"id"`
				} `json:"article"`
			} `json:"detail"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Data.CanonicalPath != fmt.Sprintf("/national/%d/", f.article.ID) || resp.Data.Detail.Article.ID != f.article.ID {
		t.Fatalf("unexpected page view: %+v", resp.Data)
	}
}

func TestServePathRedirectsToCanonical(t *testing.T) {
	f := setupPublicHandlerTest(t)

	w := f.do(http.MethodGet, "/National", "")
	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("want 301, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/national/" {
		t.Fatalf("location want /national/, got %s", location)
	}
}

func TestServePathNotFound(t *testing.T) {
	f := setupPublicHandlerTest(t)

	if w := f.do(http.MethodGet, "/no-such-section/", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown section want 404, got %d", w.Code)
	}
	if w := f.do(http.MethodGet, "/national/999999/", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown article want 404, got %d", w.Code)
	}
	if w := f.do(http.MethodPost, "/national/", ""); w.Code != http.StatusNotFound {
		t.Fatalf("post want 404, got %d", w.Code)
	}
}

func TestResolvePageQueryPath(t *testing.T) {
	f := setupPublicHandlerTest(t)

	w := f.do(http.MethodGet, "/api/v1/public/page?path=/national/", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"kind":"section"`) {
		t.Fatalf("section page want 200 section view, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestShortURLRoundTrip(t *testing.T) {
	f := setupPublicHandlerTest(t)

	target := fmt.Sprintf("https://example.com/national/%d/", f.article.ID)
	w := f.do(http.MethodPost, "/api/v1/public/short-urls", fmt.Sprintf(`{"url":%q}`, target))
	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			ShortCode string `json:"short_code"`
			ShortPath string `json:"short_path"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.StatusCode != 0 || resp.Data.ShortCode == "" {
		t.Fatalf("shorten failed: %v body=%s", err, w.Body.String())
	}

	w = f.do(http.MethodGet, resp.Data.ShortPath, "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != target {
		t.Fatalf("follow want 302 to %s, got %d %s", target, w.Code, w.Header().Get("Location"))
	}
	if w := f.do(http.MethodGet, "/s/zzzzzz", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown code want 404, got %d", w.Code)
	}
}
