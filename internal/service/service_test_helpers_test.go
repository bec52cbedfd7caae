package service

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{NowFunc: models.NowUTC})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func fixedClock(now time.Time) Clock {
	return func() time.Time { return now }
}

func seedSection(t *testing.T, db *gorm.DB, title, englishTitle string, position int) *models.Section {
	t.Helper()
	section := &models.Section{Title: title, EnglishTitle: englishTitle, Position: position, IsActive: true}
	if err := db.Create(section).Error; err != nil {
		t.Fatalf("create section failed: %v", err)
	}
	return section
}

func seedSubsection(t *testing.T, db *gorm.DB, section *models.Section, title, englishTitle string, active bool) *models.Subsection {
	t.Helper()
	subsection := &models.Subsection{SectionID: &section.ID, Title: title, EnglishTitle: englishTitle, IsActive: active}
	if err := db.Create(subsection).Error; err != nil {
		t.Fatalf("create subsection failed: %v", err)
	}
	return subsection
}

func seedArticle(t *testing.T, db *gorm.DB, article *models.Article) *models.Article {
	t.Helper()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("create article failed: %v", err)
	}
	return article
}

func idsOf(articles []models.Article) []uint {
	ids := make([]uint, 0, len(articles))
	for _, article := range articles {
		ids = append(ids, article.ID)
	}
	return ids
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

var testPanelCategories = config.PanelCategories{
	HotTopic: "Hot Topic",
	Live:     "লাইভ",
	Elected:  "নির্বাচিত খবর",
	MainNews: "প্রধান খবর",
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func newArticleServiceForTest(db *gorm.DB, now time.Time) *ArticleService {
	articleRepo := repository.NewArticleRepository(db)
	return NewArticleService(
		articleRepo,
		repository.NewSectionRepository(db),
		repository.NewTaxonomyRepository(db),
		repository.NewSpecialRepository(db),
		NewRelevanceRanker(articleRepo, fixedClock(now)),
		nil,
		config.ContentConfig{RelatedLimit: 4, RelatedCacheTTLSeconds: 60, Panels: testPanelCategories},
		fixedClock(now),
	)
}

func useMiniredisCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	server := miniredis.RunT(t)
	cache.UseClient(redis.NewClient(&redis.Options{Addr: server.Addr()}), "test")
	t.Cleanup(cache.Reset)
	return server
}
