package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jagoron-news/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
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

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T failed: %v", value, err)
	}
}

func createTestSection(t *testing.T, db *gorm.DB, title, englishTitle string, position int, active bool) *models.Section {
	t.Helper()
	section := &models.Section{Title: title, EnglishTitle: englishTitle, Position: position, IsActive: active}
	mustCreate(t, db, section)
	return section
}

func createTestArticle(t *testing.T, db *gorm.DB, article *models.Article) *models.Article {
	t.Helper()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}
	mustCreate(t, db, article)
	return article
}

func uintPtr(v uint) *uint {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func articleIDs(articles []models.Article) []uint {
	ids := make([]uint, 0, len(articles))
	for _, article := range articles {
		ids = append(ids, article.ID)
	}
	return ids
}
