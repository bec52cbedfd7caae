package repository

import (
	"fmt"
	"time"

	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository newsroom statistics queries.
// Only aggregates rows, no business rules.
type DashboardRepository interface {
	GetOverview(now time.Time) (DashboardOverviewRow, error)
	GetDailyArticleStats(startAt, endAt time.Time) ([]DashboardDailyRow, error)
	GetReporterStats(startAt, endAt time.Time, limit int) ([]DashboardReporterRow, error)
	GetContentStats(startAt, endAt time.Time) (DashboardContentRow, error)
	GetDailyVideoStats(startAt, endAt time.Time) ([]DashboardDailyVideoRow, error)
}

// DashboardOverviewRow totals across the site
type DashboardOverviewRow struct {
	ArticlesTotal     int64
	ArticlesScheduled int64
	SectionsActive    int64
	ReviewsTotal      int64
	ViewsTotal        int64
	ShortURLClicks    int64
}

// DashboardDailyRow per-day article and image counts
type DashboardDailyRow struct {
	Day           string
	Articles      int64
	HeadingImages int64
	MainImages    int64
}

// DashboardContentRow articles, videos and images created in a window
type DashboardContentRow struct {
	Articles int64
	Videos   int64
	Images   int64
}

// DashboardDailyVideoRow per-day video counts
type DashboardDailyVideoRow struct {
	Day    string
	Videos int64
}

// DashboardReporterRow articles created by one admin
type DashboardReporterRow struct {
	AdminID  uint
	Articles int64
}

// GormDashboardRepository GORM implementation
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates the dashboard repository
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview collects site-wide totals
func (r *GormDashboardRepository) GetOverview(now time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	if err := r.db.Model(&models.Article{}).Count(&result.ArticlesTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Article{}).
		Where("scheduled_publish_at > ?", now.UTC()).
		Count(&result.ArticlesScheduled).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Section{}).
		Where("is_active = ?", true).
		Count(&result.SectionsActive).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Review{}).Count(&result.ReviewsTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.ArticleView{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&result.ViewsTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.ShortURL{}).
		Select("COALESCE(SUM(clicks), 0)").
		Scan(&result.ShortURLClicks).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetDailyArticleStats counts articles and uploaded images per creation day
func (r *GormDashboardRepository) GetDailyArticleStats(startAt, endAt time.Time) ([]DashboardDailyRow, error) {
	dayExpr := dayBucketExpr("created_at")
	rows := make([]DashboardDailyRow, 0)
	err := r.db.Model(&models.Article{}).
		Select(fmt.Sprintf(
			"%s AS day, COUNT(*) AS articles, "+
				"SUM(CASE WHEN heading_image <> '' THEN 1 ELSE 0 END) AS heading_images, "+
				"SUM(CASE WHEN main_image <> '' THEN 1 ELSE 0 END) AS main_images",
			dayExpr)).
		Where("created_at >= ? AND created_at < ?", startAt.UTC(), endAt.UTC()).
		Group(dayExpr).
		Order("day asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetReporterStats ranks admins by articles created in the window
func (r *GormDashboardRepository) GetReporterStats(startAt, endAt time.Time, limit int) ([]DashboardReporterRow, error) {
	rows := make([]DashboardReporterRow, 0)
	query := r.db.Model(&models.Article{}).
		Select("created_by_id AS admin_id, COUNT(*) AS articles").
		Where("created_by_id IS NOT NULL AND created_at >= ? AND created_at < ?", startAt.UTC(), endAt.UTC()).
		Group("created_by_id").
		Order("articles DESC").
		Order("admin_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetContentStats counts articles, videos and heading plus main images in [startAt, endAt)
func (r *GormDashboardRepository) GetContentStats(startAt, endAt time.Time) (DashboardContentRow, error) {
	result := DashboardContentRow{}
	start, end := startAt.UTC(), endAt.UTC()

	var images struct {
		Articles int64
		Images   int64
	}
	if err := r.db.Model(&models.Article{}).
		Select("COUNT(*) AS articles, "+
			"COALESCE(SUM(CASE WHEN heading_image <> '' THEN 1 ELSE 0 END), 0) + "+
			"COALESCE(SUM(CASE WHEN main_image <> '' THEN 1 ELSE 0 END), 0) AS images").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&images).Error; err != nil {
		return result, err
	}
	result.Articles = images.Articles
	result.Images = images.Images

	if err := r.db.Model(&models.VideoPost{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&result.Videos).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetDailyVideoStats counts videos per creation day
func (r *GormDashboardRepository) GetDailyVideoStats(startAt, endAt time.Time) ([]DashboardDailyVideoRow, error) {
	dayExpr := dayBucketExpr("created_at")
	rows := make([]DashboardDailyVideoRow, 0)
	err := r.db.Model(&models.VideoPost{}).
		Select(fmt.Sprintf("%s AS day, COUNT(*) AS videos", dayExpr)).
		Where("created_at >= ? AND created_at < ?", startAt.UTC(), endAt.UTC()).
		Group(dayExpr).
		Order("day asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
