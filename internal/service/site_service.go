package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

const robotsCacheTTL = 30 * time.Minute

// SiteService robots.txt, site identity and static pages
type SiteService struct {
	repo    repository.SiteRepository
	siteCfg config.SiteConfig
}

// NewSiteService creates the site service
func NewSiteService(repo repository.SiteRepository, siteCfg config.SiteConfig) *SiteService {
	return &SiteService{repo: repo, siteCfg: siteCfg}
}

// RobotsInput robots row input
type RobotsInput struct {
	Content  string
	IsActive *bool
}

// DefaultPageInput static page input
type DefaultPageInput struct {
	Title   string
	Content string
	Link    string
}

// DefaultRobots body served when no robots row is active
func (s *SiteService) DefaultRobots() string {
	return fmt.Sprintf("User-agent: *\nDisallow:\nSitemap: %s/sitemap.xml\n", s.siteCfg.TrimmedSiteURL())
}

// Robots returns the active robots body or the default one
func (s *SiteService) Robots() (string, error) {
	ctx := context.Background()
	var body string
	hit, err := cache.GetJSON(ctx, cache.RobotsKey(), &body)
	if err != nil {
		logger.Warnw("robots_cache_get_failed", "error", err)
	}
	if hit {
		return body, nil
	}

	row, err := s.repo.GetActiveRobots()
	if err != nil {
		return "", err
	}
	body = s.DefaultRobots()
	if row != nil && strings.TrimSpace(row.Content) != "" {
		body = row.Content
	}
	if err := cache.SetJSON(ctx, cache.RobotsKey(), body, robotsCacheTTL); err != nil {
		logger.Warnw("robots_cache_set_failed", "error", err)
	}
	return body, nil
}

// ListRobots lists robots rows for the admin
func (s *SiteService) ListRobots() ([]models.RobotsTxt, error) {
	return s.repo.ListRobots()
}

// SaveRobots creates (id 0) or updates a robots row; an active row deactivates the others
func (s *SiteService) SaveRobots(id uint, input RobotsInput) (*models.RobotsTxt, error) {
	row := &models.RobotsTxt{IsActive: true}
	if id != 0 {
		existing, err := s.repo.GetRobotsByID(id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		row = existing
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, &ValidationError{Field: "content", Reason: "robots content is required"}
	}
	row.Content = content + "\n"
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if err := s.repo.SaveRobots(row); err != nil {
		return nil, err
	}
	s.invalidateRobots()
	return row, nil
}

// DeleteRobots removes a robots row
func (s *SiteService) DeleteRobots(id uint) error {
	row, err := s.repo.GetRobotsByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrNotFound
	}
	if err := s.repo.DeleteRobots(id); err != nil {
		return err
	}
	s.invalidateRobots()
	return nil
}

func (s *SiteService) invalidateRobots() {
	if err := cache.Del(context.Background(), cache.RobotsKey()); err != nil {
		logger.Warnw("robots_cache_invalidate_failed", "error", err)
	}
}

// SiteInfo returns the site identity row, falling back to the configured name
func (s *SiteService) SiteInfo() (*models.SiteInfo, error) {
	info, err := s.repo.GetSiteInfo()
	if err != nil {
		return nil, err
	}
	if info == nil {
		return &models.SiteInfo{Name: s.siteCfg.Name}, nil
	}
	return info, nil
}

// SaveSiteInfo updates the single site identity row
func (s *SiteService) SaveSiteInfo(name, logo string) (*models.SiteInfo, error) {
	info, err := s.repo.GetSiteInfo()
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = &models.SiteInfo{}
	}
	info.Name = strings.TrimSpace(name)
	info.Logo = strings.TrimSpace(logo)
	if err := s.repo.SaveSiteInfo(info); err != nil {
		return nil, err
	}
	return info, nil
}

// ListDefaultPages lists static pages
func (s *SiteService) ListDefaultPages() ([]models.DefaultPage, error) {
	return s.repo.ListDefaultPages()
}

// DefaultPageByLink loads a static page by its link
func (s *SiteService) DefaultPageByLink(link string) (*models.DefaultPage, error) {
	page, err := s.repo.GetDefaultPageByLink(normalizePageLink(link))
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrContentNotFound
	}
	return page, nil
}

// SaveDefaultPage creates (id 0) or updates a static page
func (s *SiteService) SaveDefaultPage(id uint, input DefaultPageInput) (*models.DefaultPage, error) {
	page := &models.DefaultPage{}
	if id != 0 {
		existing, err := s.repo.GetDefaultPageByID(id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		page = existing
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	link := normalizePageLink(input.Link)
	if link == "" {
		link = SlugifyName(title)
	}
	if link == "" {
		return nil, &ValidationError{Field: "link", Reason: "link is required"}
	}
	var excludeID *uint
	if page.ID != 0 {
		excludeID = &page.ID
	}
	count, err := s.repo.CountDefaultPageByLink(link, excludeID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrLinkExists
	}
	page.Title = title
	page.Content = input.Content
	page.Link = link
	if err := s.repo.SaveDefaultPage(page); err != nil {
		return nil, err
	}
	return page, nil
}

// DeleteDefaultPage removes a static page
func (s *SiteService) DeleteDefaultPage(id uint) error {
	page, err := s.repo.GetDefaultPageByID(id)
	if err != nil {
		return err
	}
	if page == nil {
		return ErrNotFound
	}
	return s.repo.DeleteDefaultPage(id)
}

func normalizePageLink(link string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(link)), "/")
}
