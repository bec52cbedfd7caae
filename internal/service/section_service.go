package service

import (
	"context"
	"strings"
	"time"

	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/constants"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/queue"
	"github.com/jagoron-news/internal/repository"
)

// SectionService navigation sections and subsections
type SectionService struct {
	repo        repository.SectionRepository
	queueClient *queue.Client
	contentCfg  config.ContentConfig
}

// NewSectionService creates the section service
func NewSectionService(repo repository.SectionRepository, queueClient *queue.Client, contentCfg config.ContentConfig) *SectionService {
	return &SectionService{repo: repo, queueClient: queueClient, contentCfg: contentCfg}
}

// SectionInput section create/update input
type SectionInput struct {
	Title        string
	EnglishTitle string
	Position     int
	IsActive     *bool
}

// SubsectionInput subsection create/update input
type SubsectionInput struct {
	SectionID    uint
	Title        string
	EnglishTitle string
	Position     int
	IsActive     *bool
}

// NavItem navbar entry with its canonical path
type NavItem struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Path        string    `json:"path"`
	Subsections []NavItem `json:"subsections,omitempty"`
}

// Nav returns active sections with their active subsections in position order
func (s *SectionService) Nav() ([]NavItem, error) {
	ctx := context.Background()
	var cached []NavItem
	hit, err := cache.GetJSON(ctx, cache.NavKey(), &cached)
	if err != nil {
		logger.Warnw("section_nav_cache_get_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	sections, err := s.repo.ListSections(repository.SectionListFilter{ActiveOnly: true, WithSubsections: true})
	if err != nil {
		return nil, err
	}
	items := make([]NavItem, 0, len(sections))
	for i := range sections {
		section := &sections[i]
		item := NavItem{
			ID:    section.ID,
			Title: section.Title,
			Slug:  SectionSlug(section),
			Path:  SectionCanonicalPath(section),
		}
		for j := range section.Subsections {
			subsection := section.Subsections[j]
			item.Subsections = append(item.Subsections, NavItem{
				ID:    subsection.ID,
				Title: subsection.Title,
				Slug:  SubsectionSlug(&subsection),
				Path:  SubsectionCanonicalPath(section, &subsection),
			})
		}
		items = append(items, item)
	}

	ttl := time.Duration(s.contentCfg.NavCacheTTLSeconds) * time.Second
	if ttl > 0 {
		if err := cache.SetJSON(ctx, cache.NavKey(), items, ttl); err != nil {
			logger.Warnw("section_nav_cache_set_failed", "error", err)
		}
	}
	return items, nil
}

// ListAdmin lists every section with all subsections
func (s *SectionService) ListAdmin() ([]models.Section, error) {
	return s.repo.ListSections(repository.SectionListFilter{WithSubsections: true})
}

// ListSubsections lists the subsections of a section
func (s *SectionService) ListSubsections(sectionID uint) ([]models.Subsection, error) {
	return s.repo.ListSubsections(sectionID, false)
}

// GetSection loads a section
func (s *SectionService) GetSection(id uint) (*models.Section, error) {
	section, err := s.repo.GetSectionByID(id)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrNotFound
	}
	return section, nil
}

// CreateSection creates a section
func (s *SectionService) CreateSection(input SectionInput) (*models.Section, error) {
	section := &models.Section{IsActive: true}
	if err := s.applySection(section, input); err != nil {
		return nil, err
	}
	if err := s.repo.CreateSection(section); err != nil {
		return nil, err
	}
	invalidateContent(s.queueClient, "section_saved", 0)
	return section, nil
}

// UpdateSection updates a section
func (s *SectionService) UpdateSection(id uint, input SectionInput) (*models.Section, error) {
	section, err := s.GetSection(id)
	if err != nil {
		return nil, err
	}
	if err := s.applySection(section, input); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSection(section); err != nil {
		return nil, err
	}
	invalidateContent(s.queueClient, "section_saved", 0)
	return section, nil
}

// DeleteSection removes a section that no article references
func (s *SectionService) DeleteSection(id uint) error {
	if _, err := s.GetSection(id); err != nil {
		return err
	}
	count, err := s.repo.CountSectionArticles(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSectionInUse
	}
	if err := s.repo.DeleteSection(id); err != nil {
		return err
	}
	invalidateContent(s.queueClient, "section_deleted", 0)
	return nil
}

// GetSubsection loads a subsection
func (s *SectionService) GetSubsection(id uint) (*models.Subsection, error) {
	subsection, err := s.repo.GetSubsectionByID(id)
	if err != nil {
		return nil, err
	}
	if subsection == nil {
		return nil, ErrNotFound
	}
	return subsection, nil
}

// CreateSubsection creates a subsection under an existing section
func (s *SectionService) CreateSubsection(input SubsectionInput) (*models.Subsection, error) {
	subsection := &models.Subsection{IsActive: true}
	if err := s.applySubsection(subsection, input); err != nil {
		return nil, err
	}
	if err := s.repo.CreateSubsection(subsection); err != nil {
		return nil, err
	}
	invalidateContent(s.queueClient, "subsection_saved", 0)
	return subsection, nil
}

// UpdateSubsection updates a subsection. Moving it to another section is refused
// while articles still reference it.
func (s *SectionService) UpdateSubsection(id uint, input SubsectionInput) (*models.Subsection, error) {
	subsection, err := s.GetSubsection(id)
	if err != nil {
		return nil, err
	}
	if subsection.SectionID != nil && *subsection.SectionID != input.SectionID {
		count, err := s.repo.CountSubsectionArticles(id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSubsectionInUse
		}
	}
	if err := s.applySubsection(subsection, input); err != nil {
		return nil, err
	}
	subsection.Section = nil
	if err := s.repo.UpdateSubsection(subsection); err != nil {
		return nil, err
	}
	invalidateContent(s.queueClient, "subsection_saved", 0)
	return subsection, nil
}

// DeleteSubsection removes a subsection that no article references
func (s *SectionService) DeleteSubsection(id uint) error {
	if _, err := s.GetSubsection(id); err != nil {
		return err
	}
	count, err := s.repo.CountSubsectionArticles(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSubsectionInUse
	}
	if err := s.repo.DeleteSubsection(id); err != nil {
		return err
	}
	invalidateContent(s.queueClient, "subsection_deleted", 0)
	return nil
}

func (s *SectionService) applySection(section *models.Section, input SectionInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrTitleRequired
	}
	englishTitle := strings.TrimSpace(input.EnglishTitle)
	if slug := Slugify(englishTitle); slug != "" {
		if constants.IsReservedPathSegment(slug) {
			return ErrSlugReserved
		}
		sections, err := s.repo.ListSections(repository.SectionListFilter{})
		if err != nil {
			return err
		}
		for i := range sections {
			if sections[i].ID != section.ID && SectionSlug(&sections[i]) == slug {
				return ErrSlugExists
			}
		}
	}
	section.Title = title
	section.EnglishTitle = englishTitle
	section.Position = input.Position
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}
	return nil
}

func (s *SectionService) applySubsection(subsection *models.Subsection, input SubsectionInput) error {
	if input.SectionID == 0 {
		return ErrSectionRequired
	}
	section, err := s.repo.GetSectionByID(input.SectionID)
	if err != nil {
		return err
	}
	if section == nil {
		return ErrSectionRequired
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrTitleRequired
	}
	englishTitle := strings.TrimSpace(input.EnglishTitle)
	if slug := Slugify(englishTitle); slug != "" {
		siblings, err := s.repo.ListSubsections(section.ID, false)
		if err != nil {
			return err
		}
		for i := range siblings {
			if siblings[i].ID != subsection.ID && SubsectionSlug(&siblings[i]) == slug {
				return ErrSlugExists
			}
		}
	}
	subsection.SectionID = &section.ID
	subsection.Title = title
	subsection.EnglishTitle = englishTitle
	subsection.Position = input.Position
	if input.IsActive != nil {
		subsection.IsActive = *input.IsActive
	}
	return nil
}
