package service

import (
	"strings"

	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

// TaxonomyService editorial categories and tags
type TaxonomyService struct {
	repo repository.TaxonomyRepository
}

// NewTaxonomyService creates the taxonomy service
func NewTaxonomyService(repo repository.TaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{repo: repo}
}

// TagInput tag create/update input; an empty slug is derived from the name
type TagInput struct {
	Name string
	Slug string
}

// ListCategories lists categories
func (s *TaxonomyService) ListCategories() ([]models.Category, error) {
	return s.repo.ListCategories()
}

// CreateCategory creates a category
func (s *TaxonomyService) CreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTitleRequired
	}
	category := &models.Category{Name: name}
	if err := s.repo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a category
func (s *TaxonomyService) UpdateCategory(id uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTitleRequired
	}
	category, err := s.repo.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	category.Name = name
	if err := s.repo.UpdateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category and its article links
func (s *TaxonomyService) DeleteCategory(id uint) error {
	category, err := s.repo.GetCategoryByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return s.repo.DeleteCategory(id)
}

// ListTags lists tags, optionally filtered by name
func (s *TaxonomyService) ListTags(search string) ([]models.Tag, error) {
	return s.repo.ListTags(strings.TrimSpace(search))
}

// GetTagBySlug loads a tag by slug
func (s *TaxonomyService) GetTagBySlug(slug string) (*models.Tag, error) {
	tag, err := s.repo.GetTagBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return tag, nil
}

// CreateTag creates a tag
func (s *TaxonomyService) CreateTag(input TagInput) (*models.Tag, error) {
	tag := &models.Tag{}
	if err := s.applyTag(tag, input); err != nil {
		return nil, err
	}
	if err := s.repo.CreateTag(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateTag updates a tag
func (s *TaxonomyService) UpdateTag(id uint, input TagInput) (*models.Tag, error) {
	tag, err := s.repo.GetTagByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	if err := s.applyTag(tag, input); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTag(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag and its article links
func (s *TaxonomyService) DeleteTag(id uint) error {
	tag, err := s.repo.GetTagByID(id)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrNotFound
	}
	return s.repo.DeleteTag(id)
}

func (s *TaxonomyService) applyTag(tag *models.Tag, input TagInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrTagNameRequired
	}
	slug := SlugifyName(input.Slug)
	if slug == "" {
		slug = SlugifyName(name)
	}
	if slug == "" {
		return ErrTagNameRequired
	}
	var excludeID *uint
	if tag.ID != 0 {
		excludeID = &tag.ID
	}
	count, err := s.repo.CountTagBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	tag.Name = name
	tag.Slug = slug
	return nil
}
