package service

import (
	"strings"

	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

// AuthorService staff writer directory
type AuthorService struct {
	repo repository.AuthorRepository
}

// NewAuthorService creates the author service
func NewAuthorService(repo repository.AuthorRepository) *AuthorService {
	return &AuthorService{repo: repo}
}

// AuthorCategoryInput author category input
type AuthorCategoryInput struct {
	Title string
	Slug  string
}

// AuthorRoleInput author role input
type AuthorRoleInput struct {
	CategoryID uint
	Title      string
	Priority   int
}

// AuthorInput author profile input
type AuthorInput struct {
	CategoryID  uint
	RoleID      *uint
	Name        string
	Slug        string
	Image       string
	Description string
	IsActive    *bool
}

// Directory lists categories with roles by priority and their active authors
func (s *AuthorService) Directory() ([]models.AuthorCategory, error) {
	return s.repo.ListCategories(true)
}

// GetBySlug loads an active author
func (s *AuthorService) GetBySlug(slug string) (*models.Author, error) {
	author, err := s.repo.GetBySlug(strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	if author == nil || !author.IsActive {
		return nil, ErrContentNotFound
	}
	return author, nil
}

// ListCategories lists categories with their roles
func (s *AuthorService) ListCategories() ([]models.AuthorCategory, error) {
	return s.repo.ListCategories(false)
}

// SaveCategory creates (id 0) or updates a category
func (s *AuthorService) SaveCategory(id uint, input AuthorCategoryInput) (*models.AuthorCategory, error) {
	category := &models.AuthorCategory{}
	if id != 0 {
		existing, err := s.repo.GetCategoryByID(id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		category = existing
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	slug := SlugifyName(input.Slug)
	if slug == "" {
		slug = SlugifyName(title)
	}
	category.Title = title
	category.Slug = slug
	if err := s.repo.SaveCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category with its roles and authors
func (s *AuthorService) DeleteCategory(id uint) error {
	category, err := s.repo.GetCategoryByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return s.repo.DeleteCategory(id)
}

// SaveRole creates (id 0) or updates a role
func (s *AuthorService) SaveRole(id uint, input AuthorRoleInput) (*models.AuthorRole, error) {
	role := &models.AuthorRole{}
	if id != 0 {
		existing, err := s.repo.GetRoleByID(id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		role = existing
	}
	category, err := s.repo.GetCategoryByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	priority := input.Priority
	if priority <= 0 {
		priority = 1
	}
	role.CategoryID = category.ID
	role.Title = title
	role.Priority = priority
	if err := s.repo.SaveRole(role); err != nil {
		return nil, err
	}
	return role, nil
}

// DeleteRole removes a role; its authors stay without a role
func (s *AuthorService) DeleteRole(id uint) error {
	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrNotFound
	}
	return s.repo.DeleteRole(id)
}

// ListAuthors lists authors of a category, or all when categoryID is 0
func (s *AuthorService) ListAuthors(categoryID uint) ([]models.Author, error) {
	return s.repo.List(repository.AuthorListFilter{CategoryID: categoryID})
}

// SaveAuthor creates (id 0) or updates an author
func (s *AuthorService) SaveAuthor(id uint, input AuthorInput) (*models.Author, error) {
	author := &models.Author{IsActive: true}
	if id != 0 {
		existing, err := s.repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		author = existing
	}
	category, err := s.repo.GetCategoryByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	var roleID *uint
	if input.RoleID != nil && *input.RoleID != 0 {
		role, err := s.repo.GetRoleByID(*input.RoleID)
		if err != nil {
			return nil, err
		}
		if role == nil || role.CategoryID != category.ID {
			return nil, &ValidationError{Field: "role_id", Reason: "role does not belong to the category"}
		}
		roleID = &role.ID
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTitleRequired
	}
	slug := SlugifyName(input.Slug)
	if slug == "" {
		slug = SlugifyName(name)
	}
	var excludeID *uint
	if author.ID != 0 {
		excludeID = &author.ID
	}
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	author.CategoryID = category.ID
	author.RoleID = roleID
	author.Name = name
	author.Slug = slug
	author.Image = strings.TrimSpace(input.Image)
	author.Description = strings.TrimSpace(input.Description)
	if input.IsActive != nil {
		author.IsActive = *input.IsActive
	}
	if err := s.repo.Save(author); err != nil {
		return nil, err
	}
	return author, nil
}

// DeleteAuthor removes an author
func (s *AuthorService) DeleteAuthor(id uint) error {
	author, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if author == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
