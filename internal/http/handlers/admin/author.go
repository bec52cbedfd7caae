package admin

import (
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

type authorCategoryPayload struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type authorRolePayload struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	Title      string `json:"title"`
	Priority   int    `json:"priority"`
}

type authorPayload struct {
	CategoryID  uint   `json:"category_id" binding:"required"`
	RoleID      *uint  `json:"role_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Image       string `json:"image"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// ListAuthorCategories author groups with their roles
func (h *Handler) ListAuthorCategories(c *gin.Context) {
	categories, err := h.AuthorService.ListCategories()
	if err != nil {
		respondServiceError(c, err, "author category list failed")
		return
	}
	response.Success(c, categories)
}

// CreateAuthorCategory adds an author group
func (h *Handler) CreateAuthorCategory(c *gin.Context) {
	h.saveAuthorCategory(c, 0)
}

// UpdateAuthorCategory edits an author group
func (h *Handler) UpdateAuthorCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.saveAuthorCategory(c, id)
}

func (h *Handler) saveAuthorCategory(c *gin.Context, id uint) {
	var req authorCategoryPayload
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.AuthorService.SaveCategory(id, service.AuthorCategoryInput{Title: req.Title, Slug: req.Slug})
	if err != nil {
		respondServiceError(c, err, "author category save failed")
		return
	}
	response.Success(c, category)
}

// DeleteAuthorCategory removes an author group
func (h *Handler) DeleteAuthorCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AuthorService.DeleteCategory(id); err != nil {
		respondServiceError(c, err, "author category delete failed")
		return
	}
	response.Success(c, nil)
}

// CreateAuthorRole adds a role to a group
func (h *Handler) CreateAuthorRole(c *gin.Context) {
	h.saveAuthorRole(c, 0)
}

// UpdateAuthorRole edits a role
func (h *Handler) UpdateAuthorRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.saveAuthorRole(c, id)
}

func (h *Handler) saveAuthorRole(c *gin.Context, id uint) {
	var req authorRolePayload
	if !bindJSON(c, &req) {
		return
	}
	role, err := h.AuthorService.SaveRole(id, service.AuthorRoleInput{
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Priority:   req.Priority,
	})
	if err != nil {
		respondServiceError(c, err, "author role save failed")
		return
	}
	response.Success(c, role)
}

// DeleteAuthorRole removes a role
func (h *Handler) DeleteAuthorRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AuthorService.DeleteRole(id); err != nil {
		respondServiceError(c, err, "author role delete failed")
		return
	}
	response.Success(c, nil)
}

// ListAuthors authors of ?category_id, or all
func (h *Handler) ListAuthors(c *gin.Context) {
	categoryID, ok := parseOptionalUint(c, "category_id")
	if !ok {
		return
	}
	var id uint
	if categoryID != nil {
		id = *categoryID
	}
	authors, err := h.AuthorService.ListAuthors(id)
	if err != nil {
		respondServiceError(c, err, "author list failed")
		return
	}
	response.Success(c, authors)
}

// CreateAuthor adds an author profile
func (h *Handler) CreateAuthor(c *gin.Context) {
	h.saveAuthor(c, 0)
}

// UpdateAuthor edits an author profile
func (h *Handler) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.saveAuthor(c, id)
}

func (h *Handler) saveAuthor(c *gin.Context, id uint) {
	var req authorPayload
	if !bindJSON(c, &req) {
		return
	}
	author, err := h.AuthorService.SaveAuthor(id, service.AuthorInput{
		CategoryID:  req.CategoryID,
		RoleID:      req.RoleID,
		Name:        req.Name,
		Slug:        req.Slug,
		Image:       req.Image,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err, "author save failed")
		return
	}
	response.Success(c, author)
}

// DeleteAuthor removes an author profile
func (h *Handler) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AuthorService.DeleteAuthor(id); err != nil {
		respondServiceError(c, err, "author delete failed")
		return
	}
	response.Success(c, nil)
}
