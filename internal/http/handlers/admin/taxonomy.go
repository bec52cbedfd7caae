package admin

import (
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

type categoryPayload struct {
	Name string `json:"name" binding:"required"`
}

type tagPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ListCategories article categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.TaxonomyService.ListCategories()
	if err != nil {
		respondServiceError(c, err, "category list failed")
		return
	}
	response.Success(c, categories)
}

// CreateCategory adds a category
func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryPayload
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.TaxonomyService.CreateCategory(req.Name)
	if err != nil {
		respondServiceError(c, err, "category create failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory renames a category
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req categoryPayload
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.TaxonomyService.UpdateCategory(id, req.Name)
	if err != nil {
		respondServiceError(c, err, "category update failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.TaxonomyService.DeleteCategory(id); err != nil {
		respondServiceError(c, err, "category delete failed")
		return
	}
	response.Success(c, nil)
}

// ListTags tags, optionally filtered by ?search
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.TaxonomyService.ListTags(c.Query("search"))
	if err != nil {
		respondServiceError(c, err, "tag list failed")
		return
	}
	response.Success(c, tags)
}

// CreateTag adds a tag; an empty slug is derived from the name
func (h *Handler) CreateTag(c *gin.Context) {
	var req tagPayload
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.TaxonomyService.CreateTag(service.TagInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		respondServiceError(c, err, "tag create failed")
		return
	}
	response.Success(c, tag)
}

// UpdateTag edits a tag
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req tagPayload
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.TaxonomyService.UpdateTag(id, service.TagInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		respondServiceError(c, err, "tag update failed")
		return
	}
	response.Success(c, tag)
}

// DeleteTag removes a tag
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.TaxonomyService.DeleteTag(id); err != nil {
		respondServiceError(c, err, "tag delete failed")
		return
	}
	response.Success(c, nil)
}
