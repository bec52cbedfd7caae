package admin

import (
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

// SectionRequest section body
type SectionRequest struct {
	Title        string `json:"title"`
	EnglishTitle string `json:"english_title"`
	Position     int    `json:"position"`
	IsActive     *bool  `json:"is_active"`
}

// SubsectionRequest subsection body
type SubsectionRequest struct {
	SectionID    uint   `json:"section_id"`
	Title        string `json:"title"`
	EnglishTitle string `json:"english_title"`
	Position     int    `json:"position"`
	IsActive     *bool  `json:"is_active"`
}

func (r SectionRequest) toInput() service.SectionInput {
	return service.SectionInput{Title: r.Title, EnglishTitle: r.EnglishTitle, Position: r.Position, IsActive: r.IsActive}
}

func (r SubsectionRequest) toInput() service.SubsectionInput {
	return service.SubsectionInput{
		SectionID:    r.SectionID,
		Title:        r.Title,
		EnglishTitle: r.EnglishTitle,
		Position:     r.Position,
		IsActive:     r.IsActive,
	}
}

// ListSections every section with subsections
func (h *Handler) ListSections(c *gin.Context) {
	sections, err := h.SectionService.ListAdmin()
	if err != nil {
		respondServiceError(c, err, "section list failed")
		return
	}
	response.Success(c, sections)
}

// GetSection one section
func (h *Handler) GetSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	section, err := h.SectionService.GetSection(id)
	if err != nil {
		respondServiceError(c, err, "section fetch failed")
		return
	}
	response.Success(c, section)
}

// CreateSection adds a section
func (h *Handler) CreateSection(c *gin.Context) {
	var req SectionRequest
	if !bindJSON(c, &req) {
		return
	}
	section, err := h.SectionService.CreateSection(req.toInput())
	if err != nil {
		respondServiceError(c, err, "section create failed")
		return
	}
	response.Success(c, section)
}

// UpdateSection edits a section; its slug follows the english title
func (h *Handler) UpdateSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SectionRequest
	if !bindJSON(c, &req) {
		return
	}
	section, err := h.SectionService.UpdateSection(id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "section update failed")
		return
	}
	response.Success(c, section)
}

// DeleteSection removes a section without articles
func (h *Handler) DeleteSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.SectionService.DeleteSection(id); err != nil {
		respondServiceError(c, err, "section delete failed")
		return
	}
	response.Success(c, nil)
}

// ListSubsections subsections of ?section_id
func (h *Handler) ListSubsections(c *gin.Context) {
	sectionID, ok := parseSectionQuery(c)
	if !ok {
		return
	}
	subsections, err := h.SectionService.ListSubsections(sectionID)
	if err != nil {
		respondServiceError(c, err, "subsection list failed")
		return
	}
	response.Success(c, subsections)
}

func parseSectionQuery(c *gin.Context) (uint, bool) {
	sectionID, ok := parseOptionalUint(c, "section_id")
	if !ok {
		return 0, false
	}
	if sectionID == nil || *sectionID == 0 {
		respondError(c, response.CodeBadRequest, "section_id is required", nil)
		return 0, false
	}
	return *sectionID, true
}

// GetSubsection one subsection
func (h *Handler) GetSubsection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	subsection, err := h.SectionService.GetSubsection(id)
	if err != nil {
		respondServiceError(c, err, "subsection fetch failed")
		return
	}
	response.Success(c, subsection)
}

// CreateSubsection adds a subsection
func (h *Handler) CreateSubsection(c *gin.Context) {
	var req SubsectionRequest
	if !bindJSON(c, &req) {
		return
	}
	subsection, err := h.SectionService.CreateSubsection(req.toInput())
	if err != nil {
		respondServiceError(c, err, "subsection create failed")
		return
	}
	response.Success(c, subsection)
}

// UpdateSubsection edits a subsection
func (h *Handler) UpdateSubsection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SubsectionRequest
	if !bindJSON(c, &req) {
		return
	}
	subsection, err := h.SectionService.UpdateSubsection(id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "subsection update failed")
		return
	}
	response.Success(c, subsection)
}

// DeleteSubsection removes a subsection without articles
func (h *Handler) DeleteSubsection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.SectionService.DeleteSubsection(id); err != nil {
		respondServiceError(c, err, "subsection delete failed")
		return
	}
	response.Success(c, nil)
}
