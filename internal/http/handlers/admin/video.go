package admin

import (
	"strconv"

	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

type videoPayload struct {
	SectionID   *uint  `json:"section_id"`
	VideoTitle  string `json:"video_title"`
	YoutubeLink string `json:"youtube_link"`
}

// ListVideos video posts, optionally of ?section_id
func (h *Handler) ListVideos(c *gin.Context) {
	sectionID, ok := parseOptionalUint(c, "section_id")
	if !ok {
		return
	}
	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if pageNum < 1 {
		pageNum = 1
	}
	videos, total, err := h.VideoService.List(pageNum, sectionID)
	if err != nil {
		respondServiceError(c, err, "video list failed")
		return
	}
	response.SuccessWithPage(c, videos, response.NewPagination(pageNum, service.VideoPageSize, total))
}

// GetVideo one video post
func (h *Handler) GetVideo(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	video, err := h.VideoService.Get(id)
	if err != nil {
		respondServiceError(c, err, "video fetch failed")
		return
	}
	response.Success(c, video)
}

// CreateVideo adds a video post
func (h *Handler) CreateVideo(c *gin.Context) {
	h.saveVideo(c, 0)
}

// UpdateVideo edits a video post
func (h *Handler) UpdateVideo(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.saveVideo(c, id)
}

func (h *Handler) saveVideo(c *gin.Context, id uint) {
	var req videoPayload
	if !bindJSON(c, &req) {
		return
	}
	video, err := h.VideoService.Save(id, service.VideoInput{
		SectionID:   req.SectionID,
		VideoTitle:  req.VideoTitle,
		YoutubeLink: req.YoutubeLink,
	})
	if err != nil {
		respondServiceError(c, err, "video save failed")
		return
	}
	response.Success(c, video)
}

// DeleteVideo removes a video post
func (h *Handler) DeleteVideo(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.VideoService.Delete(id); err != nil {
		respondServiceError(c, err, "video delete failed")
		return
	}
	response.Success(c, nil)
}
