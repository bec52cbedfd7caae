package service

import (
	"net/url"
	"strings"

	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

const (
	youtubeIDLength  = 11
	youtubeEmbedBase = "https://www.youtube.com/embed/"
)

// VideoPageSize videos per public page
const VideoPageSize = 12

// VideoService YouTube video posts
type VideoService struct {
	repo        repository.VideoRepository
	sectionRepo repository.SectionRepository
}

// NewVideoService creates the video service
func NewVideoService(repo repository.VideoRepository, sectionRepo repository.SectionRepository) *VideoService {
	return &VideoService{repo: repo, sectionRepo: sectionRepo}
}

// VideoInput video post input
type VideoInput struct {
	SectionID   *uint
	VideoTitle  string
	YoutubeLink string
}

// VideoView video post with its embed url
type VideoView struct {
	models.VideoPost
	VideoID  string `json:"video_id"`
	EmbedURL string `json:"embed_url"`
}

// List lists videos newest first, optionally inside one section
func (s *VideoService) List(page int, sectionID *uint) ([]VideoView, int64, error) {
	if page < 1 {
		page = 1
	}
	rows, total, err := s.repo.List(repository.VideoListFilter{Page: page, PageSize: VideoPageSize, SectionID: sectionID})
	if err != nil {
		return nil, 0, err
	}
	views := make([]VideoView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toVideoView(row))
	}
	return views, total, nil
}

// Get loads one video
func (s *VideoService) Get(id uint) (*VideoView, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	view := toVideoView(*row)
	return &view, nil
}

// Save creates (id 0) or updates a video; the link is stored as an embed url
func (s *VideoService) Save(id uint, input VideoInput) (*VideoView, error) {
	video := &models.VideoPost{}
	if id != 0 {
		existing, err := s.repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		video = existing
	}
	videoID, ok := ExtractYoutubeID(input.YoutubeLink)
	if !ok {
		return nil, ErrInvalidYoutubeLink
	}
	if input.SectionID != nil && *input.SectionID != 0 {
		section, err := s.sectionRepo.GetSectionByID(*input.SectionID)
		if err != nil {
			return nil, err
		}
		if section == nil {
			return nil, ErrSectionRequired
		}
		video.SectionID = &section.ID
	} else {
		video.SectionID = nil
	}
	video.VideoTitle = strings.TrimSpace(input.VideoTitle)
	video.YoutubeLink = youtubeEmbedBase + videoID
	if err := s.repo.Save(video); err != nil {
		return nil, err
	}
	view := toVideoView(*video)
	return &view, nil
}

// Delete removes a video
func (s *VideoService) Delete(id uint) error {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func toVideoView(row models.VideoPost) VideoView {
	view := VideoView{VideoPost: row}
	if id, ok := ExtractYoutubeID(row.YoutubeLink); ok {
		view.VideoID = id
		view.EmbedURL = youtubeEmbedBase + id
	}
	return view
}

// ExtractYoutubeID reads the 11 character video id from embed, youtu.be,
// watch?v=, /v/ and /shorts/ links.
func ExtractYoutubeID(link string) (string, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", false
	}
	if idx := strings.Index(link, "/embed/"); idx >= 0 {
		if id := cleanYoutubeID(link[idx+len("/embed/"):]); id != "" {
			return id, true
		}
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "youtu.be" || strings.HasSuffix(host, ".youtu.be") {
		if id := cleanYoutubeID(strings.Trim(parsed.Path, "/")); id != "" {
			return id, true
		}
	}
	if v := parsed.Query().Get("v"); v != "" {
		if id := cleanYoutubeID(v); id != "" {
			return id, true
		}
	}
	for _, marker := range []string{"/v/", "/shorts/"} {
		if idx := strings.Index(parsed.Path, marker); idx >= 0 {
			if id := cleanYoutubeID(parsed.Path[idx+len(marker):]); id != "" {
				return id, true
			}
		}
	}
	return "", false
}

func cleanYoutubeID(raw string) string {
	if idx := strings.IndexAny(raw, "?&#/"); idx >= 0 {
		raw = raw[:idx]
	}
	if len(raw) != youtubeIDLength {
		return ""
	}
	for _, r := range raw {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return ""
		}
	}
	return raw
}
