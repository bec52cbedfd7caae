package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/constants"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

const redirectionCacheTTL = 5 * time.Minute

// RedirectionService admin-managed url redirections
type RedirectionService struct {
	repo repository.RedirectionRepository
}

// NewRedirectionService creates the redirection service
func NewRedirectionService(repo repository.RedirectionRepository) *RedirectionService {
	return &RedirectionService{repo: repo}
}

// RedirectionInput redirection create/update input
type RedirectionInput struct {
	OldURL       string
	NewURL       string
	RedirectType string
	IsActive     *bool
}

// RedirectTarget where a matched request goes
type RedirectTarget struct {
	Location string `json:"location"`
	Type     string `json:"type"`
}

// StatusCode 301 or 302
func (t RedirectTarget) StatusCode() int {
	if t.Type == constants.RedirectTypeTemporary {
		return 302
	}
	return 301
}

// Lookup matches path exactly against the active redirection table
func (s *RedirectionService) Lookup(ctx context.Context, path string) (*RedirectTarget, error) {
	table, err := s.activeTable(ctx)
	if err != nil {
		return nil, err
	}
	target, ok := table[path]
	if !ok {
		return nil, nil
	}
	return &target, nil
}

func (s *RedirectionService) activeTable(ctx context.Context) (map[string]RedirectTarget, error) {
	var table map[string]RedirectTarget
	hit, err := cache.GetJSON(ctx, cache.RedirectionsKey(), &table)
	if err != nil {
		logger.Warnw("redirection_cache_get_failed", "error", err)
	}
	if hit && table != nil {
		return table, nil
	}

	rows, err := s.repo.ListActive()
	if err != nil {
		return nil, err
	}
	table = make(map[string]RedirectTarget, len(rows))
	for _, row := range rows {
		table[row.OldURL] = RedirectTarget{Location: row.NewURL, Type: row.RedirectType}
	}
	if err := cache.SetJSON(ctx, cache.RedirectionsKey(), table, redirectionCacheTTL); err != nil {
		logger.Warnw("redirection_cache_set_failed", "error", err)
	}
	return table, nil
}

// List lists redirections for the admin
func (s *RedirectionService) List(search string, isActive *bool, page, pageSize int) ([]models.URLRedirection, int64, error) {
	return s.repo.List(repository.RedirectionListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(search),
		IsActive: isActive,
	})
}

// Create creates a redirection
func (s *RedirectionService) Create(input RedirectionInput) (*models.URLRedirection, error) {
	row := &models.URLRedirection{IsActive: true}
	if err := s.apply(row, input); err != nil {
		return nil, err
	}
	if err := s.repo.Save(row); err != nil {
		return nil, err
	}
	s.invalidate()
	return row, nil
}

// Update updates a redirection
func (s *RedirectionService) Update(id uint, input RedirectionInput) (*models.URLRedirection, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	if err := s.apply(row, input); err != nil {
		return nil, err
	}
	if err := s.repo.Save(row); err != nil {
		return nil, err
	}
	s.invalidate()
	return row, nil
}

// Delete removes a redirection
func (s *RedirectionService) Delete(id uint) error {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *RedirectionService) apply(row *models.URLRedirection, input RedirectionInput) error {
	oldURL := normalizeRedirectPath(input.OldURL)
	newURL := strings.TrimSpace(input.NewURL)
	if oldURL == "" || newURL == "" || oldURL == newURL {
		return ErrInvalidRedirectURL
	}
	if !strings.HasPrefix(newURL, "/") {
		parsed, err := url.Parse(newURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return ErrInvalidRedirectURL
		}
	}
	redirectType := strings.TrimSpace(input.RedirectType)
	if redirectType == "" {
		redirectType = constants.RedirectTypePermanent
	}
	if redirectType != constants.RedirectTypePermanent && redirectType != constants.RedirectTypeTemporary {
		return ErrInvalidRedirectType
	}
	var excludeID *uint
	if row.ID != 0 {
		excludeID = &row.ID
	}
	count, err := s.repo.CountByOldURL(oldURL, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrOldURLExists
	}
	row.OldURL = oldURL
	row.NewURL = newURL
	row.RedirectType = redirectType
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	return nil
}

func (s *RedirectionService) invalidate() {
	if err := cache.Del(context.Background(), cache.RedirectionsKey()); err != nil {
		logger.Warnw("redirection_cache_invalidate_failed", "error", err)
	}
}

// normalizeRedirectPath keeps the request path form: leading slash, no host, no query
func normalizeRedirectPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if parsed, err := url.Parse(raw); err == nil && parsed.Host != "" {
		raw = parsed.Path
	}
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return raw
}
