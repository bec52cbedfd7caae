package service

import (
	"crypto/rand"
	"math/big"
	"net/url"
	"strings"

	"github.com/jagoron-news/internal/constants"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

const (
	shortCodeAlphabet    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	shortCodeMaxAttempts = 10
)

// ShortURLService share links with click counting
type ShortURLService struct {
	repo repository.ShortURLRepository
}

// NewShortURLService creates the short url service
func NewShortURLService(repo repository.ShortURLRepository) *ShortURLService {
	return &ShortURLService{repo: repo}
}

// Shorten returns the short url of originalURL, reusing an existing one
func (s *ShortURLService) Shorten(originalURL string) (*models.ShortURL, error) {
	originalURL = strings.TrimSpace(originalURL)
	if !isShortenableURL(originalURL) {
		return nil, ErrInvalidShortURL
	}
	existing, err := s.repo.GetByOriginalURL(originalURL)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	for attempt := 0; attempt < shortCodeMaxAttempts; attempt++ {
		code, err := randomShortCode(constants.ShortCodeLength)
		if err != nil {
			return nil, err
		}
		count, err := s.repo.CountByCode(code)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}
		shortURL := &models.ShortURL{OriginalURL: originalURL, ShortCode: code}
		if err := s.repo.Create(shortURL); err != nil {
			return nil, err
		}
		return shortURL, nil
	}
	return nil, ErrShortCodeExhausted
}

// Follow resolves a code and counts the click
func (s *ShortURLService) Follow(code string) (string, error) {
	shortURL, err := s.repo.GetByCode(strings.TrimSpace(code))
	if err != nil {
		return "", err
	}
	if shortURL == nil {
		return "", ErrContentNotFound
	}
	if err := s.repo.IncrementClicks(shortURL.ID); err != nil {
		return "", err
	}
	return shortURL.OriginalURL, nil
}

// ListAdmin lists short urls
func (s *ShortURLService) ListAdmin(search string, page, pageSize int) ([]models.ShortURL, int64, error) {
	return s.repo.List(repository.ShortURLListFilter{Page: page, PageSize: pageSize, Search: strings.TrimSpace(search)})
}

// Delete removes a short url
func (s *ShortURLService) Delete(id uint) error {
	return s.repo.Delete(id)
}

// isShortenableURL accepts absolute http(s) urls and site-relative paths
func isShortenableURL(raw string) bool {
	if raw == "" || len(raw) > 2000 {
		return false
	}
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return true
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func randomShortCode(length int) (string, error) {
	max := big.NewInt(int64(len(shortCodeAlphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(shortCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}
