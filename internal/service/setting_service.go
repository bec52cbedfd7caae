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
	"github.com/jagoron-news/internal/repository"
)

const siteConfigCacheTTL = 10 * time.Minute

// siteConfigFields editable keys of the site_config setting
var siteConfigFields = []string{
	"site_name",
	"tagline",
	"contact_email",
	"contact_phone",
	"address",
	"facebook_url",
	"youtube_url",
	"twitter_url",
	"editor_name",
	"footer_text",
}

// SettingService key/value site settings
type SettingService struct {
	repo    repository.SiteRepository
	siteCfg config.SiteConfig
}

// NewSettingService creates the setting service
func NewSettingService(repo repository.SiteRepository, siteCfg config.SiteConfig) *SettingService {
	return &SettingService{repo: repo, siteCfg: siteCfg}
}

// GetSiteConfig returns the public site config merged over the configured defaults
func (s *SettingService) GetSiteConfig() (map[string]interface{}, error) {
	ctx := context.Background()
	var cached map[string]interface{}
	hit, err := cache.GetJSON(ctx, cache.SiteConfigKey(), &cached)
	if err != nil {
		logger.Warnw("site_config_cache_get_failed", "error", err)
	}
	if hit && cached != nil {
		return cached, nil
	}

	data := map[string]interface{}{
		"site_name": s.siteCfg.Name,
		"site_url":  s.siteCfg.TrimmedSiteURL(),
	}
	setting, err := s.repo.GetSetting(constants.SettingKeySiteConfig)
	if err != nil {
		return nil, err
	}
	if setting != nil {
		for k, v := range setting.ValueJSON {
			data[k] = v
		}
	}
	if err := cache.SetJSON(ctx, cache.SiteConfigKey(), data, siteConfigCacheTTL); err != nil {
		logger.Warnw("site_config_cache_set_failed", "error", err)
	}
	return data, nil
}

// GetByKey returns the raw value, nil when unset
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetSetting(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update stores value under key; site_config keeps only its known string fields
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, &ValidationError{Field: "key", Reason: "setting key is required"}
	}
	normalized := models.JSON(value)
	if key == constants.SettingKeySiteConfig {
		normalized = normalizeSiteConfig(value)
	}
	setting, err := s.repo.UpsertSetting(key, normalized)
	if err != nil {
		return nil, err
	}
	if err := cache.Del(context.Background(), cache.SiteConfigKey()); err != nil {
		logger.Warnw("site_config_cache_invalidate_failed", "error", err)
	}
	return setting.ValueJSON, nil
}

func normalizeSiteConfig(value map[string]interface{}) models.JSON {
	normalized := make(models.JSON, len(siteConfigFields))
	for _, field := range siteConfigFields {
		raw, ok := value[field]
		if !ok {
			continue
		}
		text, ok := raw.(string)
		if !ok {
			continue
		}
		normalized[field] = strings.TrimSpace(text)
	}
	return normalized
}
