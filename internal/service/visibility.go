package service

import (
	"time"

	"github.com/jagoron-news/internal/models"
)

// IsVisible reports whether article may be shown at now.
// Scheduled articles are visible before their time only to privileged viewers.
func IsVisible(article *models.Article, now time.Time, privileged bool) bool {
	if article == nil {
		return false
	}
	if article.ScheduledPublishAt == nil {
		return true
	}
	if !article.ScheduledPublishAt.After(now) {
		return true
	}
	return privileged
}

// Clock returns the current time; services take one so tests can pin it
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
