package cache

import (
	"context"
	"fmt"
	"time"
)

// content keys share one namespace so a publish can purge them together
const contentKeyPattern = "content:*"

// NavKey active sections with subsections
func NavKey() string {
	return "content:nav"
}

// RelatedKey related article ids of one article
func RelatedKey(articleID uint, limit int) string {
	return fmt.Sprintf("content:related:%d:%d", articleID, limit)
}

// SitemapKey sitemap data of a kind (sections, articles, news)
func SitemapKey(kind string) string {
	return "content:sitemap:" + kind
}

// RobotsKey active robots body
func RobotsKey() string {
	return "content:robots"
}

// RedirectionsKey active redirection table
func RedirectionsKey() string {
	return "content:redirections"
}

// SiteConfigKey site info and config
func SiteConfigKey() string {
	return "content:site"
}

// GetRelatedIDs reads cached related ids
func GetRelatedIDs(ctx context.Context, articleID uint, limit int) ([]uint, bool, error) {
	var ids []uint
	hit, err := GetJSON(ctx, RelatedKey(articleID, limit), &ids)
	if err != nil || !hit {
		return nil, false, err
	}
	return ids, true, nil
}

// SetRelatedIDs caches related ids
func SetRelatedIDs(ctx context.Context, articleID uint, limit int, ids []uint, ttl time.Duration) error {
	if ids == nil {
		ids = []uint{}
	}
	return SetJSON(ctx, RelatedKey(articleID, limit), ids, ttl)
}

// PurgeContent drops every cached content key
func PurgeContent(ctx context.Context) (int, error) {
	return DelByPattern(ctx, contentKeyPattern)
}
