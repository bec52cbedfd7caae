package service

import (
	"context"

	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/queue"
)

// invalidateContent hands the purge to the worker when the queue is up and purges
// inline otherwise.
func invalidateContent(client *queue.Client, reason string, articleID uint) {
	if client.Enabled() {
		err := client.EnqueueContentCachePurge(queue.ContentCachePurgePayload{Reason: reason, ArticleID: articleID})
		if err == nil {
			return
		}
		logger.Warnw("content_cache_purge_enqueue_failed", "reason", reason, "article_id", articleID, "error", err)
	}
	purgeContentNow(reason)
}

func purgeContentNow(reason string) {
	if !cache.Enabled() {
		return
	}
	removed, err := cache.PurgeContent(context.Background())
	if err != nil {
		logger.Warnw("content_cache_purge_failed", "reason", reason, "error", err)
		return
	}
	logger.Debugw("content_cache_purged", "reason", reason, "keys", removed)
}

// PurgeContentCache drops every cached content key
func PurgeContentCache(reason string) {
	purgeContentNow(reason)
}
