package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/provider"
	"github.com/jagoron-news/internal/queue"
	"github.com/jagoron-news/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles newsroom background tasks
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers to the mux
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskArticlePublish, c.handleArticlePublish)
	mux.HandleFunc(queue.TaskContentCachePurge, c.handleContentCachePurge)
}

func (c *Consumer) handleArticlePublish(_ context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_article_publish_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ArticlePublishPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_article_publish_unmarshal_failed", "error", err)
		return err
	}
	if payload.ArticleID == 0 {
		logger.Debugw("worker_article_publish_skip_invalid_payload", "article_id", payload.ArticleID)
		return nil
	}
	if c.ArticleService == nil {
		logger.Warnw("worker_article_publish_skip_service_nil", "article_id", payload.ArticleID)
		return nil
	}
	published, err := c.ArticleService.PublishDue(payload.ArticleID, payload.ScheduledAt)
	if err != nil {
		logger.Warnw("worker_article_publish_failed", "article_id", payload.ArticleID, "error", err)
		return err
	}
	if !published {
		logger.Debugw("worker_article_publish_stale", "article_id", payload.ArticleID, "scheduled_at", payload.ScheduledAt)
	}
	return nil
}

func (c *Consumer) handleContentCachePurge(_ context.Context, task *asynq.Task) error {
	if task == nil {
		return nil
	}
	var payload queue.ContentCachePurgePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_content_cache_purge_unmarshal_failed", "error", err)
		return err
	}
	reason := strings.TrimSpace(payload.Reason)
	if reason == "" {
		reason = "worker"
	}
	service.PurgeContentCache(reason)
	return nil
}
