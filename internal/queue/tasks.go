package queue

import (
	"encoding/json"
	"fmt"

	"github.com/jagoron-news/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskArticlePublish fires when a scheduled article becomes visible
	TaskArticlePublish = constants.TaskArticlePublish
	// TaskContentCachePurge drops cached listings after content changes
	TaskContentCachePurge = constants.TaskContentCachePurge
)

// ArticlePublishPayload article publish task payload
type ArticlePublishPayload struct {
	ArticleID   uint  `json:"article_id"`
	ScheduledAt int64 `json:"scheduled_at"` // unix seconds, stale tasks are ignored
}

// ContentCachePurgePayload cache purge task payload
type ContentCachePurgePayload struct {
	Reason    string `json:"reason"`
	ArticleID uint   `json:"article_id,omitempty"`
}

// NewArticlePublishTask builds an article publish task
func NewArticlePublishTask(payload ArticlePublishPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskArticlePublish, body), nil
}

// NewContentCachePurgeTask builds a cache purge task
func NewContentCachePurgeTask(payload ContentCachePurgePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContentCachePurge, body), nil
}

// articlePublishTaskID one pending publish task per article and schedule
func articlePublishTaskID(payload ArticlePublishPayload) string {
	return fmt.Sprintf("article-publish-%d-%d", payload.ArticleID, payload.ScheduledAt)
}
