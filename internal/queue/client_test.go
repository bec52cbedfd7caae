package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jagoron-news/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

func TestDisabledClientDropsTasks(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("disabled config should produce a disabled client")
	}
	if err := client.EnqueueArticlePublish(ArticlePublishPayload{ArticleID: 1}, time.Now()); err != nil {
		t.Fatalf("disabled enqueue should be a no-op, got %v", err)
	}
}

func TestNewArticlePublishTask(t *testing.T) {
	task, err := NewArticlePublishTask(ArticlePublishPayload{ArticleID: 9, ScheduledAt: 1700000000})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskArticlePublish {
		t.Fatalf("task type want %s got %s", TaskArticlePublish, task.Type())
	}
	var payload ArticlePublishPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.ArticleID != 9 || payload.ScheduledAt != 1700000000 {
		t.Fatalf("payload mismatch: %+v", payload)
	}
}

func TestEnqueueArticlePublishSchedulesOncePerSchedule(t *testing.T) {
	server := miniredis.RunT(t)
	cfg := &config.QueueConfig{Enabled: true, Host: server.Host(), Port: mustPort(t, server)}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	defer client.Close()

	at := time.Now().Add(time.Hour)
	payload := ArticlePublishPayload{ArticleID: 5, ScheduledAt: at.Unix()}
	if err := client.EnqueueArticlePublish(payload, at); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if err := client.EnqueueArticlePublish(payload, at); err != nil {
		t.Fatalf("duplicate enqueue should be ignored, got %v", err)
	}

	inspector := asynq.NewInspector(buildRedisOpt(cfg))
	defer inspector.Close()
	scheduled, err := inspector.ListScheduledTasks(DefaultQueue)
	if err != nil {
		t.Fatalf("list scheduled failed: %v", err)
	}
	if len(scheduled) != 1 || scheduled[0].Type != TaskArticlePublish {
		t.Fatalf("scheduled tasks mismatch: %+v", scheduled)
	}
}

func mustPort(t *testing.T, server *miniredis.Miniredis) int {
	t.Helper()
	var port int
	for _, r := range server.Port() {
		port = port*10 + int(r-'0')
	}
	if port == 0 {
		t.Fatalf("invalid miniredis port %q", server.Port())
	}
	return port
}
