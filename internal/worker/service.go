package worker

import (
	"context"
	"errors"
	"time"

	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultPublishSweepInterval = time.Minute

// Service asynq worker plus the scheduled publish sweep
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	sweepInterval time.Duration
}

// NewService creates the worker service
func NewService(cfg *config.QueueConfig, contentCfg config.ContentConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:          "worker",
		server:        server,
		mux:           mux,
		consumer:      consumer,
		sweepInterval: sweepInterval(contentCfg),
	}, nil
}

// Name service name
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the sweep loop and blocks on the asynq server
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.Container != nil && s.consumer.ArticleService != nil {
		go RunPublishSweep(ctx, s.consumer.ArticleService, s.sweepInterval)
	}
	return s.server.Run(s.mux)
}

// Stop stops the server
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// PublishSweeper purges caches for schedules that passed since the last run
type PublishSweeper interface {
	SweepPublished(since time.Time) (int, time.Time, error)
}

// RunPublishSweep calls the sweeper every interval until ctx is done. The api
// process runs it too when the queue is disabled.
func RunPublishSweep(ctx context.Context, sweeper PublishSweeper, interval time.Duration) {
	if sweeper == nil {
		return
	}
	if interval <= 0 {
		interval = defaultPublishSweepInterval
	}
	since := time.Now().UTC().Add(-interval)
	runOnce := func() {
		count, next, err := sweeper.SweepPublished(since)
		if err != nil {
			logger.Warnw("worker_publish_sweep_failed", "since", since, "error", err)
			return
		}
		if count > 0 {
			logger.Debugw("worker_publish_sweep_done", "published", count, "until", next)
		}
		since = next
	}
	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

func sweepInterval(cfg config.ContentConfig) time.Duration {
	if cfg.PublishSweepIntervalSecs <= 0 {
		return defaultPublishSweepInterval
	}
	return time.Duration(cfg.PublishSweepIntervalSecs) * time.Second
}
