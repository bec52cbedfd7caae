package app

import (
	"context"
	"time"

	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/worker"
)

// SweepService runs the scheduled publish sweep inside the api process
type SweepService struct {
	sweeper  worker.PublishSweeper
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewSweepService creates the sweep service
func NewSweepService(sweeper worker.PublishSweeper, contentCfg config.ContentConfig) *SweepService {
	ctx, cancel := context.WithCancel(context.Background())
	return &SweepService{
		sweeper:  sweeper,
		interval: time.Duration(contentCfg.PublishSweepIntervalSecs) * time.Second,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Name service name
func (s *SweepService) Name() string {
	return "publish_sweep"
}

// Start blocks until ctx is done or Stop is called
func (s *SweepService) Start(ctx context.Context) error {
	defer close(s.done)
	stop := context.AfterFunc(ctx, s.cancel)
	defer stop()
	worker.RunPublishSweep(s.ctx, s.sweeper, s.interval)
	return nil
}

// Stop cancels the loop and waits for it to return
func (s *SweepService) Stop(ctx context.Context) error {
	s.cancel()
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
