package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jagoron-news/internal/config"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) SweepPublished(since time.Time) (int, time.Time, error) {
	s.calls.Add(1)
	return 0, time.Now().UTC(), nil
}

func TestSweepServiceRunsUntilStopped(t *testing.T) {
	sweeper := &countingSweeper{}
	svc := NewSweepService(sweeper, config.ContentConfig{PublishSweepIntervalSecs: 1})

	errCh := make(chan error, 1)
	go func() { errCh <- svc.Start(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for sweeper.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if sweeper.calls.Load() == 0 {
		t.Fatalf("sweep should run once on start")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := svc.Stop(stopCtx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("start returned error: %v", err)
	}
}

func TestBuildRunnerRejectsWorkerWithoutQueue(t *testing.T) {
	cfg := &config.Config{}
	if _, err := BuildRunner(cfg, ModeWorker); err == nil {
		t.Fatalf("worker mode without queue should fail")
	}
	if _, err := BuildRunner(cfg, "cron"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}
