package maintenance

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	svc      *Service
	interval time.Duration
	log      *zap.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewScheduler(svc *Service, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		svc:      svc,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the stats reconciliation every interval until Stop or ctx cancellation.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("starting stats reconcile scheduler", zap.Duration("interval", s.interval))
	s.wg.Add(1)
	go s.runReconcile(ctx)
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.log.Info("stopping stats reconcile scheduler")
		close(s.stopCh)
	})
	s.wg.Wait()
}

func (s *Scheduler) runReconcile(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.svc.RecomputeAllStats(ctx); err != nil {
				s.log.Error("stats reconcile failed", zap.Error(err))
			}
		case <-s.stopCh:
			s.log.Info("stats reconcile stopped")
			return
		case <-ctx.Done():
			s.log.Info("stats reconcile cancelled")
			return
		}
	}
}

// RunOnceNow reconciles immediately, outside the ticker.
func (s *Scheduler) RunOnceNow(ctx context.Context) error {
	_, err := s.svc.RecomputeAllStats(ctx)
	return err
}
