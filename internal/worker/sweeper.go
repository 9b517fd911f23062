package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/minhvn/solemart/internal/domain/model"
)

// StoreFacade exposes the subset of application functionality required by the sweeper.
type StoreFacade interface {
	ExpiredPending(ctx context.Context, limit int) ([]model.PendingOrder, error)
	DiscardPending(ctx context.Context, transactionRef string) error
}

// PendingSweeper discards abandoned pending orders concurrently. A pending
// order is abandoned when the customer never came back from the gateway, or
// came back declined, and its TTL has elapsed.
type PendingSweeper struct {
	facade        StoreFacade
	sweepInterval time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs   chan model.PendingOrder
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPendingSweeper constructs pending order sweeper worker pool.
func NewPendingSweeper(facade StoreFacade, sweepInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PendingSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PendingSweeper{
		facade:        facade,
		sweepInterval: sweepInterval,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan model.PendingOrder, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *PendingSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *PendingSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *PendingSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *PendingSweeper) fetchAndDispatch(ctx context.Context) {
	pendings, err := s.facade.ExpiredPending(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("fetch expired pending orders failed", slog.String("error", err.Error()))
		return
	}
	for _, pending := range pendings {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- pending:
		}
	}
}

func (s *PendingSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case pending, ok := <-s.jobs:
			if !ok {
				return
			}
			s.discard(ctx, pending)
		}
	}
}

func (s *PendingSweeper) discard(ctx context.Context, pending model.PendingOrder) {
	if err := s.facade.DiscardPending(ctx, pending.TransactionRef); err != nil {
		s.logger.Error("discard pending order failed",
			slog.String("transaction_ref", pending.TransactionRef),
			slog.String("error", err.Error()))
		return
	}
	s.logger.Info("pending order discarded",
		slog.String("transaction_ref", pending.TransactionRef),
		slog.Int64("user_id", pending.UserID))
}
