package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/minhvn/solemart/internal/domain/model"
	testhelpers "github.com/minhvn/solemart/internal/test"
)

func TestNewPendingSweeperDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sweeper := NewPendingSweeper(&testhelpers.WorkerFacadeStub{}, time.Second, 0, 0, logger)
	if sweeper.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", sweeper.batchSize)
	}
	if sweeper.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", sweeper.workers)
	}
}

func TestPendingSweeperDiscardsExpired(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WorkerFacadeStub{Batches: [][]model.PendingOrder{
		{{TransactionRef: "ref-1", UserID: 7}, {TransactionRef: "ref-2", UserID: 8}},
	}}
	sweeper := NewPendingSweeper(facade, 10*time.Millisecond, 2, 2, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		done := len(facade.Discarded) >= 2
		facade.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for sweep")
		case <-time.After(10 * time.Millisecond):
		}
	}

	sweeper.Stop()
	facade.Lock()
	defer facade.Unlock()
	seen := map[string]bool{}
	for _, ref := range facade.Discarded {
		seen[ref] = true
	}
	if !seen["ref-1"] || !seen["ref-2"] {
		t.Fatalf("expected both pendings discarded, got %v", facade.Discarded)
	}
}

func TestPendingSweeperSurvivesDiscardErrors(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	calls := make(chan string, 4)
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.PendingOrder{
			{{TransactionRef: "ref-1"}},
			{{TransactionRef: "ref-2"}},
		},
		DiscardFn: func(ctx context.Context, ref string) error {
			calls <- ref
			if ref == "ref-1" {
				return errors.New("storage down")
			}
			return nil
		},
	}
	sweeper := NewPendingSweeper(facade, 5*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(time.Second)
	seen := map[string]bool{}
	for len(seen) < 2 {
		select {
		case ref := <-calls:
			seen[ref] = true
		case <-deadline:
			t.Fatalf("timeout, saw %v", seen)
		}
	}
	sweeper.Stop()
}
