// Package engine serializes every balance-affecting mutation. Each action
// runs inside one database transaction: the touched account row is locked,
// validations run against the locked state, and the balance and ledger
// writes commit together or not at all.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carson-networks/finance-server/internal/metrics"
	"github.com/carson-networks/finance-server/internal/storage"
)

const queueSize = 1000

// IAction is one unit of ledger work performed against a transactional
// Writer. Perform must not commit or roll back; the engine owns that.
type IAction interface {
	Name() string
	Perform(ctx context.Context, writer *storage.Writer) error
}

// IStorage hands out transactional writers.
type IStorage interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Engine manages the queue, starts and stops the workers, and enqueues
// actions on behalf of callers.
type Engine struct {
	storage    IStorage
	collector  *metrics.Collector
	queue      chan actionItem
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

func NewEngine(s IStorage, numWorkers int, collector *metrics.Collector) *Engine {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Engine{
		storage:    s,
		collector:  collector,
		queue:      make(chan actionItem, queueSize),
		numWorkers: numWorkers,
	}
}

func (e *Engine) Start() {
	for i := 0; i < e.numWorkers; i++ {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.run()
		}()
	}
}

func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.queue)
		e.wg.Wait()
	})
}

// Process enqueues the action and blocks until a worker has committed or
// aborted it. Once a commit is requested it runs to completion even if the
// caller's context expires while waiting.
func (e *Engine) Process(ctx context.Context, action IAction) error {
	respCh := make(chan error, 1)
	item := actionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	e.queue <- item
	e.collector.SetQueueDepth(len(e.queue))

	select {
	case err := <-respCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type actionItem struct {
	ctx      context.Context
	action   IAction
	response chan error
}

// run drains the queue until it is closed.
func (e *Engine) run() {
	for item := range e.queue {
		start := time.Now()
		err := e.processItem(item)
		e.collector.ObserveOperation(item.action.Name(), ResultLabel(err), time.Since(start))
		item.response <- err
	}
}

func (e *Engine) processItem(item actionItem) error {
	writer, err := e.storage.Write(item.ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := item.action.Perform(item.ctx, writer); err != nil {
		_ = writer.Rollback()
		return classify(err)
	}

	if err := writer.Commit(); err != nil {
		return classify(err)
	}

	return nil
}

// classify maps raw storage failures onto the taxonomy. Validation errors
// raised by actions already belong to it and pass through unchanged.
func classify(err error) error {
	if isTaxonomy(err) {
		return err
	}
	if storage.IsConflict(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
