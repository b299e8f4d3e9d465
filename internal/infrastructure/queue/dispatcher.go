package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
	"github.com/sweetshop/sweet-shop-manager/internal/core/ports"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 256
)

// Dispatcher routes stock movements to a fixed set of workers using
// consistent hashing on the sweet ID, so movements of one sweet are stored
// in the order they were enqueued.
type Dispatcher struct {
	workers []chan domain.StockMovement
	service ports.MovementService
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers, each
// with a queue of buffer entries. Non-positive values use the defaults.
func NewDispatcher(numWorkers, buffer int, service ports.MovementService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		workers: make([]chan domain.StockMovement, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.StockMovement, buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers persist with ctx and exit
// once Stop has closed their queues and they have drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues a movement without blocking. When the worker's queue is
// full, or the dispatcher is stopped, the movement is dropped and logged.
func (d *Dispatcher) Record(m domain.StockMovement) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		d.log.Warn().Str("sweet_id", m.SweetID).Str("kind", string(m.Kind)).Msg("dispatcher stopped, movement dropped")
		return
	}

	select {
	case d.workers[d.shardIndex(m.SweetID)] <- m:
	default:
		d.log.Warn().Str("sweet_id", m.SweetID).Str("kind", string(m.Kind)).Msg("movement queue full, movement dropped")
	}
}

// Stop closes every queue and waits for the workers to drain them, or for
// ctx to expire.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a sweet ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(sweetID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sweetID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.StockMovement) {
	defer d.wg.Done()
	for m := range ch {
		if err := d.service.Record(ctx, m); err != nil {
			d.log.Error().Err(err).
				Str("sweet_id", m.SweetID).
				Str("kind", string(m.Kind)).
				Int("worker_id", id).
				Msg("movement recording failed")
		}
	}
}
