package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sirpyerre/social-network/internal/core/ports"
	"github.com/Sirpyerre/social-network/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	releaseTimeout = 10 * time.Second
)

// Dispatcher removes released media files in the background. References are
// routed to a fixed set of workers by hashing the reference, so repeated
// releases of the same file are handled in order by one worker.
type Dispatcher struct {
	workers []chan string
	store   ports.MediaStore
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.MediaStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Cancelling ctx does not abort removals
// already queued; call Close to drain and stop the workers.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(context.WithoutCancel(ctx), i, ch)
	}
}

// Release schedules ref for removal. It never blocks: when the worker's
// buffer is full, or the dispatcher is closed, the reference is dropped and
// the file is left behind.
func (d *Dispatcher) Release(ref string) {
	if ref == "" {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.MediaReleaseTotal.WithLabelValues("dropped").Inc()
		return
	}

	idx := d.shardIndex(ref)
	select {
	case d.workers[idx] <- ref:
		metrics.MediaReleaseQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.MediaReleaseTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("ref", ref).Int("worker_id", idx).Msg("media release queue full, dropping")
	}
}

// Close stops accepting releases and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps a reference deterministically to a worker index.
func (d *Dispatcher) shardIndex(ref string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ref))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	defer d.wg.Done()
	depth := metrics.MediaReleaseQueueDepth.WithLabelValues(strconv.Itoa(id))

	for ref := range ch {
		depth.Dec()

		jobCtx, cancel := context.WithTimeout(ctx, releaseTimeout)
		err := d.store.Delete(jobCtx, ref)
		cancel()

		if err != nil {
			metrics.MediaReleaseTotal.WithLabelValues("failed").Inc()
			d.log.Error().Err(err).
				Str("ref", ref).
				Int("worker_id", id).
				Msg("media release failed")
			continue
		}
		metrics.MediaReleaseTotal.WithLabelValues("deleted").Inc()
	}
}
