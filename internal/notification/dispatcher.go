package notification

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/tomb.v2"
)

// Dispatcher is the in-memory Queue: a buffered channel drained by one
// worker goroutine owned by a tomb.
type Dispatcher struct {
	jobs      chan Job
	deliverer Deliverer
	log       zerolog.Logger

	t       tomb.Tomb
	mu      sync.RWMutex
	started bool
	stopped bool
}

func NewDispatcher(d Deliverer, size int, logger zerolog.Logger) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	return &Dispatcher{
		jobs:      make(chan Job, size),
		deliverer: d,
		log:       logger.With().Str("component", "notify-dispatcher").Logger(),
	}
}

func (d *Dispatcher) Name() string { return "memory" }

func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true
	d.t.Go(d.run)
}

// Enqueue drops the job when the buffer is full.
func (d *Dispatcher) Enqueue(_ context.Context, job Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrQueueClosed
	}
	select {
	case d.jobs <- job:
		return nil
	default:
		d.log.Warn().Uint("party_id", job.PartyID).Str("guest", job.GuestName).Msg("notification dropped, queue full")
		return ErrQueueFull
	}
}

// Stop refuses new jobs, delivers whatever is buffered and waits for the worker.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	started := d.started
	d.mu.Unlock()

	if !started {
		return nil
	}
	d.t.Kill(nil)
	return d.t.Wait()
}

func (d *Dispatcher) run() error {
	for {
		select {
		case job := <-d.jobs:
			d.deliver(job)
		case <-d.t.Dying():
			for {
				select {
				case job := <-d.jobs:
					d.deliver(job)
				default:
					return nil
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(job Job) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Str("panic", fmt.Sprint(r)).Uint("party_id", job.PartyID).Msg("notification worker recovered")
		}
	}()

	// Transport timeouts belong to the mail client.
	if err := d.deliverer.Deliver(context.Background(), job); err != nil {
		d.log.Error().Err(err).Uint("party_id", job.PartyID).Str("guest", job.GuestName).Msg("notification delivery failed")
	}
}
