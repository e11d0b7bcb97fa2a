package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDeliverer struct {
	mu      sync.Mutex
	jobs    []Job
	block   chan struct{}
	err     error
	started chan struct{}
	// set when any delivery context carried a deadline
	deadline bool
}

func (d *recordingDeliverer) Deliver(ctx context.Context, job Job) error {
	if d.started != nil {
		select {
		case d.started <- struct{}{}:
		default:
		}
	}
	if d.block != nil {
		<-d.block
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := ctx.Deadline(); ok {
		d.deadline = true
	}
	d.jobs = append(d.jobs, job)
	return d.err
}

func (d *recordingDeliverer) names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.jobs))
	for _, j := range d.jobs {
		out = append(out, j.GuestName)
	}
	return out
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	d := &recordingDeliverer{}
	q := NewDispatcher(d, 10, zerolog.Nop())
	q.Start()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(context.Background(), Job{PartyID: 1, GuestName: name}))
	}

	assert.Eventually(t, func() bool { return len(d.names()) == 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, q.Stop())
	assert.Equal(t, []string{"a", "b", "c"}, d.names())
}

func TestDispatcherDeliversWithoutDeadline(t *testing.T) {
	d := &recordingDeliverer{}
	q := NewDispatcher(d, 10, zerolog.Nop())
	q.Start()

	require.NoError(t, q.Enqueue(context.Background(), Job{PartyID: 1, GuestName: "slow-smtp"}))
	assert.Eventually(t, func() bool { return len(d.names()) == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, q.Stop())

	d.mu.Lock()
	defer d.mu.Unlock()
	assert.False(t, d.deadline)
}

func TestDispatcherStopDrainsPendingJobs(t *testing.T) {
	d := &recordingDeliverer{block: make(chan struct{}), started: make(chan struct{}, 1)}
	q := NewDispatcher(d, 10, zerolog.Nop())
	q.Start()

	require.NoError(t, q.Enqueue(context.Background(), Job{GuestName: "first"}))
	<-d.started
	require.NoError(t, q.Enqueue(context.Background(), Job{GuestName: "second"}))
	require.NoError(t, q.Enqueue(context.Background(), Job{GuestName: "third"}))

	done := make(chan error, 1)
	go func() { done <- q.Stop() }()
	close(d.block)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	assert.Equal(t, []string{"first", "second", "third"}, d.names())

	assert.ErrorIs(t, q.Enqueue(context.Background(), Job{GuestName: "late"}), ErrQueueClosed)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	d := &recordingDeliverer{block: make(chan struct{}), started: make(chan struct{}, 1)}
	q := NewDispatcher(d, 1, zerolog.Nop())
	q.Start()

	require.NoError(t, q.Enqueue(context.Background(), Job{GuestName: "in-flight"}))
	<-d.started
	require.NoError(t, q.Enqueue(context.Background(), Job{GuestName: "buffered"}))
	assert.ErrorIs(t, q.Enqueue(context.Background(), Job{GuestName: "dropped"}), ErrQueueFull)

	close(d.block)
	require.NoError(t, q.Stop())
	assert.Equal(t, []string{"in-flight", "buffered"}, d.names())
}

func TestDispatcherSurvivesDeliveryErrors(t *testing.T) {
	d := &recordingDeliverer{err: errors.New("smtp down")}
	q := NewDispatcher(d, 4, zerolog.Nop())
	q.Start()

	require.NoError(t, q.Enqueue(context.Background(), Job{GuestName: "a"}))
	require.NoError(t, q.Enqueue(context.Background(), Job{GuestName: "b"}))
	require.NoError(t, q.Stop())
	assert.Equal(t, []string{"a", "b"}, d.names())
}

func TestDispatcherStopWithoutStart(t *testing.T) {
	q := NewDispatcher(&recordingDeliverer{}, 1, zerolog.Nop())
	assert.NoError(t, q.Stop())
	assert.NoError(t, q.Stop())
}
