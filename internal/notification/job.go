package notification

import (
	"context"
	"errors"
	"time"
)

var (
	ErrQueueFull   = errors.New("notification queue is full")
	ErrQueueClosed = errors.New("notification queue is closed")
)

// Job asks the worker to mail the current roster of a party. The roster
// itself is loaded at delivery time.
type Job struct {
	PartyID          uint      `json:"party_id"`
	GuestName        string    `json:"guest_name"`
	ConfirmationCode string    `json:"confirmation_code"`
	EnqueuedAt       time.Time `json:"enqueued_at"`
}

// Deliverer turns a job into an email.
type Deliverer interface {
	Deliver(ctx context.Context, job Job) error
}

// Queue hands jobs to a background worker. Enqueue must never block the caller.
type Queue interface {
	Name() string
	Enqueue(ctx context.Context, job Job) error
	Start()
	Stop() error
}
