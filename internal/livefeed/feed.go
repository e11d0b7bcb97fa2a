// Package livefeed fans guest-list changes out over Redis pub/sub.
package livefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Event types published on the guest channel.
const (
	EventCreated = "rsvp_created"
	EventUpdated = "guest_updated"
	EventDeleted = "guest_deleted"
	EventCleared = "guests_cleared"
)

type Event struct {
	Type             string    `json:"type"`
	ConfirmationCode string    `json:"confirmation_code,omitempty"`
	Name             string    `json:"name,omitempty"`
	Attending        string    `json:"attending,omitempty"`
	NumberOfGuests   int       `json:"number_of_guests,omitempty"`
	DeletedCount     int64     `json:"deleted_count,omitempty"`
	At               time.Time `json:"at"`
}

// Channel is the Redis channel carrying a party's guest events.
func Channel(partyID uint) string {
	return fmt.Sprintf("party:%d:guests", partyID)
}

// Publisher is best effort: failures are logged and never reach the caller.
type Publisher interface {
	Publish(ctx context.Context, partyID uint, ev Event)
}

// NewPublisher returns a Redis publisher, or a no-op one when client is nil.
func NewPublisher(client *redis.Client, logger zerolog.Logger) Publisher {
	if client == nil {
		return noopPublisher{}
	}
	return &redisPublisher{
		client: client,
		log:    logger.With().Str("component", "livefeed").Logger(),
	}
}

type redisPublisher struct {
	client *redis.Client
	log    zerolog.Logger
}

func (p *redisPublisher) Publish(ctx context.Context, partyID uint, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error().Err(err).Str("type", ev.Type).Msg("encode live event")
		return
	}
	if err := p.client.Publish(ctx, Channel(partyID), payload).Err(); err != nil {
		p.log.Warn().Err(err).Str("type", ev.Type).Msg("publish live event failed")
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, uint, Event) {}
