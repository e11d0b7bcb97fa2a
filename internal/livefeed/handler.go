package livefeed

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/sharath018/party-rsvp-backend/internal/apperror"
	"github.com/sharath018/party-rsvp-backend/internal/party"
)

const keepAliveInterval = 25 * time.Second

// PartyFinder resolves the active party.
type PartyFinder interface {
	FindActive(ctx context.Context) (*party.Party, error)
}

type Handler struct {
	client  *redis.Client
	parties PartyFinder
}

func NewHandler(client *redis.Client, parties PartyFinder) *Handler {
	return &Handler{client: client, parties: parties}
}

// Stream godoc
// @Summary  Server-sent events for guest list changes
// @Tags     guests
// @Produce  text/event-stream
// @Failure  404 {object} map[string]string
// @Failure  503 {object} map[string]string
// @Router   /api/guests/stream [get]
func (h *Handler) Stream(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live feed is not configured"})
		return
	}

	p, err := h.parties.FindActive(c.Request.Context())
	if err != nil {
		status := apperror.Status(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}

	sub := h.client.Subscribe(c.Request.Context(), Channel(p.ID))
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = c.Writer.Write([]byte("event: guests\n"))
			_, _ = c.Writer.Write([]byte("data: " + msg.Payload + "\n\n"))
			flusher.Flush()
		case <-ticker.C:
			_, _ = c.Writer.Write([]byte(":keepalive\n\n"))
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
