package livefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestChannel(t *testing.T) {
	assert.Equal(t, "party:7:guests", Channel(7))
}

func TestNilClientPublisherIsNoop(t *testing.T) {
	p := NewPublisher(nil, zerolog.Nop())
	assert.NotPanics(t, func() {
		p.Publish(context.Background(), 1, Event{Type: EventCreated})
	})
}

func TestStreamWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/stream", NewHandler(nil, nil).Stream)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stream", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Live feed is not configured")
}
