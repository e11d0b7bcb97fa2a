package party

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/party-rsvp-backend/internal/apperror"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// GetParty godoc
// @Summary  Active party
// @Tags     party
// @Produce  json
// @Success  200 {object} Response
// @Router   /api/party [get]
func (h *Handler) GetParty(c *gin.Context) {
	p, err := h.Service.GetActive(c.Request.Context())
	if err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": "failed to load party"})
		return
	}
	c.JSON(http.StatusOK, p.Public(h.Service.Now()))
}

// GetStats godoc
// @Summary  Attendance statistics for the active party
// @Tags     party
// @Produce  json
// @Success  200 {object} Stats
// @Failure  404 {object} map[string]string
// @Router   /api/party/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.Service.GetStats(c.Request.Context())
	if err != nil {
		status := apperror.Status(err)
		msg := "failed to compute stats"
		if status == http.StatusNotFound {
			msg = "Party not found"
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, stats)
}
