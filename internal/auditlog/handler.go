package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetAuditLogs handles GET /api/audit-logs
// @Summary Recent audit log entries
// @Description Newest first. limit defaults to 50 and is capped at 200.
// @Tags AuditLog
// @Produce json
// @Param action query string false "Filter by action, e.g. RSVP_SUBMITTED"
// @Param status query string false "Filter by status (success/failure)"
// @Param limit query int false "Number of records (default: 50)"
// @Success 200 {array} AuditLog
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/audit-logs [get]
func (h *Handler) GetAuditLogs(c *gin.Context) {
	filter := AuditLogFilter{
		Action: c.Query("action"),
		Status: c.Query("status"),
		Limit:  DefaultLimit,
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		filter.Limit = limit
	}

	logs, err := h.service.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve audit logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}
