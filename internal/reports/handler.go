package reports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/party-rsvp-backend/internal/apperror"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ExportGuests godoc
// @Summary  Download the guest list
// @Tags     guests
// @Produce  octet-stream
// @Param    format query string false "csv (default), excel or pdf"
// @Success  200 {file} file
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Router   /api/guests/export [get]
func (h *Handler) ExportGuests(c *gin.Context) {
	data, fname, mime, err := h.service.ExportGuests(c.Request.Context(), c.DefaultQuery("format", FormatCSV))
	if err != nil {
		c.JSON(apperror.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fname))
	c.Data(http.StatusOK, mime, data)
}
