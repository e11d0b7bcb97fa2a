package rsvp

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/sharath018/party-rsvp-backend/internal/apperror"
	"github.com/sharath018/party-rsvp-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// writeError renders err as {"error": msg}, adding the existing code for duplicates.
func writeError(c *gin.Context, err error) {
	var conflict *apperror.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             conflict.Message,
			"confirmation_code": conflict.ConfirmationCode,
		})
		return
	}
	c.JSON(apperror.Status(err), gin.H{"error": err.Error()})
}

// bindError maps gin binding failures onto the API's validation messages.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) || errors.Is(err, io.EOF) {
		return apperror.Validation("Missing required fields")
	}
	return apperror.Validation("Invalid request body: " + err.Error())
}

// ===========================
// 🎯 Submit RSVP - POST /api/rsvp
// @Summary  Submit an RSVP for the active party
// @Tags     rsvp
// @Accept   json
// @Produce  json
// @Param    body body SubmitRequest true "RSVP"
// @Success  201 {object} SubmitResponse
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Failure  500 {object} map[string]string
// @Router   /api/rsvp [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	rsvp, err := h.Service.Submit(c.Request.Context(), req, middleware.GetIPFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubmitResponse{
		Message:          "RSVP submitted successfully",
		ConfirmationCode: rsvp.ConfirmationCode,
	})
}

// ===========================
// 🔍 Get RSVP - GET /api/rsvp/:code
// @Summary  Look up an RSVP by confirmation code
// @Tags     rsvp
// @Produce  json
// @Param    code path string true "Confirmation code"
// @Success  200 {object} LookupResponse
// @Failure  404 {object} map[string]string
// @Router   /api/rsvp/{code} [get]
func (h *Handler) GetByCode(c *gin.Context) {
	rsvp, p, err := h.Service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, LookupResponse{RSVP: rsvp, Party: p.Public(h.Service.Now())})
}

// ===========================
// 📃 List guests - GET /api/guests
// @Summary  Guest list of the active party, newest first
// @Tags     guests
// @Produce  json
// @Success  200 {array} RSVP
// @Failure  404 {object} map[string]string
// @Router   /api/guests [get]
func (h *Handler) List(c *gin.Context) {
	rsvps, err := h.Service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rsvps)
}

// ===========================
// 🔄 Update guest - PUT /api/guest/:code
// @Summary  Update a guest's name and/or phone
// @Tags     guests
// @Accept   json
// @Produce  json
// @Param    code path string true "Confirmation code"
// @Param    body body UpdateRequest true "Fields to change"
// @Success  200 {object} map[string]interface{}
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Router   /api/guest/{code} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, apperror.Validation("Invalid request body: "+err.Error()))
		return
	}

	rsvp, err := h.Service.Update(c.Request.Context(), c.Param("code"), req, middleware.GetIPFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Guest updated successfully", "rsvp": rsvp})
}

// ===========================
// 🗑️ Delete guest - DELETE /api/guest/:code
// @Summary  Remove a guest by confirmation code
// @Tags     guests
// @Produce  json
// @Param    code path string true "Confirmation code"
// @Success  200 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Router   /api/guest/{code} [delete]
func (h *Handler) Delete(c *gin.Context) {
	name, err := h.Service.Delete(c.Request.Context(), c.Param("code"), middleware.GetIPFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Guest deleted successfully", "name": name})
}

// ===========================
// 🧹 Clear guests - DELETE /api/clear-guests
// @Summary  Delete every RSVP of the active party
// @Tags     guests
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Failure  404 {object} map[string]string
// @Router   /api/clear-guests [delete]
func (h *Handler) Clear(c *gin.Context) {
	n, err := h.Service.Clear(c.Request.Context(), middleware.GetIPFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All guests cleared successfully", "deleted_count": n})
}
