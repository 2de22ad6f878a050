package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schedula/models"
	"schedula/services/scheduling"
	"schedula/utils"
)

// SchedulingHandler exposes the availability engine over HTTP.
type SchedulingHandler struct {
	Service scheduling.Service
}

// GetAvailability handles GET /api/availability?providerId=&serviceId=&date=.
func (h *SchedulingHandler) GetAvailability(c *gin.Context) {
	providerID := c.Query("providerId")
	serviceID := c.Query("serviceId")
	date := c.Query("date")
	if providerID == "" || serviceID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "providerId, serviceId and date are required")
		return
	}

	result, err := h.Service.GetAvailableSlots(c.Request.Context(), providerID, serviceID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// BookAppointment handles POST /api/appointments.
func (h *SchedulingHandler) BookAppointment(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.BookAppointment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// EditAppointment handles PUT /api/appointments/:id.
func (h *SchedulingHandler) EditAppointment(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.EditAppointment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelAppointment handles PUT /api/appointments/:id/cancel.
func (h *SchedulingHandler) CancelAppointment(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "cancellation reason is required")
		return
	}

	appt, err := h.Service.CancelAppointment(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// BlockTime handles POST /api/blocked-times.
func (h *SchedulingHandler) BlockTime(c *gin.Context) {
	var req models.BlockTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	block, err := h.Service.BlockTime(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

// CancelBlockedTime handles PUT /api/blocked-times/:id/cancel.
func (h *SchedulingHandler) CancelBlockedTime(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "cancellation reason is required")
		return
	}

	block, err := h.Service.CancelBlockedTime(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// DeleteBlockedTime handles DELETE /api/blocked-times/:id.
func (h *SchedulingHandler) DeleteBlockedTime(c *gin.Context) {
	if err := h.Service.DeleteBlockedTime(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
