package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"corporate/internal/domain"
	"corporate/internal/service"
)

// reassignMessage is the free-text message forwarded on reassignment.
const reassignMessage = "your trip is being reassigned"

// WebhookHandler drives trip mutations that must be forwarded to the
// partner webhook: driver progress updates, cancellations and driver
// reassignments. The mutation commits first; delivery is best-effort and a
// failure surfaces as a server error without rolling the trip back.
type WebhookHandler struct {
	tripService    *service.TripService
	webhookService *service.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(tripService *service.TripService, webhookService *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		tripService:    tripService,
		webhookService: webhookService,
	}
}

// WebhookCallResponse reports the outcome of a webhook delivery.
type WebhookCallResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UpdateTripStatus handles POST /webhook/trip/:id/status?status_code=N
func (h *WebhookHandler) UpdateTripStatus(c *gin.Context) {
	code, err := strconv.Atoi(c.Query("status_code"))
	if err != nil {
		respondError(c, service.ErrInvalidTripStatus, nil)
		return
	}

	trip, err := h.tripService.UpdateStatus(c.Request.Context(), c.Param("id"), domain.TripStatus(code))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	if err := h.webhookService.Notify(c.Request.Context(), service.WebhookTripUpdate, service.TripSnapshot(trip)); err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, WebhookCallResponse{Success: true, Message: "Webhook sent successfully"})
}

// CancelTripRequestBody is the optional body for a webhook cancellation.
type CancelTripRequestBody struct {
	CancelReason string `json:"cancelReason"`
}

// CancelTrip handles POST /webhook/trip/:id/cancel?by_admin=bool
func (h *WebhookHandler) CancelTrip(c *gin.Context) {
	byAdmin := c.Query("by_admin") == "true"

	var body CancelTripRequestBody
	_ = c.ShouldBindJSON(&body)

	result, err := h.tripService.Cancel(c.Request.Context(), c.Param("id"), body.CancelReason)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	if err := h.webhookService.Notify(c.Request.Context(), service.CancelEvent(byAdmin), service.TripSnapshot(result.Trip)); err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, WebhookCallResponse{Success: true, Message: "Webhook sent successfully"})
}

// ReassignTrip handles POST /webhook/trip/:id/reassign?by_admin=bool
func (h *WebhookHandler) ReassignTrip(c *gin.Context) {
	byAdmin := c.Query("by_admin") == "true"

	trip, err := h.tripService.ReassignDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	data := service.TripSnapshot(trip)
	data.Message = reassignMessage
	if byAdmin {
		flag := true
		data.ReassignmentByAdmin = &flag
	}

	if err := h.webhookService.Notify(c.Request.Context(), service.ReassignEvent(byAdmin), data); err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, WebhookCallResponse{Success: true, Message: "Webhook sent successfully"})
}

// Test handles POST /webhook/test. It delivers the given payload as-is so
// partners can verify their endpoint configuration.
func (h *WebhookHandler) Test(c *gin.Context) {
	var payload service.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.webhookService.Notify(c.Request.Context(), payload.Type, payload.Data); err != nil {
		respondError(c, err, payload)
		return
	}

	c.JSON(http.StatusOK, WebhookCallResponse{Success: true, Message: "Webhook test successful"})
}
