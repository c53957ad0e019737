package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"corporate/internal/service"
)

// QuotationHandler handles HTTP requests for quotations.
type QuotationHandler struct {
	quotationService *service.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler.
func NewQuotationHandler(quotationService *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// CreateQuotationRequest is the HTTP request body for creating a quotation.
// Coordinates are pointers so that 0 is a valid, present value.
type CreateQuotationRequest struct {
	PickupLatitude       *float64 `json:"pickupLatitude" binding:"required,gte=-90,lte=90"`
	PickupLongitude      *float64 `json:"pickupLongitude" binding:"required,gte=-180,lte=180"`
	DestinationLatitude  *float64 `json:"destinationLatitude" binding:"required,gte=-90,lte=90"`
	DestinationLongitude *float64 `json:"destinationLongitude" binding:"required,gte=-180,lte=180"`
	Weight               *float64 `json:"weight" binding:"omitempty,gte=0"`
}

// QuotationServiceData is one priced service option in the response.
type QuotationServiceData struct {
	Name          string  `json:"name"`
	Typename      string  `json:"typename"`
	EstimatedFare float64 `json:"estimated_fare"`
	ServiceTypeID string  `json:"service_type_id"`
}

// CreateQuotationResponseData is the payload of a successful quotation.
type CreateQuotationResponseData struct {
	ETA          int                    `json:"eta"`
	Message      string                 `json:"message"`
	Success      bool                   `json:"success"`
	Distance     float64                `json:"distance"`
	QuotationID  string                 `json:"quotationId"`
	TripServices []QuotationServiceData `json:"trip_services"`
}

// CreateQuotation handles POST /api/v1/quotation/api-corporate
func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	var req CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), service.CreateQuotationRequest{
		PickupLat:      *req.PickupLatitude,
		PickupLng:      *req.PickupLongitude,
		DestinationLat: *req.DestinationLatitude,
		DestinationLng: *req.DestinationLongitude,
		Weight:         req.Weight,
	})
	if err != nil {
		respondError(c, err, req)
		return
	}

	services := make([]QuotationServiceData, 0, len(quotation.Services))
	for _, s := range quotation.Services {
		services = append(services, QuotationServiceData{
			Name:          s.Name,
			Typename:      s.Typename,
			EstimatedFare: s.EstimatedFare,
			ServiceTypeID: s.ServiceTypeID,
		})
	}

	respondEnvelope(c, "36", http.StatusCreated, CreateQuotationResponseData{
		ETA:          quotation.ETA,
		Message:      "Cotizacion realizada correctamente",
		Success:      true,
		Distance:     quotation.Distance,
		QuotationID:  quotation.ID,
		TripServices: services,
	})
}
