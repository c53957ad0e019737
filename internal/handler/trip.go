package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"corporate/internal/domain"
	"corporate/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// StoreDetailData is the store branding of a corporate sender.
type StoreDetailData struct {
	StoreFavIcon          string `json:"storeFavIcon"`
	StoreAliasName        string `json:"storeAliasName" binding:"required"`
	StoreImage            string `json:"storeImage"`
	StoreFullName         string `json:"storeFullName" binding:"required"`
	StoreOrderID          string `json:"storeOrderId"`
	StorePhone            string `json:"storePhone"`
	StoreCountryPhoneCode string `json:"storeCountryPhoneCode"`
}

// TripProductData is one product on a delivery trip.
type TripProductData struct {
	Name         string   `json:"name" binding:"required"`
	Image        string   `json:"image"`
	Price        *float64 `json:"price" binding:"omitempty,gte=0"`
	Quantity     int      `json:"quantity" binding:"required,gt=0"`
	CurrencyCode string   `json:"currency_code" binding:"omitempty,oneof=BS USD"`
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	PayerID            string            `json:"payerId" binding:"required"`
	PaymentMode        int               `json:"paymentMode" binding:"required"`
	QuotationID        string            `json:"quotationId" binding:"required"`
	StoreDetail        *StoreDetailData  `json:"storeDetail"`
	TripProducts       []TripProductData `json:"tripProducts"`
	ServiceTypeID      string            `json:"serviceTypeId" binding:"required"`
	SourceAddress      string            `json:"sourceAddress" binding:"required"`
	DestinationAddress string            `json:"destinationAddress" binding:"required"`
	PartnerOrderID     string            `json:"partnerOrderId"`

	UserFirstName        string `json:"user_first_name"`
	UserLastName         string `json:"user_last_name"`
	UserCountryPhoneCode string `json:"user_country_phone_code"`
	UserPhoneNumber      string `json:"user_phone_number"`

	ReceiverFirstName        string `json:"receiver_first_name" binding:"required"`
	ReceiverLastName         string `json:"receiver_last_name" binding:"required"`
	ReceiverCountryPhoneCode string `json:"receiver_country_phone_code" binding:"required"`
	ReceiverPhoneNumber      string `json:"receiver_phone_number" binding:"required"`
	ReceiverPicture          string `json:"receiverPicture"`

	TripSource      string   `json:"tripSource"`
	TotalOrderPrice *float64 `json:"totalOrderPrice" binding:"omitempty,gte=0"`
	CashCollected   *float64 `json:"cashCollected" binding:"omitempty,gte=0"`
	TipAmount       *float64 `json:"tipAmount" binding:"omitempty,gte=0"`
}

// CreateTripResponseData is the payload of a successful trip creation.
type CreateTripResponseData struct {
	Message      string `json:"message"`
	Success      bool   `json:"success"`
	TripID       string `json:"trip_id"`
	TripUniqueID int    `json:"trip_unique_id"`
}

// CreateTrip handles POST /api/v1/trip/api-corporate
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var storeDetail *service.StoreDetail
	if req.StoreDetail != nil {
		storeDetail = &service.StoreDetail{
			FullName:         req.StoreDetail.StoreFullName,
			Alias:            req.StoreDetail.StoreAliasName,
			Image:            req.StoreDetail.StoreImage,
			FavIcon:          req.StoreDetail.StoreFavIcon,
			Phone:            req.StoreDetail.StorePhone,
			PhoneCountryCode: req.StoreDetail.StoreCountryPhoneCode,
		}
	}

	var products []domain.TripProduct
	for _, p := range req.TripProducts {
		products = append(products, domain.TripProduct{
			Name:         p.Name,
			Image:        p.Image,
			Price:        p.Price,
			Quantity:     p.Quantity,
			CurrencyCode: domain.Currency(p.CurrencyCode),
		})
	}

	result, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		PayerID:            req.PayerID,
		PaymentMode:        domain.PaymentMode(req.PaymentMode),
		QuotationID:        req.QuotationID,
		ServiceTypeID:      req.ServiceTypeID,
		OrderID:            req.PartnerOrderID,
		SourceAddress:      req.SourceAddress,
		DestinationAddress: req.DestinationAddress,

		UserFirstName:        req.UserFirstName,
		UserLastName:         req.UserLastName,
		UserPhoneCountryCode: req.UserCountryPhoneCode,
		UserPhoneNumber:      req.UserPhoneNumber,
		StoreDetail:          storeDetail,

		ReceiverFirstName:        req.ReceiverFirstName,
		ReceiverLastName:         req.ReceiverLastName,
		ReceiverPhoneCountryCode: req.ReceiverCountryPhoneCode,
		ReceiverPhoneNumber:      req.ReceiverPhoneNumber,

		TripSource:      req.TripSource,
		Products:        products,
		TotalOrderPrice: req.TotalOrderPrice,
		CashCollected:   req.CashCollected,
		TipAmount:       req.TipAmount,
	})
	if err != nil {
		respondError(c, err, req)
		return
	}

	respondEnvelope(c, "9", http.StatusCreated, CreateTripResponseData{
		Message:      "Viaje creado correctamente",
		Success:      true,
		TripID:       result.Trip.ID,
		TripUniqueID: result.UniqueID,
	})
}

// TripStatusData is the status view of a trip.
type TripStatusData struct {
	ID         string `json:"_id"`
	UniqueID   int    `json:"unique_id"`
	StatusCode int    `json:"statusCode"`
	StatusText string `json:"statusText"`
}

// GetStatusResponseData is the payload of a successful status lookup.
type GetStatusResponseData struct {
	Message string         `json:"message"`
	Success bool           `json:"success"`
	Trip    TripStatusData `json:"trip"`
}

// GetStatus handles GET /api/v1/trip/api-status-by-corporate/:id
func (h *TripHandler) GetStatus(c *gin.Context) {
	status, err := h.tripService.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	respondEnvelope(c, "10", http.StatusOK, GetStatusResponseData{
		Message: "Status del viaje obtenido con éxito",
		Success: true,
		Trip: TripStatusData{
			ID:         status.Trip.ID,
			UniqueID:   status.UniqueID,
			StatusCode: status.StatusCode,
			StatusText: status.StatusText,
		},
	})
}

// CancelTripRequest is the HTTP request body for cancelling a trip.
type CancelTripRequest struct {
	TripID       string `json:"tripId" binding:"required"`
	CancelReason string `json:"cancelReason"`
}

// CancelTripResponseData is the payload of a successful cancellation.
type CancelTripResponseData struct {
	Message       string `json:"message"`
	Success       bool   `json:"success"`
	PaymentMethod int    `json:"paymentMethod"`
	PaymentStatus int    `json:"paymentStatus"`
}

// CancelTrip handles POST /api/v1/trip/external-cancel-trip
func (h *TripHandler) CancelTrip(c *gin.Context) {
	var req CancelTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.tripService.Cancel(c.Request.Context(), req.TripID, req.CancelReason)
	if err != nil {
		respondError(c, err, req)
		return
	}

	respondEnvelope(c, "11", http.StatusOK, CancelTripResponseData{
		Message:       "Tu viaje ha sido cancelado exitosamente",
		Success:       true,
		PaymentMethod: result.PaymentMethod,
		PaymentStatus: result.PaymentStatus,
	})
}

// ForceCompleteRequest is the HTTP request body for force-completing a trip.
type ForceCompleteRequest struct {
	TripID   string `json:"tripId" binding:"required"`
	ForceB2B bool   `json:"forceB2B"`
}

// ForceCompleteResponseData is the payload of a successful forced completion.
type ForceCompleteResponseData struct {
	Message       string `json:"message"`
	Success       bool   `json:"success"`
	PaymentStatus int    `json:"paymentStatus"`
}

// ForceComplete handles POST /api/v1/payment-trip/pay-payment-b2b
func (h *TripHandler) ForceComplete(c *gin.Context) {
	var req ForceCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.tripService.ForceComplete(c.Request.Context(), req.TripID, req.ForceB2B)
	if err != nil {
		respondError(c, err, req)
		return
	}

	respondEnvelope(c, "", http.StatusOK, ForceCompleteResponseData{
		Message:       "Tu viaje ha sido completado correctamente",
		Success:       true,
		PaymentStatus: result.PaymentStatus,
	})
}
