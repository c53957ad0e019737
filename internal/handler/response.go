package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"corporate/internal/service"
)

// Envelope is the partner-facing success wrapper: a response code, the
// operation payload and the HTTP status repeated in the body.
type Envelope struct {
	Code     string `json:"code,omitempty"`
	Response any    `json:"response"`
	Status   int    `json:"status"`
}

// respondEnvelope sends an enveloped success response.
func respondEnvelope(c *gin.Context, code string, status int, response any) {
	c.JSON(status, Envelope{Code: code, Response: response, Status: status})
}

// ErrorDetail carries the diagnostic body of an error response, including
// the original request body the partner sent.
type ErrorDetail struct {
	Name             string   `json:"name"`
	Path             string   `json:"path"`
	Type             string   `json:"type"`
	Stack            string   `json:"stack"`
	Method           string   `json:"method"`
	Message          string   `json:"message"`
	ReqBody          any      `json:"reqBody"`
	Success          bool     `json:"success"`
	Timestamp        string   `json:"timestamp"`
	ErrorDescription []string `json:"error_description"`
}

// ErrorEnvelope is the partner-facing error wrapper.
type ErrorEnvelope struct {
	ErrorCode string      `json:"error_code"`
	Status    int         `json:"status"`
	Response  ErrorDetail `json:"response"`
}

// respondError maps a service error to the partner error envelope. reqBody
// is echoed back for diagnostics; pass nil when there was no body.
func respondError(c *gin.Context, err error, reqBody any) {
	status, name, message := classifyError(err)
	if reqBody == nil {
		reqBody = gin.H{}
	}

	c.JSON(status, ErrorEnvelope{
		ErrorCode: http.StatusText(status),
		Status:    status,
		Response: ErrorDetail{
			Name:             name,
			Path:             c.Request.URL.Path,
			Type:             "error",
			Method:           c.Request.Method,
			Message:          message,
			ReqBody:          reqBody,
			Success:          false,
			Timestamp:        time.Now().UTC().Format(time.RFC3339),
			ErrorDescription: []string{message},
		},
	})
}

// respondBindError reports a malformed or invalid request body.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, ErrorEnvelope{
		ErrorCode: http.StatusText(http.StatusUnprocessableEntity),
		Status:    http.StatusUnprocessableEntity,
		Response: ErrorDetail{
			Name:             "ValidationError",
			Path:             c.Request.URL.Path,
			Type:             "error",
			Method:           c.Request.Method,
			Message:          "invalid request body",
			ReqBody:          gin.H{},
			Success:          false,
			Timestamp:        time.Now().UTC().Format(time.RFC3339),
			ErrorDescription: []string{err.Error()},
		},
	})
}

// classifyError maps service errors to an HTTP status, an error name and a
// partner-facing message.
func classifyError(err error) (status int, name, message string) {
	switch {
	case errors.Is(err, service.ErrQuotationNotFound):
		return http.StatusNotFound, "NotFoundError", "Quotation not found"
	case errors.Is(err, service.ErrTripNotFound):
		return http.StatusNotFound, "NotFoundError", "Trip not found"
	case errors.Is(err, service.ErrServiceTypeNotFound):
		return http.StatusNotFound, "NotFoundError", "Service type not found"
	case errors.Is(err, service.ErrQuotationAlreadyUsed):
		return http.StatusBadRequest, "ValidationError", "Quotation already used to create a trip"
	case errors.Is(err, service.ErrServiceTypeNotInQuotation):
		return http.StatusBadRequest, "ValidationError", "Service type not available for this quotation"
	case errors.Is(err, service.ErrTripNotCancellable):
		return http.StatusBadRequest, "ValidationError", "Trip cannot be cancelled in its current state"
	case errors.Is(err, service.ErrInvalidPaymentMode):
		return http.StatusBadRequest, "ValidationError", "Invalid payment mode"
	case errors.Is(err, service.ErrInvalidTripStatus):
		return http.StatusBadRequest, "ValidationError", "Invalid trip status code"
	case errors.Is(err, service.ErrWebhookDelivery):
		return http.StatusInternalServerError, "WebhookError", err.Error()
	default:
		return http.StatusInternalServerError, "InternalServerError", "internal error"
	}
}
