package service

import "errors"

var (
	// ErrQuotationNotFound is returned when the quotation id does not
	// resolve to a persisted quotation.
	ErrQuotationNotFound = errors.New("quotation not found")

	// ErrTripNotFound is returned when the trip id does not resolve to a
	// persisted trip.
	ErrTripNotFound = errors.New("trip not found")

	// ErrServiceTypeNotFound is returned when the service type id does not
	// resolve to a catalog entry.
	ErrServiceTypeNotFound = errors.New("service type not found")

	// ErrQuotationAlreadyUsed is returned when the quotation already backs
	// a non-cancelled trip.
	ErrQuotationAlreadyUsed = errors.New("quotation already used to create a trip")

	// ErrServiceTypeNotInQuotation is returned when the chosen service type
	// was not offered in the quotation.
	ErrServiceTypeNotInQuotation = errors.New("service type not available for this quotation")

	// ErrInvalidPaymentMode is returned when the payment mode is not one of
	// the defined modes.
	ErrInvalidPaymentMode = errors.New("invalid payment mode")

	// ErrInvalidTripStatus is returned when a status update names an
	// undefined status code.
	ErrInvalidTripStatus = errors.New("invalid trip status code")

	// ErrTripNotCancellable is returned when cancellation is attempted in a
	// blocked state.
	ErrTripNotCancellable = errors.New("trip cannot be cancelled in its current state")

	// ErrWebhookDelivery is returned when the partner webhook could not be
	// delivered.
	ErrWebhookDelivery = errors.New("failed to send webhook")
)
