package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"corporate/internal/domain"
	"corporate/internal/repository"
)

// paymentStatusAcknowledged is the fixed payment acknowledgement reported on
// cancellation and forced completion. Real payment processing happens
// outside this system.
const paymentStatusAcknowledged = 1

// TripService implements the trip lifecycle state machine: quotation-to-trip
// conversion, status transitions, cancellation and driver reassignment.
type TripService struct {
	tripRepo        repository.TripRepository
	quotationRepo   repository.QuotationRepository
	serviceTypeRepo repository.ServiceTypeRepository
}

// NewTripService creates a new TripService.
func NewTripService(
	tripRepo repository.TripRepository,
	quotationRepo repository.QuotationRepository,
	serviceTypeRepo repository.ServiceTypeRepository,
) *TripService {
	return &TripService{
		tripRepo:        tripRepo,
		quotationRepo:   quotationRepo,
		serviceTypeRepo: serviceTypeRepo,
	}
}

// StoreDetail carries the store branding of a corporate sender.
type StoreDetail struct {
	FullName         string
	Alias            string
	Image            string
	FavIcon          string
	Phone            string
	PhoneCountryCode string
}

// CreateTripRequest contains the parameters for creating a trip from a
// quotation.
type CreateTripRequest struct {
	PayerID            string
	PaymentMode        domain.PaymentMode
	QuotationID        string
	ServiceTypeID      string
	OrderID            string
	SourceAddress      string
	DestinationAddress string

	UserFirstName        string
	UserLastName         string
	UserPhoneCountryCode string
	UserPhoneNumber      string
	StoreDetail          *StoreDetail

	ReceiverFirstName        string
	ReceiverLastName         string
	ReceiverPhoneCountryCode string
	ReceiverPhoneNumber      string

	TripSource      string
	Products        []domain.TripProduct
	TotalOrderPrice *float64
	CashCollected   *float64
	TipAmount       *float64
}

// CreateTripResponse contains the result of creating a trip.
type CreateTripResponse struct {
	Trip     *domain.Trip
	UniqueID int
}

// CreateTrip converts a quotation into a trip. The quotation and service
// type must exist, the service type must be among those the quotation
// offered, and the quotation must not already back a non-cancelled trip.
// That last rule is enforced by the storage layer's conditional write, so
// two concurrent creates against the same quotation cannot both succeed.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*CreateTripResponse, error) {
	if !req.PaymentMode.Valid() {
		return nil, ErrInvalidPaymentMode
	}

	quotation, err := s.quotationRepo.GetByID(ctx, req.QuotationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuotationNotFound
		}
		return nil, err
	}

	serviceType, err := s.serviceTypeRepo.GetByID(ctx, req.ServiceTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceTypeNotFound
		}
		return nil, err
	}

	if !quotation.Offers(serviceType.ID) {
		return nil, ErrServiceTypeNotInQuotation
	}

	// Cash collected only makes sense for cash trips.
	cashCollected := req.CashCollected
	if req.PaymentMode != domain.PaymentModeCash {
		cashCollected = nil
	}

	sender := domain.Contact{
		FirstName:        req.UserFirstName,
		LastName:         req.UserLastName,
		PhoneCountryCode: req.UserPhoneCountryCode,
		PhoneNumber:      req.UserPhoneNumber,
	}
	if req.StoreDetail != nil {
		sender.IsStore = true
		sender.StoreFullName = req.StoreDetail.FullName
		sender.StoreAlias = req.StoreDetail.Alias
		sender.StoreImage = req.StoreDetail.Image
		sender.StoreFavicon = req.StoreDetail.FavIcon
	}

	receiver := domain.Contact{
		FirstName:        req.ReceiverFirstName,
		LastName:         req.ReceiverLastName,
		PhoneCountryCode: req.ReceiverPhoneCountryCode,
		PhoneNumber:      req.ReceiverPhoneNumber,
	}

	driver := SynthesizeDriver()

	trip := &domain.Trip{
		ID:                 uuid.New().String(),
		Status:             domain.TripStatusAccepted,
		PayerID:            req.PayerID,
		PaymentMode:        req.PaymentMode,
		QuotationID:        quotation.ID,
		ServiceTypeID:      serviceType.ID,
		OrderID:            req.OrderID,
		SourceAddress:      req.SourceAddress,
		DestinationAddress: req.DestinationAddress,
		Sender:             sender,
		Receiver:           receiver,
		Driver:             &driver,
		TripSource:         req.TripSource,
		Products:           req.Products,
		TotalOrderPrice:    req.TotalOrderPrice,
		CashCollected:      cashCollected,
		TipAmount:          req.TipAmount,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		if errors.Is(err, repository.ErrQuotationInUse) {
			return nil, ErrQuotationAlreadyUsed
		}
		return nil, err
	}

	return &CreateTripResponse{
		Trip:     trip,
		UniqueID: domain.UniqueID(trip.ID),
	}, nil
}

// TripStatusResponse contains the status view of a trip.
type TripStatusResponse struct {
	Trip       *domain.Trip
	UniqueID   int
	StatusCode int
	StatusText string
}

// GetStatus retrieves the current status of a trip. The display id is
// derived from the trip id, so repeated calls always return the same value.
func (s *TripService) GetStatus(ctx context.Context, tripID string) (*TripStatusResponse, error) {
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	return &TripStatusResponse{
		Trip:       trip,
		UniqueID:   domain.UniqueID(trip.ID),
		StatusCode: trip.Status.Code(),
		StatusText: trip.Status.Text(),
	}, nil
}

// UpdateStatus moves a trip to the given lifecycle status. Cancellation and
// completion have dedicated operations with their own rules; this covers
// driver-progress updates reported by the platform.
func (s *TripService) UpdateStatus(ctx context.Context, tripID string, status domain.TripStatus) (*domain.Trip, error) {
	if !status.Valid() || status == domain.TripStatusCancelled {
		return nil, ErrInvalidTripStatus
	}

	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	trip.Status = status
	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// CancelResponse contains the result of cancelling a trip.
type CancelResponse struct {
	Trip          *domain.Trip
	PaymentMethod int
	PaymentStatus int
}

// cancelBlockedStates are the states a trip cannot be cancelled from: once
// the driver has reached the destination the job is protected, and terminal
// trips stay terminal.
var cancelBlockedStates = map[domain.TripStatus]bool{
	domain.TripStatusCancelled:                  true,
	domain.TripStatusTripCompleted:              true,
	domain.TripStatusDriverArrivedToDestination: true,
}

// Cancel cancels a trip unless it is in a blocked state. The reason is
// recorded but has no effect on the transition itself.
func (s *TripService) Cancel(ctx context.Context, tripID, reason string) (*CancelResponse, error) {
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if cancelBlockedStates[trip.Status] {
		return nil, ErrTripNotCancellable
	}

	trip.Status = domain.TripStatusCancelled
	trip.CancelReason = reason
	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	return &CancelResponse{
		Trip:          trip,
		PaymentMethod: int(trip.PaymentMode),
		PaymentStatus: paymentStatusAcknowledged,
	}, nil
}

// ForceCompleteResponse contains the result of force-completing a trip.
type ForceCompleteResponse struct {
	Trip          *domain.Trip
	PaymentStatus int
}

// ForceComplete sets a trip to TRIP_COMPLETED regardless of its current
// state. This is the administrative override support staff use to resolve
// stuck trips, so no legality check applies.
func (s *TripService) ForceComplete(ctx context.Context, tripID string, forceB2B bool) (*ForceCompleteResponse, error) {
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	trip.Status = domain.TripStatusTripCompleted
	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	return &ForceCompleteResponse{
		Trip:          trip,
		PaymentStatus: paymentStatusAcknowledged,
	}, nil
}

// ReassignDriver replaces the trip's driver with a freshly synthesized one.
// The trip's status is left untouched.
func (s *TripService) ReassignDriver(ctx context.Context, tripID string) (*domain.Trip, error) {
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	driver := SynthesizeDriver()
	trip.Driver = &driver
	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

func (s *TripService) getTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}
