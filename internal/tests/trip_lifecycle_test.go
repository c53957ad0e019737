package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"corporate/internal/domain"
	"corporate/internal/service"
)

// ──────────────────────────────────────────────
// 1. FIXTURES
// ──────────────────────────────────────────────

type tripFixture struct {
	svc           *service.TripService
	tripRepo      *MockTripRepository
	quotationRepo *MockQuotationRepository
	quotation     *domain.Quotation
	serviceType   *domain.ServiceType
}

func newTripFixture() *tripFixture {
	tripRepo := NewMockTripRepository()
	quotationRepo := NewMockQuotationRepository()
	serviceTypeRepo := NewMockServiceTypeRepository()

	serviceType := &domain.ServiceType{
		ID:        uuid.New().String(),
		Name:      "Estandar M",
		Typename:  "Mandaditos",
		MaxWeight: 5.0,
	}
	serviceTypeRepo.AddServiceType(serviceType)

	quotation := &domain.Quotation{
		ID:       uuid.New().String(),
		ETA:      42,
		Distance: 0.7,
		Services: []domain.QuotationService{
			{
				Name:          serviceType.Name,
				Typename:      serviceType.Typename,
				EstimatedFare: 0.16,
				ServiceTypeID: serviceType.ID,
			},
		},
	}
	quotationRepo.AddQuotation(quotation)

	return &tripFixture{
		svc:           service.NewTripService(tripRepo, quotationRepo, serviceTypeRepo),
		tripRepo:      tripRepo,
		quotationRepo: quotationRepo,
		quotation:     quotation,
		serviceType:   serviceType,
	}
}

func (f *tripFixture) createRequest() service.CreateTripRequest {
	cash := 12.5
	return service.CreateTripRequest{
		PayerID:            "payer-1",
		PaymentMode:        domain.PaymentModeCash,
		QuotationID:        f.quotation.ID,
		ServiceTypeID:      f.serviceType.ID,
		OrderID:            "order-77",
		SourceAddress:      "Av. Francisco de Miranda",
		DestinationAddress: "Av. Libertador",

		UserFirstName:        "Pedro",
		UserLastName:         "Rangel",
		UserPhoneCountryCode: "+58",
		UserPhoneNumber:      "4141234567",

		ReceiverFirstName:        "Maria",
		ReceiverLastName:         "Lopez",
		ReceiverPhoneCountryCode: "+58",
		ReceiverPhoneNumber:      "4247654321",

		TripSource:    "corporate",
		CashCollected: &cash,
	}
}

func (f *tripFixture) createTrip(t *testing.T) *domain.Trip {
	t.Helper()
	resp, err := f.svc.CreateTrip(context.Background(), f.createRequest())
	if err != nil {
		t.Fatalf("creating trip: %v", err)
	}
	return resp.Trip
}

// ──────────────────────────────────────────────
// 2. TRIP CREATION
// ──────────────────────────────────────────────

func TestCreateTrip_Success(t *testing.T) {
	t.Parallel()

	f := newTripFixture()

	resp, err := f.svc.CreateTrip(context.Background(), f.createRequest())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	trip := resp.Trip
	if trip.Status != domain.TripStatusAccepted {
		t.Errorf("status = %v, want ACCEPTED", trip.Status)
	}
	if trip.Driver == nil {
		t.Fatal("expected a synthesized driver")
	}
	if trip.Driver.FirstName == "" || trip.Driver.PhoneNumber == "" {
		t.Errorf("driver incomplete: %+v", trip.Driver)
	}
	if trip.CashCollected == nil || *trip.CashCollected != 12.5 {
		t.Errorf("cash collected = %v, want 12.5 for a cash trip", trip.CashCollected)
	}
	if resp.UniqueID < 10000 || resp.UniqueID > 99999 {
		t.Errorf("unique id = %d, want five digits", resp.UniqueID)
	}
	if f.tripRepo.CountTrips() != 1 {
		t.Errorf("persisted trips = %d, want 1", f.tripRepo.CountTrips())
	}
}

func TestCreateTrip_CashCollectedClearedForNonCash(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	req := f.createRequest()
	req.PaymentMode = domain.PaymentModePOS

	resp, err := f.svc.CreateTrip(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Trip.CashCollected != nil {
		t.Errorf("cash collected = %v, want nil for POS trips", *resp.Trip.CashCollected)
	}
}

func TestCreateTrip_StoreSender(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	req := f.createRequest()
	req.StoreDetail = &service.StoreDetail{
		FullName: "Farmacia Central",
		Alias:    "farmacia-central",
		FavIcon:  "https://cdn.example.com/fav.png",
	}

	resp, err := f.svc.CreateTrip(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sender := resp.Trip.Sender
	if !sender.IsStore {
		t.Error("expected sender to be flagged as store")
	}
	if sender.StoreAlias != "farmacia-central" {
		t.Errorf("store alias = %q", sender.StoreAlias)
	}
}

func TestCreateTrip_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*service.CreateTripRequest)
		wantErr error
	}{
		{
			name:    "invalid payment mode",
			mutate:  func(r *service.CreateTripRequest) { r.PaymentMode = 3 },
			wantErr: service.ErrInvalidPaymentMode,
		},
		{
			name:    "unknown quotation",
			mutate:  func(r *service.CreateTripRequest) { r.QuotationID = uuid.New().String() },
			wantErr: service.ErrQuotationNotFound,
		},
		{
			name:    "unknown service type",
			mutate:  func(r *service.CreateTripRequest) { r.ServiceTypeID = uuid.New().String() },
			wantErr: service.ErrServiceTypeNotFound,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newTripFixture()
			req := f.createRequest()
			tc.mutate(&req)

			_, err := f.svc.CreateTrip(context.Background(), req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
			if f.tripRepo.CountTrips() != 0 {
				t.Errorf("persisted trips = %d, want 0", f.tripRepo.CountTrips())
			}
		})
	}
}

func TestCreateTrip_ServiceTypeNotInQuotation(t *testing.T) {
	t.Parallel()

	f := newTripFixture()

	// A real tier that the quotation never offered.
	other := &domain.ServiceType{
		ID:        uuid.New().String(),
		Name:      "XXL",
		Typename:  "Mandaditos XXL",
		MaxWeight: 180.0,
	}
	serviceTypeRepo := NewMockServiceTypeRepository()
	serviceTypeRepo.AddServiceType(f.serviceType)
	serviceTypeRepo.AddServiceType(other)
	svc := service.NewTripService(f.tripRepo, f.quotationRepo, serviceTypeRepo)

	req := f.createRequest()
	req.ServiceTypeID = other.ID

	_, err := svc.CreateTrip(context.Background(), req)
	if !errors.Is(err, service.ErrServiceTypeNotInQuotation) {
		t.Errorf("err = %v, want ErrServiceTypeNotInQuotation", err)
	}
}

func TestCreateTrip_QuotationAlreadyUsed(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	ctx := context.Background()

	if _, err := f.svc.CreateTrip(ctx, f.createRequest()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := f.svc.CreateTrip(ctx, f.createRequest())
	if !errors.Is(err, service.ErrQuotationAlreadyUsed) {
		t.Errorf("err = %v, want ErrQuotationAlreadyUsed", err)
	}
	if f.tripRepo.CountTrips() != 1 {
		t.Errorf("persisted trips = %d, want 1", f.tripRepo.CountTrips())
	}
}

func TestCreateTrip_QuotationReusableAfterCancellation(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	ctx := context.Background()

	trip := f.createTrip(t)
	if _, err := f.svc.Cancel(ctx, trip.ID, "changed my mind"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := f.svc.CreateTrip(ctx, f.createRequest()); err != nil {
		t.Errorf("expected cancelled trip to free the quotation, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 3. STATUS
// ──────────────────────────────────────────────

func TestGetStatus_StableUniqueID(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	ctx := context.Background()
	trip := f.createTrip(t)

	first, err := f.svc.GetStatus(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := f.svc.GetStatus(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.UniqueID != second.UniqueID {
		t.Errorf("unique id changed between calls: %d then %d", first.UniqueID, second.UniqueID)
	}
	if first.StatusCode != domain.TripStatusAccepted.Code() {
		t.Errorf("status code = %d, want %d", first.StatusCode, domain.TripStatusAccepted.Code())
	}
	if first.StatusText != "Aceptado" {
		t.Errorf("status text = %q, want Aceptado", first.StatusText)
	}
}

func TestGetStatus_UnknownTrip(t *testing.T) {
	t.Parallel()

	f := newTripFixture()

	_, err := f.svc.GetStatus(context.Background(), uuid.New().String())
	if !errors.Is(err, service.ErrTripNotFound) {
		t.Errorf("err = %v, want ErrTripNotFound", err)
	}
}

func TestUpdateStatus_Progression(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	ctx := context.Background()
	trip := f.createTrip(t)

	progression := []domain.TripStatus{
		domain.TripStatusDriverOnTheWay,
		domain.TripStatusDriverArrivedToPickup,
		domain.TripStatusDriverOnTheWayToDestination,
		domain.TripStatusDriverArrivedToDestination,
		domain.TripStatusTripCompleted,
	}

	for _, status := range progression {
		updated, err := f.svc.UpdateStatus(ctx, trip.ID, status)
		if err != nil {
			t.Fatalf("updating to %v: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("status = %v, want %v", updated.Status, status)
		}
	}
}

func TestUpdateStatus_Rejected(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	ctx := context.Background()
	trip := f.createTrip(t)

	for _, status := range []domain.TripStatus{domain.TripStatusCancelled, 3, 99} {
		_, err := f.svc.UpdateStatus(ctx, trip.ID, status)
		if !errors.Is(err, service.ErrInvalidTripStatus) {
			t.Errorf("status %d: err = %v, want ErrInvalidTripStatus", status, err)
		}
	}
}

// ──────────────────────────────────────────────
// 4. CANCELLATION
// ──────────────────────────────────────────────

func TestCancel_AllowedStates(t *testing.T) {
	t.Parallel()

	allowed := []domain.TripStatus{
		domain.TripStatusAccepted,
		domain.TripStatusDriverOnTheWay,
		domain.TripStatusDriverArrivedToPickup,
		domain.TripStatusDriverOnTheWayToDestination,
	}

	for _, status := range allowed {
		status := status
		t.Run(status.Text(), func(t *testing.T) {
			t.Parallel()

			f := newTripFixture()
			ctx := context.Background()
			trip := f.createTrip(t)
			trip.Status = status
			if err := f.tripRepo.Update(ctx, trip); err != nil {
				t.Fatalf("arranging status: %v", err)
			}

			resp, err := f.svc.Cancel(ctx, trip.ID, "cliente cancelo")
			if err != nil {
				t.Fatalf("expected cancellation from %v to succeed, got: %v", status, err)
			}
			if resp.Trip.Status != domain.TripStatusCancelled {
				t.Errorf("status = %v, want CANCELLED", resp.Trip.Status)
			}
			if resp.Trip.CancelReason != "cliente cancelo" {
				t.Errorf("cancel reason = %q", resp.Trip.CancelReason)
			}
			if resp.PaymentMethod != int(domain.PaymentModeCash) {
				t.Errorf("payment method = %d, want %d", resp.PaymentMethod, int(domain.PaymentModeCash))
			}
			if resp.PaymentStatus != 1 {
				t.Errorf("payment status = %d, want 1", resp.PaymentStatus)
			}
		})
	}
}

func TestCancel_BlockedStates(t *testing.T) {
	t.Parallel()

	blocked := []domain.TripStatus{
		domain.TripStatusCancelled,
		domain.TripStatusTripCompleted,
		domain.TripStatusDriverArrivedToDestination,
	}

	for _, status := range blocked {
		status := status
		t.Run(status.Text(), func(t *testing.T) {
			t.Parallel()

			f := newTripFixture()
			ctx := context.Background()
			trip := f.createTrip(t)
			trip.Status = status
			if err := f.tripRepo.Update(ctx, trip); err != nil {
				t.Fatalf("arranging status: %v", err)
			}

			_, err := f.svc.Cancel(ctx, trip.ID, "too late")
			if !errors.Is(err, service.ErrTripNotCancellable) {
				t.Errorf("err = %v, want ErrTripNotCancellable", err)
			}
			if got := f.tripRepo.GetTrip(trip.ID); got.Status != status {
				t.Errorf("status mutated to %v despite blocked cancel", got.Status)
			}
		})
	}
}

// ──────────────────────────────────────────────
// 5. FORCED COMPLETION AND REASSIGNMENT
// ──────────────────────────────────────────────

func TestForceComplete_FromEveryState(t *testing.T) {
	t.Parallel()

	states := []domain.TripStatus{
		domain.TripStatusCancelled,
		domain.TripStatusAccepted,
		domain.TripStatusDriverOnTheWay,
		domain.TripStatusDriverArrivedToPickup,
		domain.TripStatusDriverOnTheWayToDestination,
		domain.TripStatusDriverArrivedToDestination,
		domain.TripStatusTripCompleted,
	}

	for _, status := range states {
		status := status
		t.Run(status.Text(), func(t *testing.T) {
			t.Parallel()

			f := newTripFixture()
			ctx := context.Background()
			trip := f.createTrip(t)
			trip.Status = status
			if err := f.tripRepo.Update(ctx, trip); err != nil {
				t.Fatalf("arranging status: %v", err)
			}

			resp, err := f.svc.ForceComplete(ctx, trip.ID, true)
			if err != nil {
				t.Fatalf("force complete from %v: %v", status, err)
			}
			if resp.Trip.Status != domain.TripStatusTripCompleted {
				t.Errorf("status = %v, want TRIP_COMPLETED", resp.Trip.Status)
			}
			if resp.PaymentStatus != 1 {
				t.Errorf("payment status = %d, want 1", resp.PaymentStatus)
			}
		})
	}
}

func TestReassignDriver(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	ctx := context.Background()
	trip := f.createTrip(t)

	before := *trip.Driver
	beforeStatus := trip.Status

	var reassigned *domain.Trip
	var err error
	for i := 0; i < 10; i++ {
		reassigned, err = f.svc.ReassignDriver(ctx, trip.ID)
		if err != nil {
			t.Fatalf("reassigning driver: %v", err)
		}
		if reassigned.Driver.FirstName != before.FirstName ||
			reassigned.Driver.PhoneNumber != before.PhoneNumber {
			break
		}
	}

	if reassigned.Driver == nil {
		t.Fatal("expected a driver after reassignment")
	}
	if reassigned.Driver.FirstName == before.FirstName &&
		reassigned.Driver.PhoneNumber == before.PhoneNumber {
		t.Error("driver unchanged after repeated reassignment")
	}
	if reassigned.Status != beforeStatus {
		t.Errorf("status = %v, want %v untouched", reassigned.Status, beforeStatus)
	}
}
