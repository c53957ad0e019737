package tests

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"corporate/internal/config"
	"corporate/internal/domain"
	"corporate/internal/service"
)

// ──────────────────────────────────────────────
// 1. CAPTURING PARTNER ENDPOINT
// ──────────────────────────────────────────────

type capturedRequest struct {
	ContentType string
	Body        []byte
}

type webhookCapture struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (c *webhookCapture) handler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.requests = append(c.requests, capturedRequest{
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
		})
		c.mu.Unlock()
		w.WriteHeader(status)
	}
}

func (c *webhookCapture) last(t *testing.T) capturedRequest {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		t.Fatal("no webhook request captured")
	}
	return c.requests[len(c.requests)-1]
}

func sampleTrip() *domain.Trip {
	driver := domain.Contact{
		FirstName:        "Carlos",
		LastName:         "Mendoza",
		PhoneCountryCode: "+58",
		PhoneNumber:      "4120001122",
	}
	return &domain.Trip{
		ID:          "trip-abc",
		Status:      domain.TripStatusDriverOnTheWay,
		OrderID:     "order-9",
		QuotationID: "quotation-5",
		Sender: domain.Contact{
			FirstName: "Pedro",
			LastName:  "Rangel",
		},
		Receiver: domain.Contact{
			FirstName: "Maria",
			LastName:  "Lopez",
		},
		Driver: &driver,
	}
}

// ──────────────────────────────────────────────
// 2. DELIVERY
// ──────────────────────────────────────────────

func TestWebhook_DeliversPayload(t *testing.T) {
	t.Parallel()

	capture := &webhookCapture{}
	server := httptest.NewServer(capture.handler(http.StatusOK))
	defer server.Close()

	svc := service.NewWebhookService(config.WebhookConfig{URL: server.URL})
	trip := sampleTrip()

	err := svc.Notify(context.Background(), service.WebhookTripUpdate, service.TripSnapshot(trip))
	if err != nil {
		t.Fatalf("expected delivery to succeed, got: %v", err)
	}

	req := capture.last(t)
	if req.ContentType != "application/json" {
		t.Errorf("content type = %q, want application/json", req.ContentType)
	}

	var payload service.WebhookPayload
	if err := json.Unmarshal(req.Body, &payload); err != nil {
		t.Fatalf("invalid payload JSON: %v", err)
	}
	if payload.Type != service.WebhookTripUpdate {
		t.Errorf("type = %q, want trip_update", payload.Type)
	}
	if payload.Data.ID != trip.ID {
		t.Errorf("trip id = %q, want %q", payload.Data.ID, trip.ID)
	}
	if payload.Data.UniqueID != domain.UniqueID(trip.ID) {
		t.Errorf("unique id = %d, want %d", payload.Data.UniqueID, domain.UniqueID(trip.ID))
	}
	if payload.Data.Code == nil || *payload.Data.Code != trip.Status.Code() {
		t.Errorf("code = %v, want %d", payload.Data.Code, trip.Status.Code())
	}
	if payload.Data.Driver == nil || payload.Data.Driver.FirstName != "Carlos" {
		t.Errorf("driver = %+v, want Carlos", payload.Data.Driver)
	}
}

func TestWebhook_OmitsUnsetOptionals(t *testing.T) {
	t.Parallel()

	capture := &webhookCapture{}
	server := httptest.NewServer(capture.handler(http.StatusOK))
	defer server.Close()

	svc := service.NewWebhookService(config.WebhookConfig{URL: server.URL})

	// A minimal snapshot: no driver, no message, no admin flag.
	data := service.WebhookTripData{
		ID:       "trip-min",
		UniqueID: 12345,
		Sender:   domain.Contact{FirstName: "Pedro"},
	}

	if err := svc.Notify(context.Background(), service.WebhookTripCancel, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(capture.last(t).Body, &raw); err != nil {
		t.Fatalf("invalid payload JSON: %v", err)
	}
	var rawData map[string]json.RawMessage
	if err := json.Unmarshal(raw["data"], &rawData); err != nil {
		t.Fatalf("invalid data JSON: %v", err)
	}

	for _, key := range []string{"driver", "receiver", "message", "code", "order_id", "quotation_id", "reassignment_by_admin"} {
		if _, present := rawData[key]; present {
			t.Errorf("unset optional %q serialized as %s", key, rawData[key])
		}
	}
	if _, present := rawData["sender"]; !present {
		t.Error("sender missing from payload")
	}
}

func TestWebhook_EventTypeSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		got  service.WebhookEventType
		want service.WebhookEventType
	}{
		{"cancel by partner", service.CancelEvent(false), service.WebhookTripCancel},
		{"cancel by admin", service.CancelEvent(true), service.WebhookTripCancelByAdmin},
		{"reassign by partner", service.ReassignEvent(false), service.WebhookTripReassign},
		{"reassign by admin", service.ReassignEvent(true), service.WebhookTripReassignByAdmin},
	}

	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

// ──────────────────────────────────────────────
// 3. DELIVERY FAILURES
// ──────────────────────────────────────────────

func TestWebhook_Non2xxIsDeliveryFailure(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
		capture := &webhookCapture{}
		server := httptest.NewServer(capture.handler(status))

		svc := service.NewWebhookService(config.WebhookConfig{URL: server.URL})
		err := svc.Notify(context.Background(), service.WebhookTripUpdate, service.TripSnapshot(sampleTrip()))
		server.Close()

		if !errors.Is(err, service.ErrWebhookDelivery) {
			t.Errorf("status %d: err = %v, want ErrWebhookDelivery", status, err)
		}
	}
}

func TestWebhook_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	svc := service.NewWebhookService(config.WebhookConfig{
		URL:     server.URL,
		Timeout: time.Second,
	})

	err := svc.Notify(context.Background(), service.WebhookTripUpdate, service.TripSnapshot(sampleTrip()))
	if !errors.Is(err, service.ErrWebhookDelivery) {
		t.Errorf("err = %v, want ErrWebhookDelivery", err)
	}
}

func TestWebhook_SingleRequestPerNotify(t *testing.T) {
	t.Parallel()

	capture := &webhookCapture{}
	server := httptest.NewServer(capture.handler(http.StatusInternalServerError))
	defer server.Close()

	svc := service.NewWebhookService(config.WebhookConfig{URL: server.URL})
	_ = svc.Notify(context.Background(), service.WebhookTripCancel, service.TripSnapshot(sampleTrip()))

	capture.mu.Lock()
	defer capture.mu.Unlock()
	if len(capture.requests) != 1 {
		t.Errorf("requests = %d, want exactly 1 (no retry)", len(capture.requests))
	}
}
