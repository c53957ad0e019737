package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"corporate/internal/config"
	"corporate/internal/domain"
)

// WebhookEventType identifies a trip lifecycle event forwarded to the
// partner webhook. Admin variants are chosen by an explicit flag at the
// call site, never inferred.
type WebhookEventType string

const (
	WebhookTripUpdate          WebhookEventType = "trip_update"
	WebhookTripCancel          WebhookEventType = "trip_cancel"
	WebhookTripCancelByAdmin   WebhookEventType = "trip_cancel_by_admin"
	WebhookTripReassign        WebhookEventType = "trip_reassign"
	WebhookTripReassignByAdmin WebhookEventType = "trip_reassign_by_admin"
)

// CancelEvent returns the cancel event type for the given admin flag.
func CancelEvent(byAdmin bool) WebhookEventType {
	if byAdmin {
		return WebhookTripCancelByAdmin
	}
	return WebhookTripCancel
}

// ReassignEvent returns the reassign event type for the given admin flag.
func ReassignEvent(byAdmin bool) WebhookEventType {
	if byAdmin {
		return WebhookTripReassignByAdmin
	}
	return WebhookTripReassign
}

// WebhookTripData is the trip snapshot carried in a webhook payload. Only
// fields that were explicitly set are serialized; unset optionals are
// omitted, not null-filled, to preserve wire compatibility with the
// receiving partner system.
type WebhookTripData struct {
	ID                  string          `json:"id"`
	UniqueID            int             `json:"unique_id"`
	OrderID             string          `json:"order_id,omitempty"`
	Code                *int            `json:"code,omitempty"`
	Sender              domain.Contact  `json:"sender"`
	Receiver            *domain.Contact `json:"receiver,omitempty"`
	Driver              *domain.Contact `json:"driver,omitempty"`
	Message             string          `json:"message,omitempty"`
	QuotationID         string          `json:"quotation_id,omitempty"`
	ReassignmentByAdmin *bool           `json:"reassignment_by_admin,omitempty"`
}

// WebhookPayload is the body POSTed to the partner webhook URL.
type WebhookPayload struct {
	Type WebhookEventType `json:"type"`
	Data WebhookTripData  `json:"data"`
}

// TripSnapshot builds the webhook snapshot of a trip.
func TripSnapshot(trip *domain.Trip) WebhookTripData {
	code := trip.Status.Code()
	receiver := trip.Receiver

	return WebhookTripData{
		ID:          trip.ID,
		UniqueID:    domain.UniqueID(trip.ID),
		OrderID:     trip.OrderID,
		Code:        &code,
		Sender:      trip.Sender,
		Receiver:    &receiver,
		Driver:      trip.Driver,
		QuotationID: trip.QuotationID,
	}
}

// WebhookService delivers trip lifecycle events to the configured partner
// endpoint. Delivery is a single POST with no retry; the state mutation
// that triggered the event has already been committed, so a failed
// delivery surfaces to the caller without rolling anything back.
type WebhookService struct {
	client *http.Client
	url    string
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(cfg config.WebhookConfig) *WebhookService {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &WebhookService{
		client: &http.Client{Timeout: timeout},
		url:    cfg.URL,
	}
}

// Notify serializes the payload and POSTs it to the partner webhook URL.
// Transport errors and non-2xx responses are both delivery failures.
func (s *WebhookService) Notify(ctx context.Context, eventType WebhookEventType, data WebhookTripData) error {
	payload := WebhookPayload{Type: eventType, Data: data}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWebhookDelivery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWebhookDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Record the outbound call as an external segment when a New Relic
	// transaction is active on the context.
	txn := newrelic.FromContext(ctx)
	segment := newrelic.StartExternalSegment(txn, req)

	resp, err := s.client.Do(req)
	segment.Response = resp
	segment.End()
	if err != nil {
		log.Printf("webhook delivery failed: type=%s trip=%s err=%v", eventType, data.ID, err)
		return fmt.Errorf("%w: %v", ErrWebhookDelivery, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("webhook delivery failed: type=%s trip=%s status=%d", eventType, data.ID, resp.StatusCode)
		return fmt.Errorf("%w: unexpected status %d", ErrWebhookDelivery, resp.StatusCode)
	}

	return nil
}
