package domain

import (
	"hash/fnv"
	"math/rand"
)

// TripStatus is the lifecycle state of a trip. The numeric codes and the
// localized texts are part of the partner contract and must not change.
type TripStatus int

const (
	TripStatusCancelled                   TripStatus = 0
	TripStatusAccepted                    TripStatus = 1
	TripStatusDriverOnTheWay              TripStatus = 2
	TripStatusDriverArrivedToPickup       TripStatus = 4
	TripStatusDriverOnTheWayToDestination TripStatus = 6
	TripStatusDriverArrivedToDestination  TripStatus = 8
	TripStatusTripCompleted               TripStatus = 9
)

// statusTexts holds the localized display string for each status.
var statusTexts = map[TripStatus]string{
	TripStatusCancelled:                   "Cancelado",
	TripStatusAccepted:                    "Aceptado",
	TripStatusDriverOnTheWay:              "En camino",
	TripStatusDriverArrivedToPickup:       "Primera parada",
	TripStatusDriverOnTheWayToDestination: "En camino a destino",
	TripStatusDriverArrivedToDestination:  "Llegó a destino",
	TripStatusTripCompleted:               "Completado",
}

// Text returns the localized display string for the status.
func (s TripStatus) Text() string {
	return statusTexts[s]
}

// Code returns the numeric wire code for the status.
func (s TripStatus) Code() int {
	return int(s)
}

// Valid reports whether s is one of the defined status codes.
func (s TripStatus) Valid() bool {
	_, ok := statusTexts[s]
	return ok
}

// PaymentMode is how the payer settles the trip.
type PaymentMode int

const (
	PaymentModeCash    PaymentMode = 1
	PaymentModePOS     PaymentMode = 4
	PaymentModeDefault PaymentMode = 7
)

// Valid reports whether m is a defined payment mode.
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModePOS, PaymentModeDefault:
		return true
	}
	return false
}

// Currency is the currency of a trip product price.
type Currency string

const (
	CurrencyBS  Currency = "BS"
	CurrencyUSD Currency = "USD"
)

// Contact identifies a party on a trip: sender, receiver or driver.
// When the sender is a store the store branding fields are set.
type Contact struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	PhoneCountryCode string `json:"phone_country_code,omitempty"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	IsStore          bool   `json:"is_store,omitempty"`
	StoreFullName    string `json:"store_full_name,omitempty"`
	StoreAlias       string `json:"store_alias,omitempty"`
	StoreImage       string `json:"store_image,omitempty"`
	StoreFavicon     string `json:"store_favicon,omitempty"`
}

// TripProduct is a product carried on a delivery trip.
type TripProduct struct {
	Name         string   `json:"name"`
	Image        string   `json:"image,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Quantity     int      `json:"quantity"`
	CurrencyCode Currency `json:"currency_code,omitempty"`
}

// Trip is a committed unit of service delivery tied to exactly one quotation.
// Trips are never deleted; cancellation is a status value.
type Trip struct {
	ID                 string
	Status             TripStatus
	PayerID            string
	PaymentMode        PaymentMode
	QuotationID        string
	ServiceTypeID      string
	OrderID            string
	SourceAddress      string
	DestinationAddress string
	Sender             Contact
	Receiver           Contact
	Driver             *Contact
	TripSource         string
	Products           []TripProduct
	TotalOrderPrice    *float64
	CashCollected      *float64
	TipAmount          *float64
	CancelReason       string
}

// UniqueID derives the secondary display identifier for a trip. It seeds a
// PRNG with a hash of the trip's persisted id and draws one integer in
// [10000, 99999], so repeated reads of the same trip always see the same
// display id without persisting it separately.
func UniqueID(tripID string) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(tripID))
	r := rand.New(rand.NewSource(int64(h.Sum64())))
	return r.Intn(90000) + 10000
}
