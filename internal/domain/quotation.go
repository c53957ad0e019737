package domain

// QuotationService is one priced service option inside a quotation: a
// service tier paired with its estimated fare for the quoted route.
type QuotationService struct {
	Name          string  `json:"name"`
	Typename      string  `json:"typename"`
	EstimatedFare float64 `json:"estimated_fare"`
	ServiceTypeID string  `json:"service_type_id"`
}

// Quotation is a priced offer of service options for a route. Quotations are
// immutable once created and may back at most one non-cancelled trip.
type Quotation struct {
	ID       string
	ETA      int     // seconds
	Distance float64 // kilometers
	Services []QuotationService
}

// Offers reports whether the quotation includes the given service type.
func (q *Quotation) Offers(serviceTypeID string) bool {
	for _, s := range q.Services {
		if s.ServiceTypeID == serviceTypeID {
			return true
		}
	}
	return false
}
