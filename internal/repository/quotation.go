package repository

import (
	"context"

	"corporate/internal/domain"
)

// QuotationRepository defines the persistence operations for quotations.
type QuotationRepository interface {
	// Create persists a new quotation.
	Create(ctx context.Context, quotation *domain.Quotation) error

	// GetByID retrieves a quotation by ID.
	GetByID(ctx context.Context, id string) (*domain.Quotation, error)
}
