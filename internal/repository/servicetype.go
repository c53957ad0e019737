package repository

import (
	"context"

	"corporate/internal/domain"
)

// ServiceTypeRepository defines the persistence operations for the
// service-tier catalog.
type ServiceTypeRepository interface {
	// Seed inserts the given service types, skipping any whose name
	// already exists. Safe to call on every request.
	Seed(ctx context.Context, types []domain.ServiceType) error

	// GetByID retrieves a service type by ID.
	GetByID(ctx context.Context, id string) (*domain.ServiceType, error)

	// List retrieves all service types ordered ascending by max weight.
	List(ctx context.Context) ([]domain.ServiceType, error)
}
