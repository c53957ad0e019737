package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"corporate/internal/domain"
	"corporate/internal/geo"
	"corporate/internal/repository"
)

// CatalogCache caches the service-tier catalog between requests. A nil
// cache is valid and simply means every request hits the database.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.ServiceType, error)
	Set(ctx context.Context, types []domain.ServiceType) error
}

// QuotationService produces price quotations for a pickup/destination pair.
type QuotationService struct {
	quotationRepo   repository.QuotationRepository
	serviceTypeRepo repository.ServiceTypeRepository
	catalogCache    CatalogCache
}

// NewQuotationService creates a new QuotationService.
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	serviceTypeRepo repository.ServiceTypeRepository,
	catalogCache CatalogCache,
) *QuotationService {
	return &QuotationService{
		quotationRepo:   quotationRepo,
		serviceTypeRepo: serviceTypeRepo,
		catalogCache:    catalogCache,
	}
}

// CreateQuotationRequest contains the parameters for creating a quotation.
type CreateQuotationRequest struct {
	PickupLat      float64
	PickupLng      float64
	DestinationLat float64
	DestinationLng float64
	Weight         *float64
}

// CreateQuotation computes distance, ETA and per-tier fares for the route
// and persists the resulting quotation.
//
// ETA assumes an average speed of 60 km/h, so one km costs one minute.
// When a weight is given, only tiers able to carry it are offered; a weight
// above every tier's capacity yields an empty service list, not an error.
func (s *QuotationService) CreateQuotation(ctx context.Context, req CreateQuotationRequest) (*domain.Quotation, error) {
	distance := geo.DistanceKm(req.PickupLat, req.PickupLng, req.DestinationLat, req.DestinationLng)
	eta := int(math.Floor(distance * 60))

	types, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	var services []domain.QuotationService
	for _, t := range types {
		if req.Weight != nil && t.MaxWeight < *req.Weight {
			continue
		}
		services = append(services, domain.QuotationService{
			Name:          t.Name,
			Typename:      t.Typename,
			EstimatedFare: t.EstimateFare(distance),
			ServiceTypeID: t.ID,
		})
	}

	quotation := &domain.Quotation{
		ID:       uuid.New().String(),
		ETA:      eta,
		Distance: distance,
		Services: services,
	}

	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		return nil, err
	}

	return quotation, nil
}

// catalog returns the service-tier catalog, seeding the standard tiers on
// first use. Seeding is idempotent: the repository skips names that already
// exist, so two tier sets can never accumulate.
func (s *QuotationService) catalog(ctx context.Context) ([]domain.ServiceType, error) {
	if s.catalogCache != nil {
		if cached, err := s.catalogCache.Get(ctx); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	types, err := s.serviceTypeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(types) == 0 {
		seed := domain.StandardServiceTypes()
		for i := range seed {
			seed[i].ID = uuid.New().String()
		}
		if err := s.serviceTypeRepo.Seed(ctx, seed); err != nil {
			return nil, err
		}

		types, err = s.serviceTypeRepo.List(ctx)
		if err != nil {
			return nil, err
		}
	}

	if s.catalogCache != nil {
		_ = s.catalogCache.Set(ctx, types)
	}

	return types, nil
}
