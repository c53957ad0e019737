package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"corporate/internal/domain"
	"corporate/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK SERVICE TYPE REPOSITORY
// ──────────────────────────────────────────────

// MockServiceTypeRepository is a mock implementation of ServiceTypeRepository.
type MockServiceTypeRepository struct {
	mu    sync.RWMutex
	types map[string]*domain.ServiceType

	// Counters for verification
	SeedCallCount int32

	// Error injection
	SeedError error
	ListError error
}

// NewMockServiceTypeRepository creates a new mock service type repository.
func NewMockServiceTypeRepository() *MockServiceTypeRepository {
	return &MockServiceTypeRepository{
		types: make(map[string]*domain.ServiceType),
	}
}

// AddServiceType adds a service type to the mock repository.
func (m *MockServiceTypeRepository) AddServiceType(st *domain.ServiceType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[st.ID] = st
}

func (m *MockServiceTypeRepository) Seed(ctx context.Context, types []domain.ServiceType) error {
	atomic.AddInt32(&m.SeedCallCount, 1)
	if m.SeedError != nil {
		return m.SeedError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range types {
		exists := false
		for _, existing := range m.types {
			if existing.Name == t.Name {
				exists = true
				break
			}
		}
		if !exists {
			copy := t
			m.types[t.ID] = &copy
		}
	}
	return nil
}

func (m *MockServiceTypeRepository) GetByID(ctx context.Context, id string) (*domain.ServiceType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.types[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *st
	return &copy, nil
}

func (m *MockServiceTypeRepository) List(ctx context.Context) ([]domain.ServiceType, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.ServiceType, 0, len(m.types))
	for _, st := range m.types {
		result = append(result, *st)
	}
	// Sorted ascending by max weight, like the real repository.
	for i := 1; i < len(result); i++ {
		for j := i; j > 0 && result[j-1].MaxWeight > result[j].MaxWeight; j-- {
			result[j-1], result[j] = result[j], result[j-1]
		}
	}
	return result, nil
}

// CountServiceTypes returns the number of stored service types.
func (m *MockServiceTypeRepository) CountServiceTypes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.types)
}

// ──────────────────────────────────────────────
// MOCK QUOTATION REPOSITORY
// ──────────────────────────────────────────────

// MockQuotationRepository is a mock implementation of QuotationRepository.
type MockQuotationRepository struct {
	mu         sync.RWMutex
	quotations map[string]*domain.Quotation

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockQuotationRepository creates a new mock quotation repository.
func NewMockQuotationRepository() *MockQuotationRepository {
	return &MockQuotationRepository{
		quotations: make(map[string]*domain.Quotation),
	}
}

// AddQuotation adds a quotation to the mock repository.
func (m *MockQuotationRepository) AddQuotation(q *domain.Quotation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotations[q.ID] = q
}

func (m *MockQuotationRepository) Create(ctx context.Context, quotation *domain.Quotation) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotations[quotation.ID] = quotation
	return nil
}

func (m *MockQuotationRepository) GetByID(ctx context.Context, id string) (*domain.Quotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quotations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *q
	return &copy, nil
}

// CountQuotations returns the number of stored quotations.
func (m *MockQuotationRepository) CountQuotations() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.quotations)
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository. Create
// emulates the partial unique index on trips(quotation_id): inserting a
// trip whose quotation already backs a non-cancelled trip fails with
// ErrQuotationInUse.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.trips {
		if existing.QuotationID == trip.QuotationID && existing.Status != domain.TripStatusCancelled {
			return repository.ErrQuotationInUse
		}
	}
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	m.trips[trip.ID] = trip
	return nil
}

// GetTrip returns the trip by ID (for test assertions).
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// CountTrips returns the number of stored trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// Ensure mocks implement the repository interfaces.
var (
	_ repository.ServiceTypeRepository = (*MockServiceTypeRepository)(nil)
	_ repository.QuotationRepository   = (*MockQuotationRepository)(nil)
	_ repository.TripRepository        = (*MockTripRepository)(nil)
)
