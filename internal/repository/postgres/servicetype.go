package postgres

import (
	"context"
	"database/sql"
	"errors"

	"corporate/internal/domain"
	"corporate/internal/repository"
)

// ServiceTypeRepository is a PostgreSQL implementation of
// repository.ServiceTypeRepository.
type ServiceTypeRepository struct {
	q Querier
}

// NewServiceTypeRepository creates a new PostgreSQL service type repository.
func NewServiceTypeRepository(db *sql.DB) *ServiceTypeRepository {
	return &ServiceTypeRepository{q: db}
}

// Seed inserts the given service types, skipping names that already exist.
// ON CONFLICT keeps the operation idempotent across concurrent callers.
func (r *ServiceTypeRepository) Seed(ctx context.Context, types []domain.ServiceType) error {
	query := `
		INSERT INTO service_types (id, name, typename, max_weight)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
	`

	for _, t := range types {
		if _, err := r.q.ExecContext(ctx, query, t.ID, t.Name, t.Typename, t.MaxWeight); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a service type by ID.
func (r *ServiceTypeRepository) GetByID(ctx context.Context, id string) (*domain.ServiceType, error) {
	query := `SELECT id, name, typename, max_weight FROM service_types WHERE id = $1`

	var st domain.ServiceType
	err := r.q.QueryRowContext(ctx, query, id).Scan(&st.ID, &st.Name, &st.Typename, &st.MaxWeight)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &st, nil
}

// List retrieves all service types ordered ascending by max weight.
func (r *ServiceTypeRepository) List(ctx context.Context) ([]domain.ServiceType, error) {
	query := `SELECT id, name, typename, max_weight FROM service_types ORDER BY max_weight ASC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.ServiceType
	for rows.Next() {
		var st domain.ServiceType
		if err := rows.Scan(&st.ID, &st.Name, &st.Typename, &st.MaxWeight); err != nil {
			return nil, err
		}
		types = append(types, st)
	}

	return types, rows.Err()
}

// Ensure ServiceTypeRepository implements repository.ServiceTypeRepository.
var _ repository.ServiceTypeRepository = (*ServiceTypeRepository)(nil)
