package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"corporate/internal/domain"
	"corporate/internal/repository"
)

// QuotationRepository is a PostgreSQL implementation of
// repository.QuotationRepository.
type QuotationRepository struct {
	q Querier
}

// NewQuotationRepository creates a new PostgreSQL quotation repository.
func NewQuotationRepository(db *sql.DB) *QuotationRepository {
	return &QuotationRepository{q: db}
}

// Create persists a new quotation.
func (r *QuotationRepository) Create(ctx context.Context, quotation *domain.Quotation) error {
	query := `
		INSERT INTO quotations (id, eta, distance, services)
		VALUES ($1, $2, $3, $4)
	`

	services, err := json.Marshal(quotation.Services)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, query,
		quotation.ID,
		quotation.ETA,
		quotation.Distance,
		services,
	)

	return err
}

// GetByID retrieves a quotation by ID.
func (r *QuotationRepository) GetByID(ctx context.Context, id string) (*domain.Quotation, error) {
	query := `SELECT id, eta, distance, services FROM quotations WHERE id = $1`

	var quotation domain.Quotation
	var services []byte

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&quotation.ID,
		&quotation.ETA,
		&quotation.Distance,
		&services,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(services, &quotation.Services); err != nil {
		return nil, err
	}

	return &quotation, nil
}

// Ensure QuotationRepository implements repository.QuotationRepository.
var _ repository.QuotationRepository = (*QuotationRepository)(nil)
