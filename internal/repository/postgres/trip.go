package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	"corporate/internal/domain"
	"corporate/internal/repository"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// activeQuotationIndex enforces at most one non-cancelled trip per quotation.
const activeQuotationIndex = "uq_trips_active_quotation"

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// Create persists a new trip. The insert itself is the conditional write
// that guards the quotation binding: two concurrent creates against the
// same quotation cannot both pass the partial unique index.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (
			id, status, payer_id, payment_mode, quotation_id, service_type_id,
			order_id, source_address, destination_address, sender, receiver,
			driver, trip_source, products, total_order_price, cash_collected,
			tip_amount, cancel_reason
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	args, err := tripArgs(trip)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == activeQuotationIndex {
			return repository.ErrQuotationInUse
		}
		return err
	}

	return nil
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `
		SELECT id, status, payer_id, payment_mode, quotation_id, service_type_id,
		       order_id, source_address, destination_address, sender, receiver,
		       driver, trip_source, products, total_order_price, cash_collected,
		       tip_amount, cancel_reason
		FROM trips WHERE id = $1
	`

	row := r.q.QueryRowContext(ctx, query, id)
	trip, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return trip, nil
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET status = $2, payer_id = $3, payment_mode = $4, quotation_id = $5,
		    service_type_id = $6, order_id = $7, source_address = $8,
		    destination_address = $9, sender = $10, receiver = $11, driver = $12,
		    trip_source = $13, products = $14, total_order_price = $15,
		    cash_collected = $16, tip_amount = $17, cancel_reason = $18
		WHERE id = $1
	`

	args, err := tripArgs(trip)
	if err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == activeQuotationIndex {
			return repository.ErrQuotationInUse
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// tripArgs builds the ordered argument list shared by Create and Update.
func tripArgs(trip *domain.Trip) ([]any, error) {
	sender, err := json.Marshal(trip.Sender)
	if err != nil {
		return nil, err
	}

	receiver, err := json.Marshal(trip.Receiver)
	if err != nil {
		return nil, err
	}

	var driver []byte
	if trip.Driver != nil {
		driver, err = json.Marshal(trip.Driver)
		if err != nil {
			return nil, err
		}
	}

	var products []byte
	if trip.Products != nil {
		products, err = json.Marshal(trip.Products)
		if err != nil {
			return nil, err
		}
	}

	return []any{
		trip.ID,
		int(trip.Status),
		trip.PayerID,
		int(trip.PaymentMode),
		trip.QuotationID,
		trip.ServiceTypeID,
		nullString(trip.OrderID),
		trip.SourceAddress,
		trip.DestinationAddress,
		sender,
		receiver,
		nullBytes(driver),
		nullString(trip.TripSource),
		nullBytes(products),
		nullFloat(trip.TotalOrderPrice),
		nullFloat(trip.CashCollected),
		nullFloat(trip.TipAmount),
		nullString(trip.CancelReason),
	}, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var trip domain.Trip
	var status, paymentMode int
	var orderID, tripSource, cancelReason sql.NullString
	var sender, receiver []byte
	var driver, products []byte
	var totalOrderPrice, cashCollected, tipAmount sql.NullFloat64

	err := row.Scan(
		&trip.ID,
		&status,
		&trip.PayerID,
		&paymentMode,
		&trip.QuotationID,
		&trip.ServiceTypeID,
		&orderID,
		&trip.SourceAddress,
		&trip.DestinationAddress,
		&sender,
		&receiver,
		&driver,
		&tripSource,
		&products,
		&totalOrderPrice,
		&cashCollected,
		&tipAmount,
		&cancelReason,
	)
	if err != nil {
		return nil, err
	}

	trip.Status = domain.TripStatus(status)
	trip.PaymentMode = domain.PaymentMode(paymentMode)
	trip.OrderID = orderID.String
	trip.TripSource = tripSource.String
	trip.CancelReason = cancelReason.String

	if err := json.Unmarshal(sender, &trip.Sender); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(receiver, &trip.Receiver); err != nil {
		return nil, err
	}
	if driver != nil {
		trip.Driver = &domain.Contact{}
		if err := json.Unmarshal(driver, trip.Driver); err != nil {
			return nil, err
		}
	}
	if products != nil {
		if err := json.Unmarshal(products, &trip.Products); err != nil {
			return nil, err
		}
	}

	if totalOrderPrice.Valid {
		trip.TotalOrderPrice = &totalOrderPrice.Float64
	}
	if cashCollected.Valid {
		trip.CashCollected = &cashCollected.Float64
	}
	if tipAmount.Valid {
		trip.TipAmount = &tipAmount.Float64
	}

	return &trip, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullBytes(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
