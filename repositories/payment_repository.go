package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/devakhil7/plyr-sub003/models"
)

type PaymentRepository interface {
	// InsertCredit records a verified callback. payment_id carries a unique
	// constraint and the insert uses ON CONFLICT DO NOTHING, so a retried
	// callback for the same gateway payment reports inserted=false and the
	// caller must skip crediting. This is the at-most-once guarantee the
	// signature verifier's contract requires.
	InsertCredit(ctx context.Context, exec SQLExecutor, payment *models.Payment) (inserted bool, err error)
	ListByBooking(ctx context.Context, bookingID int) ([]models.Payment, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.Payment, error)
}

type postgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

func (r *postgresPaymentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPaymentRepository) InsertCredit(ctx context.Context, exec SQLExecutor, p *models.Payment) (bool, error) {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO payments (payment_id, order_id, amount, purpose, booking_id, team_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (payment_id) DO NOTHING
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		p.PaymentID, p.OrderID, p.Amount, p.Purpose, p.BookingID, p.TeamID,
	).Scan(&p.ID, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

const paymentColumns = `id, payment_id, order_id, amount, purpose, booking_id, team_id, created_at`

func (r *postgresPaymentRepository) listWhere(ctx context.Context, where string, arg interface{}) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE ` + where + ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var p models.Payment
		if scanErr := rows.Scan(
			&p.ID, &p.PaymentID, &p.OrderID, &p.Amount, &p.Purpose,
			&p.BookingID, &p.TeamID, &p.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *postgresPaymentRepository) ListByBooking(ctx context.Context, bookingID int) ([]models.Payment, error) {
	return r.listWhere(ctx, "booking_id = $1", bookingID)
}

func (r *postgresPaymentRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Payment, error) {
	return r.listWhere(ctx, "team_id = $1", teamID)
}
