package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/devakhil7/plyr-sub003/models"
	"github.com/devakhil7/plyr-sub003/status"
	"github.com/lib/pq"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingSlotConflict = errors.New("venue already booked for this slot")
)

type ListBookingsFilter struct {
	UserID  *int
	VenueID *int
	Status  *status.BookingStatus
	Limit   int
	Offset  int
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id int) (*models.Booking, error)
	List(ctx context.Context, filter ListBookingsFilter) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, s status.BookingStatus) error
	AddAmountPaid(ctx context.Context, exec SQLExecutor, id int, amount int64) error
	SetPaymentOrderID(ctx context.Context, id int, orderID string) error
	ListPendingStartedBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
	MarkLapsed(ctx context.Context, ids []int) (int64, error)
}

type postgresBookingRepository struct {
	db *sql.DB
}

func NewPostgresBookingRepository(db *sql.DB) BookingRepository {
	return &postgresBookingRepository{db: db}
}

const bookingColumns = `id, venue_id, user_id, date, start_time, duration_minutes, total_price, amount_paid, status, payment_order_id, created_at`

func (r *postgresBookingRepository) Create(ctx context.Context, b *models.Booking) error {
	query := `
		INSERT INTO bookings (venue_id, user_id, date, start_time, duration_minutes, total_price, amount_paid, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		b.VenueID, b.UserID, b.Date, b.StartTime, b.DurationMinutes,
		b.TotalPrice, b.AmountPaid, b.Status,
	).Scan(&b.ID, &b.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrBookingSlotConflict
	}
	return err
}

func scanBooking(scanner interface{ Scan(...interface{}) error }, b *models.Booking) error {
	return scanner.Scan(
		&b.ID, &b.VenueID, &b.UserID, &b.Date, &b.StartTime, &b.DurationMinutes,
		&b.TotalPrice, &b.AmountPaid, &b.Status, &b.PaymentOrderID, &b.CreatedAt,
	)
}

func (r *postgresBookingRepository) GetByID(ctx context.Context, id int) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b := &models.Booking{}
	err := scanBooking(r.db.QueryRowContext(ctx, query, id), b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *postgresBookingRepository) List(ctx context.Context, filter ListBookingsFilter) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []interface{}{}
	argID := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argID)
		args = append(args, *filter.UserID)
		argID++
	}
	if filter.VenueID != nil {
		query += fmt.Sprintf(" AND venue_id = $%d", argID)
		args = append(args, *filter.VenueID)
		argID++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}

	query += " ORDER BY date DESC, start_time DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var b models.Booking
		if scanErr := scanBooking(rows, &b); scanErr != nil {
			return nil, scanErr
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *postgresBookingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresBookingRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, s status.BookingStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, s, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBookingNotFound)
}

func (r *postgresBookingRepository) AddAmountPaid(ctx context.Context, exec SQLExecutor, id int, amount int64) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE bookings SET amount_paid = amount_paid + $1 WHERE id = $2`, amount, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBookingNotFound)
}

func (r *postgresBookingRepository) SetPaymentOrderID(ctx context.Context, id int, orderID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_order_id = $1 WHERE id = $2`, orderID, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBookingNotFound)
}

// ListPendingStartedBefore returns pending bookings whose calendar date is on
// or before the cutoff date. The caller resolves exact start instants; the
// date filter just keeps the sweep from scanning the whole table.
func (r *postgresBookingRepository) ListPendingStartedBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND date <= $2`

	rows, err := r.db.QueryContext(ctx, query, status.BookingPendingApproval, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var b models.Booking
		if scanErr := scanBooking(rows, &b); scanErr != nil {
			return nil, scanErr
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// MarkLapsed persists the lapsed state for bookings the sweep resolved. The
// status guard keeps a concurrent host decision from being overwritten.
func (r *postgresBookingRepository) MarkLapsed(ctx context.Context, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1 WHERE id = ANY($2) AND status = $3`,
		status.BookingLapsed, pq.Array(ids), status.BookingPendingApproval,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
