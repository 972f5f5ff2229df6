package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/devakhil7/plyr-sub003/models"
	"github.com/devakhil7/plyr-sub003/payments"
	"github.com/devakhil7/plyr-sub003/repositories"
)

// PaymentCallbackInput is the client-relayed gateway callback plus the amount
// being credited, in whole currency units.
type PaymentCallbackInput struct {
	payments.Callback
	Amount int64 `json:"amount"`
}

type PaymentService interface {
	// RecordBookingOrder pins the gateway order id a booking's advance payment
	// will be verified against.
	RecordBookingOrder(ctx context.Context, bookingID int, orderID string) error
	// ConfirmBookingPayment verifies the callback signature and credits the
	// booking. A replayed callback for an already-credited payment id is a
	// no-op: the booking is returned unchanged and nothing is credited twice.
	ConfirmBookingPayment(ctx context.Context, bookingID int, input PaymentCallbackInput) (*models.Booking, error)
	// ConfirmTeamFeePayment verifies the callback signature and credits the
	// team's entry fee, with the same replay behaviour.
	ConfirmTeamFeePayment(ctx context.Context, teamID int, input PaymentCallbackInput) (*models.Team, error)
	ListByBooking(ctx context.Context, bookingID int) ([]models.Payment, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.Payment, error)
}

type paymentService struct {
	db             *sql.DB
	paymentRepo    repositories.PaymentRepository
	bookingRepo    repositories.BookingRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	secret         string
	logger         *slog.Logger
}

func NewPaymentService(
	db *sql.DB,
	paymentRepo repositories.PaymentRepository,
	bookingRepo repositories.BookingRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	secret string,
	logger *slog.Logger,
) PaymentService {
	return &paymentService{
		db:             db,
		paymentRepo:    paymentRepo,
		bookingRepo:    bookingRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		secret:         secret,
		logger:         logger,
	}
}

func (s *paymentService) RecordBookingOrder(ctx context.Context, bookingID int, orderID string) error {
	if orderID == "" {
		return fmt.Errorf("%w: order id is required", ErrValidationFailed)
	}
	err := s.bookingRepo.SetPaymentOrderID(ctx, bookingID, orderID)
	if errors.Is(err, repositories.ErrBookingNotFound) {
		return ErrBookingNotFound
	}
	return err
}

func (s *paymentService) verify(input PaymentCallbackInput) error {
	if input.OrderID == "" || input.PaymentID == "" {
		return fmt.Errorf("%w: order id and payment id are required", ErrValidationFailed)
	}
	if input.Amount <= 0 {
		return fmt.Errorf("%w: payment amount must be positive", ErrValidationFailed)
	}
	if !payments.Verify(input.Callback, s.secret) {
		return ErrPaymentVerificationFailed
	}
	return nil
}

func (s *paymentService) ConfirmBookingPayment(ctx context.Context, bookingID int, input PaymentCallbackInput) (*models.Booking, error) {
	if err := s.verify(input); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.PaymentOrderID == nil || *booking.PaymentOrderID != input.OrderID {
		return nil, fmt.Errorf("%w: order id does not match the booking", ErrPaymentVerificationFailed)
	}
	if input.Amount > booking.RemainingBalance() {
		return nil, ErrPaymentOverpays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	payment := &models.Payment{
		PaymentID: input.PaymentID,
		OrderID:   input.OrderID,
		Amount:    input.Amount,
		Purpose:   models.PaymentPurposeBooking,
		BookingID: &bookingID,
	}
	inserted, err := s.paymentRepo.InsertCredit(ctx, tx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	if !inserted {
		s.logger.Info("duplicate payment callback ignored", "payment_id", input.PaymentID, "booking_id", bookingID)
		return booking, nil
	}

	if err := s.bookingRepo.AddAmountPaid(ctx, tx, bookingID, input.Amount); err != nil {
		return nil, fmt.Errorf("failed to credit booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	booking.AmountPaid += input.Amount
	s.logger.Info("booking payment credited",
		"booking_id", bookingID, "payment_id", input.PaymentID, "amount", input.Amount)
	return booking, nil
}

func (s *paymentService) ConfirmTeamFeePayment(ctx context.Context, teamID int, input PaymentCallbackInput) (*models.Team, error) {
	if err := s.verify(input); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, team.TournamentID)
	if err != nil {
		return nil, err
	}
	remaining := tournament.EntryFee - team.AmountPaid
	if remaining < 0 {
		remaining = 0
	}
	if input.Amount > remaining {
		return nil, ErrPaymentOverpays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	payment := &models.Payment{
		PaymentID: input.PaymentID,
		OrderID:   input.OrderID,
		Amount:    input.Amount,
		Purpose:   models.PaymentPurposeTeamFee,
		TeamID:    &teamID,
	}
	inserted, err := s.paymentRepo.InsertCredit(ctx, tx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	if !inserted {
		s.logger.Info("duplicate payment callback ignored", "payment_id", input.PaymentID, "team_id", teamID)
		return team, nil
	}

	if err := s.teamRepo.AddAmountPaid(ctx, tx, teamID, input.Amount); err != nil {
		return nil, fmt.Errorf("failed to credit team fee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	team.AmountPaid += input.Amount
	s.logger.Info("team fee payment credited",
		"team_id", teamID, "payment_id", input.PaymentID, "amount", input.Amount)
	return team, nil
}

func (s *paymentService) ListByBooking(ctx context.Context, bookingID int) ([]models.Payment, error) {
	return s.paymentRepo.ListByBooking(ctx, bookingID)
}

func (s *paymentService) ListByTeam(ctx context.Context, teamID int) ([]models.Payment, error) {
	return s.paymentRepo.ListByTeam(ctx, teamID)
}
