package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/devakhil7/plyr-sub003/live"
	"github.com/devakhil7/plyr-sub003/models"
	"github.com/devakhil7/plyr-sub003/pricing"
	"github.com/devakhil7/plyr-sub003/repositories"
	"github.com/devakhil7/plyr-sub003/status"
	"github.com/devakhil7/plyr-sub003/timeutil"
)

type CreateBookingInput struct {
	VenueID         int       `json:"venue_id"`
	Date            time.Time `json:"date"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

type BookingService interface {
	Create(ctx context.Context, userID int, input CreateBookingInput) (*models.Booking, error)
	GetByID(ctx context.Context, id int) (*models.Booking, error)
	List(ctx context.Context, filter repositories.ListBookingsFilter) ([]models.Booking, error)
	Quote(ctx context.Context, input CreateBookingInput) (int64, error)
	// Approve and Reject record the venue owner's decision. Both fail with
	// ErrBookingNotActionable once the booking's start time has passed.
	Approve(ctx context.Context, requesterID, bookingID int) (*models.Booking, error)
	Reject(ctx context.Context, requesterID, bookingID int) (*models.Booking, error)
	// LapseOverdue persists the lapsed state for pending bookings whose start
	// time has passed. Run periodically; reads stay correct without it because
	// statuses are resolved against the clock on every read.
	LapseOverdue(ctx context.Context) (int64, error)
}

type bookingService struct {
	bookingRepo repositories.BookingRepository
	venueRepo   repositories.VenueRepository
	hub         *live.Hub
	logger      *slog.Logger
}

func NewBookingService(bookingRepo repositories.BookingRepository, venueRepo repositories.VenueRepository, hub *live.Hub, logger *slog.Logger) BookingService {
	return &bookingService{bookingRepo: bookingRepo, venueRepo: venueRepo, hub: hub, logger: logger}
}

func (s *bookingService) validateInput(input CreateBookingInput) error {
	if input.Date.IsZero() {
		return fmt.Errorf("%w: booking date is required", ErrValidationFailed)
	}
	if _, err := timeutil.ParseMinuteOfDay(input.StartTime); err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if input.DurationMinutes <= 0 {
		return fmt.Errorf("%w: booking duration must be positive", ErrValidationFailed)
	}
	return nil
}

// priceFor resolves the venue's rules and prices the requested slot.
func (s *bookingService) priceFor(ctx context.Context, input CreateBookingInput) (int64, error) {
	venue, err := s.venueRepo.GetByID(ctx, input.VenueID)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return 0, ErrVenueNotFound
		}
		return 0, err
	}
	rules, err := s.venueRepo.ListRules(ctx, input.VenueID)
	if err != nil {
		return 0, err
	}
	price, err := pricing.BookingPrice(venue.BasePricePerHour, models.RulesToPricing(rules), input.Date, input.StartTime, input.DurationMinutes)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return price, nil
}

func (s *bookingService) Quote(ctx context.Context, input CreateBookingInput) (int64, error) {
	if err := s.validateInput(input); err != nil {
		return 0, err
	}
	return s.priceFor(ctx, input)
}

func (s *bookingService) Create(ctx context.Context, userID int, input CreateBookingInput) (*models.Booking, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	price, err := s.priceFor(ctx, input)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		VenueID:         input.VenueID,
		UserID:          userID,
		Date:            input.Date,
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		TotalPrice:      price,
		Status:          status.BookingPendingApproval,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, repositories.ErrBookingSlotConflict) {
			return nil, ErrBookingSlotConflict
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.resolve(booking, time.Now())
	return booking, nil
}

// resolve replaces the stored status with the clock-resolved one and sets the
// actionability flag.
func (s *bookingService) resolve(b *models.Booking, now time.Time) {
	resolved, err := status.ComputeBookingStatus(b.Date, b.StartTime, b.Status, now)
	if err != nil {
		// Malformed stored time; keep the stored status rather than fail the
		// whole read.
		s.logger.Warn("could not resolve booking status", "booking_id", b.ID, "error", err)
		resolved = b.Status
	}
	b.Status = resolved
	b.Actionable = status.IsBookingActionable(resolved)
}

func (s *bookingService) GetByID(ctx context.Context, id int) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	s.resolve(booking, time.Now())
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, filter repositories.ListBookingsFilter) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range bookings {
		s.resolve(&bookings[i], now)
	}
	return bookings, nil
}

func (s *bookingService) decide(ctx context.Context, requesterID, bookingID int, next status.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	venue, err := s.venueRepo.GetByID(ctx, booking.VenueID)
	if err != nil {
		return nil, err
	}
	if venue.OwnerID != requesterID {
		return nil, ErrForbiddenOperation
	}

	resolved, err := status.ComputeBookingStatus(booking.Date, booking.StartTime, booking.Status, time.Now())
	if err != nil {
		return nil, err
	}
	if !status.IsBookingActionable(resolved) {
		return nil, ErrBookingNotActionable
	}

	if err := s.bookingRepo.UpdateStatus(ctx, nil, bookingID, next); err != nil {
		return nil, err
	}

	booking.Status = next
	booking.Actionable = false

	if s.hub != nil {
		s.hub.BroadcastToRoom(live.BookingRoom(booking.ID), "BOOKING_DECIDED", booking)
	}
	return booking, nil
}

func (s *bookingService) Approve(ctx context.Context, requesterID, bookingID int) (*models.Booking, error) {
	return s.decide(ctx, requesterID, bookingID, status.BookingApproved)
}

func (s *bookingService) Reject(ctx context.Context, requesterID, bookingID int) (*models.Booking, error) {
	return s.decide(ctx, requesterID, bookingID, status.BookingRejected)
}

func (s *bookingService) LapseOverdue(ctx context.Context) (int64, error) {
	now := time.Now()
	candidates, err := s.bookingRepo.ListPendingStartedBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending bookings: %w", err)
	}

	var lapsed []int
	for _, b := range candidates {
		resolved, err := status.ComputeBookingStatus(b.Date, b.StartTime, b.Status, now)
		if err != nil {
			s.logger.Warn("skipping booking with malformed start time", "booking_id", b.ID, "error", err)
			continue
		}
		if resolved == status.BookingLapsed {
			lapsed = append(lapsed, b.ID)
		}
	}

	count, err := s.bookingRepo.MarkLapsed(ctx, lapsed)
	if err != nil {
		return 0, fmt.Errorf("failed to mark bookings lapsed: %w", err)
	}
	if count > 0 {
		s.logger.Info("lapsed overdue bookings", "count", count)
	}
	return count, nil
}
