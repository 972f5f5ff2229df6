package services

import "errors"

// Shared errors used across services and HTTP mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed          = errors.New("validation failed")
	ErrPasswordTooShort          = errors.New("password is too short")
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrVenueNameRequired         = errors.New("venue name is required")
	ErrTeamNameRequired          = errors.New("team name is required")
	ErrRegistrationNotOpen       = errors.New("tournament registration is not open")
	ErrTournamentFull            = errors.New("tournament registration is full")
	ErrScheduleAlreadyGenerated  = errors.New("tournament schedule already generated")
	ErrNotEnoughTeams            = errors.New("not enough registered teams to generate a schedule")
	ErrBookingNotActionable      = errors.New("booking can no longer be approved or rejected")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrPaymentOverpays           = errors.New("payment exceeds the remaining balance")

	// Conflicts
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrVenueNameConflict      = errors.New("venue name is already in use")
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrBookingSlotConflict    = errors.New("the venue is already booked for this slot")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity-specific lookups
	ErrUserNotFound       = errors.New("user not found")
	ErrVenueNotFound      = errors.New("venue not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")

	// Tournament lifecycle
	ErrTournamentInvalidRegDate   = errors.New("tournament registration end date must be after start date")
	ErrTournamentInvalidDateRange = errors.New("tournament end date must be after start date")
	ErrTournamentDatesRequired    = errors.New("tournament dates are required")
	ErrTournamentInvalidCapacity  = errors.New("tournament max teams must be positive")
	ErrTournamentInvalidFormat    = errors.New("unsupported tournament format")
)
