package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/devakhil7/plyr-sub003/models"
	"github.com/devakhil7/plyr-sub003/pricing"
	"github.com/devakhil7/plyr-sub003/repositories"
	"github.com/devakhil7/plyr-sub003/storage"
	"github.com/devakhil7/plyr-sub003/timeutil"
)

type CreateVenueInput struct {
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	Location         string  `json:"location"`
	Sport            string  `json:"sport"`
	BasePricePerHour float64 `json:"base_price_per_hour"`
}

type VenueService interface {
	Create(ctx context.Context, ownerID int, input CreateVenueInput) (*models.Venue, error)
	Update(ctx context.Context, requesterID, venueID int, input CreateVenueInput) (*models.Venue, error)
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	List(ctx context.Context, filter repositories.ListVenuesFilter) ([]models.Venue, error)
	// ReplaceRules swaps the venue's pricing rules. The list order is kept
	// verbatim: rule position decides which rule wins when windows overlap.
	ReplaceRules(ctx context.Context, requesterID, venueID int, rules []models.VenuePricingRule) ([]models.VenuePricingRule, error)
	PriceRange(ctx context.Context, venueID int) (pricing.RangeDisplay, error)
	UploadPhoto(ctx context.Context, requesterID, venueID int, contentType string, reader io.Reader) (*models.Venue, error)
}

type venueService struct {
	venueRepo repositories.VenueRepository
	uploader  storage.FileUploader
}

func NewVenueService(venueRepo repositories.VenueRepository, uploader storage.FileUploader) VenueService {
	return &venueService{venueRepo: venueRepo, uploader: uploader}
}

func (s *venueService) Create(ctx context.Context, ownerID int, input CreateVenueInput) (*models.Venue, error) {
	if input.Name == "" {
		return nil, ErrVenueNameRequired
	}
	if input.BasePricePerHour <= 0 {
		return nil, fmt.Errorf("%w: base price per hour must be positive", ErrValidationFailed)
	}

	venue := &models.Venue{
		OwnerID:          ownerID,
		Name:             input.Name,
		Description:      input.Description,
		Location:         input.Location,
		Sport:            input.Sport,
		BasePricePerHour: input.BasePricePerHour,
	}

	if err := s.venueRepo.Create(ctx, venue); err != nil {
		if errors.Is(err, repositories.ErrVenueNameConflict) {
			return nil, ErrVenueNameConflict
		}
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) Update(ctx context.Context, requesterID, venueID int, input CreateVenueInput) (*models.Venue, error) {
	if input.Name == "" {
		return nil, ErrVenueNameRequired
	}
	if input.BasePricePerHour <= 0 {
		return nil, fmt.Errorf("%w: base price per hour must be positive", ErrValidationFailed)
	}

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if venue.OwnerID != requesterID {
		return nil, ErrForbiddenOperation
	}

	venue.Name = input.Name
	venue.Description = input.Description
	venue.Location = input.Location
	venue.Sport = input.Sport
	venue.BasePricePerHour = input.BasePricePerHour

	if err := s.venueRepo.Update(ctx, venue); err != nil {
		if errors.Is(err, repositories.ErrVenueNameConflict) {
			return nil, ErrVenueNameConflict
		}
		return nil, fmt.Errorf("failed to update venue %d: %w", venueID, err)
	}
	populateVenuePhotoURL(venue, s.uploader)
	return venue, nil
}

func (s *venueService) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	rules, err := s.venueRepo.ListRules(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing rules for venue %d: %w", id, err)
	}
	venue.PricingRules = rules
	populateVenuePhotoURL(venue, s.uploader)
	return venue, nil
}

func (s *venueService) List(ctx context.Context, filter repositories.ListVenuesFilter) ([]models.Venue, error) {
	venues, err := s.venueRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range venues {
		populateVenuePhotoURL(&venues[i], s.uploader)
	}
	return venues, nil
}

func validatePricingRule(rule models.VenuePricingRule) error {
	if len(rule.Days) == 0 {
		return fmt.Errorf("%w: pricing rule needs at least one day", ErrValidationFailed)
	}
	start, err := timeutil.ParseMinuteOfDay(rule.StartTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	end, err := timeutil.ParseMinuteOfDay(rule.EndTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if end <= start {
		return fmt.Errorf("%w: pricing rule window must end after it starts", ErrValidationFailed)
	}
	if rule.PricePerHour <= 0 {
		return fmt.Errorf("%w: pricing rule price must be positive", ErrValidationFailed)
	}
	return nil
}

func (s *venueService) ReplaceRules(ctx context.Context, requesterID, venueID int, rules []models.VenuePricingRule) ([]models.VenuePricingRule, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if venue.OwnerID != requesterID {
		return nil, ErrForbiddenOperation
	}

	for _, rule := range rules {
		if err := validatePricingRule(rule); err != nil {
			return nil, err
		}
	}

	if err := s.venueRepo.ReplaceRules(ctx, venueID, rules); err != nil {
		return nil, fmt.Errorf("failed to replace pricing rules for venue %d: %w", venueID, err)
	}
	return rules, nil
}

func (s *venueService) PriceRange(ctx context.Context, venueID int) (pricing.RangeDisplay, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return pricing.RangeDisplay{}, ErrVenueNotFound
		}
		return pricing.RangeDisplay{}, err
	}
	rules, err := s.venueRepo.ListRules(ctx, venueID)
	if err != nil {
		return pricing.RangeDisplay{}, err
	}
	return pricing.PriceRange(venue.BasePricePerHour, models.RulesToPricing(rules)), nil
}

func (s *venueService) UploadPhoto(ctx context.Context, requesterID, venueID int, contentType string, reader io.Reader) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if venue.OwnerID != requesterID {
		return nil, ErrForbiddenOperation
	}

	ext, err := storage.ExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("venues/%d/photo%s", venueID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload venue photo: %w", err)
	}

	if venue.PhotoKey != nil && *venue.PhotoKey != key {
		_ = s.uploader.Delete(ctx, *venue.PhotoKey)
	}

	if err := s.venueRepo.UpdatePhotoKey(ctx, venueID, &key); err != nil {
		return nil, err
	}
	venue.PhotoKey = &key
	populateVenuePhotoURL(venue, s.uploader)
	return venue, nil
}
