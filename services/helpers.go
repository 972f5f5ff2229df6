package services

import (
	"fmt"
	"time"

	"github.com/devakhil7/plyr-sub003/models"
	"github.com/devakhil7/plyr-sub003/storage"
)

func validateTournamentDates(reg, start, end time.Time) error {
	if reg.IsZero() || start.IsZero() || end.IsZero() {
		return ErrTournamentDatesRequired
	}
	if reg.After(start) {
		return fmt.Errorf("%w: registration close (%s) cannot be after start date (%s)", ErrTournamentInvalidRegDate, reg.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start date (%s) must be before end date (%s)", ErrTournamentInvalidDateRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}

func isValidTournamentTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.TournamentStatusSoon:         {models.TournamentStatusRegistration, models.TournamentStatusCanceled},
		models.TournamentStatusRegistration: {models.TournamentStatusActive, models.TournamentStatusCanceled},
		models.TournamentStatusActive:       {models.TournamentStatusCompleted, models.TournamentStatusCanceled},
		models.TournamentStatusCompleted:    {},
		models.TournamentStatusCanceled:     {},
	}
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

// --- Public URL population from stored object keys ---

func populateVenuePhotoURL(venue *models.Venue, uploader storage.FileUploader) {
	if venue != nil && venue.PhotoKey != nil && *venue.PhotoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*venue.PhotoKey)
		if url != "" {
			venue.PhotoURL = &url
		}
	}
}

func populateUserDetails(user *models.User, uploader storage.FileUploader) {
	if user == nil {
		return
	}
	user.PasswordHash = ""
	if user.LogoKey != nil && *user.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*user.LogoKey)
		if url != "" {
			user.LogoURL = &url
		}
	}
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}

func populateTournamentLogoURL(tournament *models.Tournament, uploader storage.FileUploader) {
	if tournament != nil && tournament.LogoKey != nil && *tournament.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*tournament.LogoKey)
		if url != "" {
			tournament.LogoURL = &url
		}
	}
}
