package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/devakhil7/plyr-sub003/live"
	"github.com/devakhil7/plyr-sub003/models"
	"github.com/devakhil7/plyr-sub003/repositories"
	"github.com/devakhil7/plyr-sub003/schedule"
	"github.com/devakhil7/plyr-sub003/storage"
)

type CreateTournamentInput struct {
	Name        string                  `json:"name"`
	Description *string                 `json:"description,omitempty"`
	Sport       string                  `json:"sport"`
	VenueID     *int                    `json:"venue_id,omitempty"`
	Format      models.TournamentFormat `json:"format"`
	MaxTeams    int                     `json:"max_teams"`
	EntryFee    int64                   `json:"entry_fee"`
	RegDate     time.Time               `json:"reg_date"`
	StartDate   time.Time               `json:"start_date"`
	EndDate     time.Time               `json:"end_date"`
}

type RegisterTeamInput struct {
	Name string `json:"name"`
}

type TournamentService interface {
	Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	UpdateStatus(ctx context.Context, requesterID, tournamentID int, next models.TournamentStatus) (*models.Tournament, error)
	RegisterTeam(ctx context.Context, captainID, tournamentID int, input RegisterTeamInput) (*models.Team, error)
	// GenerateSchedule builds the bracket for the tournament's format from the
	// registered teams, assigns teams to first-round slots and persists the
	// whole schedule atomically. It can run only once per tournament.
	GenerateSchedule(ctx context.Context, requesterID, tournamentID int) (*models.Tournament, error)
	// UpdateEntryScore records a bracket fixture result and broadcasts it to
	// the tournament's live subscribers.
	UpdateEntryScore(ctx context.Context, requesterID, tournamentID, entryID int, scoreA, scoreB int) (*models.ScheduleEntry, error)
	UploadLogo(ctx context.Context, requesterID, tournamentID int, contentType string, reader io.Reader) (*models.Tournament, error)
	UploadTeamLogo(ctx context.Context, requesterID, teamID int, contentType string, reader io.Reader) (*models.Team, error)
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	scheduleRepo   repositories.ScheduleRepository
	uploader       storage.FileUploader
	hub            *live.Hub
	logger         *slog.Logger

	// rng feeds slot shuffling; tests inject a seeded source.
	rng *rand.Rand
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	scheduleRepo repositories.ScheduleRepository,
	uploader storage.FileUploader,
	hub *live.Hub,
	logger *slog.Logger,
	rng *rand.Rand,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		scheduleRepo:   scheduleRepo,
		uploader:       uploader,
		hub:            hub,
		logger:         logger,
		rng:            rng,
	}
}

func generatorForFormat(format models.TournamentFormat) (schedule.ScheduleGenerator, error) {
	switch format {
	case models.FormatKnockout:
		return schedule.NewKnockoutGenerator(), nil
	case models.FormatGroupKnockout:
		return schedule.NewGroupKnockoutGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrTournamentInvalidFormat, format)
	}
}

func (s *tournamentService) Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	}
	if input.MaxTeams <= 0 {
		return nil, ErrTournamentInvalidCapacity
	}
	if _, err := generatorForFormat(input.Format); err != nil {
		return nil, err
	}
	if err := validateTournamentDates(input.RegDate, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:        input.Name,
		Description: input.Description,
		Sport:       input.Sport,
		OrganizerID: organizerID,
		VenueID:     input.VenueID,
		Format:      input.Format,
		MaxTeams:    input.MaxTeams,
		EntryFee:    input.EntryFee,
		RegDate:     input.RegDate,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      models.TournamentStatusRegistration,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		teams, err := s.teamRepo.ListByTournament(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		tournament.Teams = teams
		return nil
	})
	g.Go(func() error {
		entries, err := s.scheduleRepo.ListEntries(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load schedule: %w", err)
		}
		tournament.Schedule = entries
		return nil
	})
	g.Go(func() error {
		assignments, err := s.scheduleRepo.ListAssignments(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load slot assignments: %w", err)
		}
		tournament.Assignments = assignments
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	populateTournamentLogoURL(tournament, s.uploader)
	for i := range tournament.Teams {
		populateTeamLogoURL(&tournament.Teams[i], s.uploader)
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		populateTournamentLogoURL(&tournaments[i], s.uploader)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateStatus(ctx context.Context, requesterID, tournamentID int, next models.TournamentStatus) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OrganizerID != requesterID {
		return nil, ErrForbiddenOperation
	}
	if !isValidTournamentTransition(tournament.Status, next) {
		return nil, fmt.Errorf("%w: cannot move tournament from %q to %q", ErrValidationFailed, tournament.Status, next)
	}
	if tournament.Status == next {
		return tournament, nil
	}

	// Canceling discards any generated schedule along with the status change.
	if next == models.TournamentStatusCanceled {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		if err := s.scheduleRepo.DeleteByTournament(ctx, tx, tournamentID); err != nil {
			return nil, fmt.Errorf("failed to discard schedule: %w", err)
		}
		if err := s.tournamentRepo.UpdateStatus(ctx, tx, tournamentID, next); err != nil {
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit cancellation: %w", err)
		}
	} else if err := s.tournamentRepo.UpdateStatus(ctx, nil, tournamentID, next); err != nil {
		return nil, err
	}

	tournament.Status = next
	return tournament, nil
}

func (s *tournamentService) RegisterTeam(ctx context.Context, captainID, tournamentID int, input RegisterTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status != models.TournamentStatusRegistration {
		return nil, ErrRegistrationNotOpen
	}

	count, err := s.teamRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if count >= tournament.MaxTeams {
		return nil, ErrTournamentFull
	}

	team := &models.Team{
		TournamentID: tournamentID,
		Name:         input.Name,
		CaptainID:    captainID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to register team: %w", err)
	}
	return team, nil
}

func (s *tournamentService) GenerateSchedule(ctx context.Context, requesterID, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OrganizerID != requesterID {
		return nil, ErrForbiddenOperation
	}

	existing, err := s.scheduleRepo.ListEntries(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrScheduleAlreadyGenerated
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}

	generator, err := generatorForFormat(tournament.Format)
	if err != nil {
		return nil, err
	}

	entries, err := generator.GenerateSchedule(ctx, schedule.GenerateScheduleParams{NumTeams: len(teams)})
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidTeamCount) || errors.Is(err, schedule.ErrTooManyGroups) {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("failed to generate %s schedule: %w", generator.GetName(), err)
	}

	seeds := make([]schedule.TeamSeed, len(teams))
	for i, t := range teams {
		seeds[i] = schedule.TeamSeed{ID: t.ID, Name: t.Name}
	}
	assignments := schedule.AssignTeamsToSlots(seeds, len(teams), true, s.rng)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		entry := &models.ScheduleEntry{
			TournamentID: tournamentID,
			Round:        e.Round,
			MatchOrder:   e.MatchOrder,
			SlotA:        e.SlotA,
			SlotB:        e.SlotB,
			GroupName:    e.GroupName,
		}
		if err := s.scheduleRepo.CreateEntry(ctx, tx, entry); err != nil {
			return nil, fmt.Errorf("failed to persist schedule entry %d: %w", e.MatchOrder, err)
		}
	}

	for _, a := range assignments {
		assignment := &models.SlotAssignment{
			TournamentID: tournamentID,
			Slot:         a.Slot,
		}
		if a.Team != nil {
			assignment.TeamID = &a.Team.ID
			assignment.TeamName = &a.Team.Name
		}
		if err := s.scheduleRepo.CreateAssignment(ctx, tx, assignment); err != nil {
			return nil, fmt.Errorf("failed to persist slot assignment %q: %w", a.Slot, err)
		}
	}

	if isValidTournamentTransition(tournament.Status, models.TournamentStatusActive) {
		if err := s.tournamentRepo.UpdateStatus(ctx, tx, tournamentID, models.TournamentStatusActive); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit schedule: %w", err)
	}

	s.logger.Info("generated tournament schedule",
		"tournament_id", tournamentID,
		"format", tournament.Format,
		"teams", len(teams),
		"matches", len(entries),
	)

	result, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.BroadcastToRoom(live.TournamentRoom(tournamentID), "BRACKET_GENERATED", result)
	}
	return result, nil
}

func (s *tournamentService) UpdateEntryScore(ctx context.Context, requesterID, tournamentID, entryID int, scoreA, scoreB int) (*models.ScheduleEntry, error) {
	if scoreA < 0 || scoreB < 0 {
		return nil, fmt.Errorf("%w: scores cannot be negative", ErrValidationFailed)
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OrganizerID != requesterID {
		return nil, ErrForbiddenOperation
	}

	entries, err := s.scheduleRepo.ListEntries(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	var entry *models.ScheduleEntry
	for i := range entries {
		if entries[i].ID == entryID {
			entry = &entries[i]
			break
		}
	}
	if entry == nil {
		return nil, ErrNotFound
	}

	if err := s.scheduleRepo.UpdateScore(ctx, entryID, scoreA, scoreB); err != nil {
		if errors.Is(err, repositories.ErrScheduleEntryNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	entry.ScoreA = &scoreA
	entry.ScoreB = &scoreB

	if s.hub != nil {
		s.hub.BroadcastToRoom(live.TournamentRoom(tournamentID), "BRACKET_SCORE_UPDATED", entry)
	}
	return entry, nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, requesterID, tournamentID int, contentType string, reader io.Reader) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OrganizerID != requesterID {
		return nil, ErrForbiddenOperation
	}

	ext, err := storage.ExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("tournaments/%d/logo%s", tournamentID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}

	if tournament.LogoKey != nil && *tournament.LogoKey != key {
		_ = s.uploader.Delete(ctx, *tournament.LogoKey)
	}

	if err := s.tournamentRepo.UpdateLogoKey(ctx, tournamentID, &key); err != nil {
		return nil, err
	}
	tournament.LogoKey = &key
	populateTournamentLogoURL(tournament, s.uploader)
	return tournament, nil
}

func (s *tournamentService) UploadTeamLogo(ctx context.Context, requesterID, teamID int, contentType string, reader io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if team.CaptainID != requesterID {
		return nil, ErrForbiddenOperation
	}

	ext, err := storage.ExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("teams/%d/logo%s", teamID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if team.LogoKey != nil && *team.LogoKey != key {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &key); err != nil {
		return nil, err
	}
	team.LogoKey = &key
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}
