package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/devakhil7/plyr-sub003/live"
	"github.com/devakhil7/plyr-sub003/models"
	"github.com/devakhil7/plyr-sub003/repositories"
	"github.com/devakhil7/plyr-sub003/status"
	"github.com/devakhil7/plyr-sub003/timeutil"
)

type CreateMatchInput struct {
	VenueID         *int      `json:"venue_id,omitempty"`
	Sport           string    `json:"sport"`
	Date            time.Time `json:"date"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	MaxPlayers      int       `json:"max_players"`
}

type UpdateScoreInput struct {
	ScoreA int `json:"score_a"`
	ScoreB int `json:"score_b"`
}

type MatchService interface {
	Create(ctx context.Context, hostID int, input CreateMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter repositories.ListMatchesFilter) ([]models.Match, error)
	UpdateScore(ctx context.Context, requesterID, matchID int, input UpdateScoreInput) (*models.Match, error)
}

type matchService struct {
	matchRepo repositories.MatchRepository
	hub       *live.Hub
	logger    *slog.Logger
}

func NewMatchService(matchRepo repositories.MatchRepository, hub *live.Hub, logger *slog.Logger) MatchService {
	return &matchService{matchRepo: matchRepo, hub: hub, logger: logger}
}

func (s *matchService) Create(ctx context.Context, hostID int, input CreateMatchInput) (*models.Match, error) {
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: match date is required", ErrValidationFailed)
	}
	if _, err := timeutil.ParseMinuteOfDay(input.StartTime); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if input.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: match duration must be positive", ErrValidationFailed)
	}
	if input.MaxPlayers <= 1 {
		return nil, fmt.Errorf("%w: match needs room for at least two players", ErrValidationFailed)
	}

	match := &models.Match{
		HostID:          hostID,
		VenueID:         input.VenueID,
		Sport:           input.Sport,
		Date:            input.Date,
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		MaxPlayers:      input.MaxPlayers,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.resolve(match, time.Now())
	return match, nil
}

// resolve derives the match's lifecycle state and listing label from the
// clock.
func (s *matchService) resolve(m *models.Match, now time.Time) {
	resolved, err := status.ComputeMatchStatus(m.Date, m.StartTime, m.DurationMinutes, now)
	if err != nil {
		s.logger.Warn("could not resolve match status", "match_id", m.ID, "error", err)
		return
	}
	m.Status = resolved
	m.DisplayLabel = status.MatchDisplayLabel(resolved)
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	s.resolve(match, time.Now())
	return match, nil
}

func (s *matchService) List(ctx context.Context, filter repositories.ListMatchesFilter) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range matches {
		s.resolve(&matches[i], now)
	}
	return matches, nil
}

func (s *matchService) UpdateScore(ctx context.Context, requesterID, matchID int, input UpdateScoreInput) (*models.Match, error) {
	if input.ScoreA < 0 || input.ScoreB < 0 {
		return nil, fmt.Errorf("%w: scores cannot be negative", ErrValidationFailed)
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.HostID != requesterID {
		return nil, ErrForbiddenOperation
	}

	if err := s.matchRepo.UpdateScore(ctx, matchID, input.ScoreA, input.ScoreB); err != nil {
		return nil, err
	}
	match.ScoreA = &input.ScoreA
	match.ScoreB = &input.ScoreB
	s.resolve(match, time.Now())

	if s.hub != nil {
		s.hub.BroadcastToRoom(live.MatchRoom(matchID), "MATCH_SCORE_UPDATED", match)
	}
	return match, nil
}
