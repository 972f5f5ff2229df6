package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/devakhil7/plyr-sub003/models"
)

var ErrMatchNotFound = errors.New("match not found")

type ListMatchesFilter struct {
	HostID  *int
	VenueID *int
	Sport   *string
	Limit   int
	Offset  int
}

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter ListMatchesFilter) ([]models.Match, error)
	UpdateScore(ctx context.Context, id int, scoreA, scoreB int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, host_id, venue_id, sport, date, start_time, duration_minutes, max_players, score_a, score_b, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches (host_id, venue_id, sport, date, start_time, duration_minutes, max_players)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		m.HostID, m.VenueID, m.Sport, m.Date, m.StartTime, m.DurationMinutes, m.MaxPlayers,
	).Scan(&m.ID, &m.CreatedAt)
}

func scanMatch(scanner interface{ Scan(...interface{}) error }, m *models.Match) error {
	return scanner.Scan(
		&m.ID, &m.HostID, &m.VenueID, &m.Sport, &m.Date, &m.StartTime,
		&m.DurationMinutes, &m.MaxPlayers, &m.ScoreA, &m.ScoreB, &m.CreatedAt,
	)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	m := &models.Match{}
	err := scanMatch(r.db.QueryRowContext(ctx, query, id), m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter ListMatchesFilter) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE 1=1`
	args := []interface{}{}
	argID := 1

	if filter.HostID != nil {
		query += fmt.Sprintf(" AND host_id = $%d", argID)
		args = append(args, *filter.HostID)
		argID++
	}
	if filter.VenueID != nil {
		query += fmt.Sprintf(" AND venue_id = $%d", argID)
		args = append(args, *filter.VenueID)
		argID++
	}
	if filter.Sport != nil {
		query += fmt.Sprintf(" AND sport = $%d", argID)
		args = append(args, *filter.Sport)
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

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := scanMatch(rows, &m); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateScore(ctx context.Context, id int, scoreA, scoreB int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET score_a = $1, score_b = $2 WHERE id = $3`, scoreA, scoreB, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
