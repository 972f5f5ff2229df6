package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/devakhil7/plyr-sub003/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already taken in this tournament")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error)
	CountByTournament(ctx context.Context, tournamentID int) (int, error)
	AddAmountPaid(ctx context.Context, exec SQLExecutor, id int, amount int64) error
	UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, tournament_id, name, captain_id, amount_paid, created_at, logo_key`

func (r *postgresTeamRepository) Create(ctx context.Context, t *models.Team) error {
	query := `
		INSERT INTO teams (tournament_id, name, captain_id, amount_paid)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.TournamentID, t.Name, t.CaptainID, t.AmountPaid,
	).Scan(&t.ID, &t.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrTeamNameConflict
	}
	return err
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	t := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.TournamentID, &t.Name, &t.CaptainID, &t.AmountPaid, &t.CreatedAt, &t.LogoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE tournament_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if scanErr := rows.Scan(
			&t.ID, &t.TournamentID, &t.Name, &t.CaptainID, &t.AmountPaid, &t.CreatedAt, &t.LogoKey,
		); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM teams WHERE tournament_id = $1`, tournamentID).Scan(&count)
	return count, err
}

func (r *postgresTeamRepository) AddAmountPaid(ctx context.Context, exec SQLExecutor, id int, amount int64) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}
	result, err := executor.ExecContext(ctx,
		`UPDATE teams SET amount_paid = amount_paid + $1 WHERE id = $2`, amount, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
