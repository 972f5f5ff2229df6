package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/devakhil7/plyr-sub003/models"
)

var ErrScheduleEntryNotFound = errors.New("schedule entry not found")

type ScheduleRepository interface {
	CreateEntry(ctx context.Context, exec SQLExecutor, entry *models.ScheduleEntry) error
	CreateAssignment(ctx context.Context, exec SQLExecutor, assignment *models.SlotAssignment) error
	ListEntries(ctx context.Context, tournamentID int) ([]models.ScheduleEntry, error)
	ListAssignments(ctx context.Context, tournamentID int) ([]models.SlotAssignment, error)
	UpdateScore(ctx context.Context, entryID int, scoreA, scoreB int) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) ScheduleRepository {
	return &postgresScheduleRepository{db: db}
}

func (r *postgresScheduleRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresScheduleRepository) CreateEntry(ctx context.Context, exec SQLExecutor, e *models.ScheduleEntry) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO schedule_entries (tournament_id, round, match_order, slot_a, slot_b, group_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	return executor.QueryRowContext(ctx, query,
		e.TournamentID, e.Round, e.MatchOrder, e.SlotA, e.SlotB, e.GroupName,
	).Scan(&e.ID)
}

func (r *postgresScheduleRepository) CreateAssignment(ctx context.Context, exec SQLExecutor, a *models.SlotAssignment) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO slot_assignments (tournament_id, slot, team_id, team_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return executor.QueryRowContext(ctx, query,
		a.TournamentID, a.Slot, a.TeamID, a.TeamName,
	).Scan(&a.ID)
}

func (r *postgresScheduleRepository) ListEntries(ctx context.Context, tournamentID int) ([]models.ScheduleEntry, error) {
	query := `
		SELECT id, tournament_id, round, match_order, slot_a, slot_b, group_name, score_a, score_b
		FROM schedule_entries
		WHERE tournament_id = $1
		ORDER BY match_order ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.ScheduleEntry, 0)
	for rows.Next() {
		var e models.ScheduleEntry
		if scanErr := rows.Scan(
			&e.ID, &e.TournamentID, &e.Round, &e.MatchOrder, &e.SlotA, &e.SlotB,
			&e.GroupName, &e.ScoreA, &e.ScoreB,
		); scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresScheduleRepository) ListAssignments(ctx context.Context, tournamentID int) ([]models.SlotAssignment, error) {
	query := `
		SELECT id, tournament_id, slot, team_id, team_name
		FROM slot_assignments
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.SlotAssignment, 0)
	for rows.Next() {
		var a models.SlotAssignment
		if scanErr := rows.Scan(&a.ID, &a.TournamentID, &a.Slot, &a.TeamID, &a.TeamName); scanErr != nil {
			return nil, scanErr
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *postgresScheduleRepository) UpdateScore(ctx context.Context, entryID int, scoreA, scoreB int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE schedule_entries SET score_a = $1, score_b = $2 WHERE id = $3`,
		scoreA, scoreB, entryID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScheduleEntryNotFound)
}

func (r *postgresScheduleRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx,
		`DELETE FROM slot_assignments WHERE tournament_id = $1`, tournamentID); err != nil {
		return err
	}
	_, err := executor.ExecContext(ctx,
		`DELETE FROM schedule_entries WHERE tournament_id = $1`, tournamentID)
	return err
}
