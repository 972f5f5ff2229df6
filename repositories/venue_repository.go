package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/devakhil7/plyr-sub003/models"
	"github.com/lib/pq"
)

var (
	ErrVenueNotFound     = errors.New("venue not found")
	ErrVenueNameConflict = errors.New("venue name already in use for this owner")
)

type ListVenuesFilter struct {
	OwnerID  *int
	Sport    *string
	Location *string
	Limit    int
	Offset   int
}

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	List(ctx context.Context, filter ListVenuesFilter) ([]models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	UpdatePhotoKey(ctx context.Context, venueID int, photoKey *string) error
	ListRules(ctx context.Context, venueID int) ([]models.VenuePricingRule, error)
	ReplaceRules(ctx context.Context, venueID int, rules []models.VenuePricingRule) error
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

const venueColumns = `id, owner_id, name, description, location, sport, base_price_per_hour, created_at, photo_key`

func (r *postgresVenueRepository) Create(ctx context.Context, v *models.Venue) error {
	query := `
		INSERT INTO venues (owner_id, name, description, location, sport, base_price_per_hour)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		v.OwnerID, v.Name, v.Description, v.Location, v.Sport, v.BasePricePerHour,
	).Scan(&v.ID, &v.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrVenueNameConflict
	}
	return err
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	v := &models.Venue{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Description, &v.Location, &v.Sport,
		&v.BasePricePerHour, &v.CreatedAt, &v.PhotoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *postgresVenueRepository) List(ctx context.Context, filter ListVenuesFilter) ([]models.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE 1=1`
	args := []interface{}{}
	argID := 1

	if filter.OwnerID != nil {
		query += fmt.Sprintf(" AND owner_id = $%d", argID)
		args = append(args, *filter.OwnerID)
		argID++
	}
	if filter.Sport != nil {
		query += fmt.Sprintf(" AND sport = $%d", argID)
		args = append(args, *filter.Sport)
		argID++
	}
	if filter.Location != nil {
		query += fmt.Sprintf(" AND location ILIKE $%d", argID)
		args = append(args, "%"+*filter.Location+"%")
		argID++
	}

	query += " ORDER BY created_at DESC"

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

	venues := make([]models.Venue, 0)
	for rows.Next() {
		var v models.Venue
		if scanErr := rows.Scan(
			&v.ID, &v.OwnerID, &v.Name, &v.Description, &v.Location, &v.Sport,
			&v.BasePricePerHour, &v.CreatedAt, &v.PhotoKey,
		); scanErr != nil {
			return nil, scanErr
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *postgresVenueRepository) Update(ctx context.Context, v *models.Venue) error {
	query := `
		UPDATE venues
		SET name = $1, description = $2, location = $3, sport = $4, base_price_per_hour = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		v.Name, v.Description, v.Location, v.Sport, v.BasePricePerHour, v.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) UpdatePhotoKey(ctx context.Context, venueID int, photoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE venues SET photo_key = $1 WHERE id = $2`, photoKey, venueID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

// ListRules returns a venue's pricing rules ordered by position. Position
// order is load-bearing: the calculator applies the first matching rule.
func (r *postgresVenueRepository) ListRules(ctx context.Context, venueID int) ([]models.VenuePricingRule, error) {
	query := `
		SELECT id, venue_id, position, days, start_time, end_time, price_per_hour
		FROM venue_pricing_rules
		WHERE venue_id = $1
		ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]models.VenuePricingRule, 0)
	for rows.Next() {
		var rule models.VenuePricingRule
		if scanErr := rows.Scan(
			&rule.ID, &rule.VenueID, &rule.Position, pq.Array(&rule.Days),
			&rule.StartTime, &rule.EndTime, &rule.PricePerHour,
		); scanErr != nil {
			return nil, scanErr
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// ReplaceRules swaps a venue's entire rule list atomically, renumbering
// positions from the slice order.
func (r *postgresVenueRepository) ReplaceRules(ctx context.Context, venueID int, rules []models.VenuePricingRule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM venue_pricing_rules WHERE venue_id = $1`, venueID); err != nil {
		return err
	}

	query := `
		INSERT INTO venue_pricing_rules (venue_id, position, days, start_time, end_time, price_per_hour)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	for i := range rules {
		rules[i].VenueID = venueID
		rules[i].Position = i
		if err := tx.QueryRowContext(ctx, query,
			venueID, i, pq.Array(rules[i].Days), rules[i].StartTime, rules[i].EndTime, rules[i].PricePerHour,
		).Scan(&rules[i].ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
