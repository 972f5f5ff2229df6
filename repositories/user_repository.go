package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/devakhil7/plyr-sub003/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("email already registered")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLogoKey(ctx context.Context, userID int, logoKey *string) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id, first_name, last_name, nickname, email, password_hash, role, created_at, logo_key`

func (r *postgresUserRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (first_name, last_name, nickname, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		u.FirstName, u.LastName, u.Nickname, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrUserEmailConflict
	}
	return err
}

func (r *postgresUserRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Nickname, &u.Email,
		&u.PasswordHash, &u.Role, &u.CreatedAt, &u.LogoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresUserRepository) UpdateLogoKey(ctx context.Context, userID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET logo_key = $1 WHERE id = $2`, logoKey, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}
