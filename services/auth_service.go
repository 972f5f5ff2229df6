package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devakhil7/plyr-sub003/models"
	"github.com/devakhil7/plyr-sub003/repositories"
	"github.com/devakhil7/plyr-sub003/utils"
)

const minPasswordLength = 8

type RegisterInput struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Nickname  *string         `json:"nickname,omitempty"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Role      models.UserRole `json:"role,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidationFailed)
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := input.Role
	switch role {
	case "":
		role = models.RolePlayer
	case models.RolePlayer, models.RoleVenueOwner:
	default:
		// admin accounts are provisioned out of band
		return nil, fmt.Errorf("%w: role %q cannot be self-assigned", ErrValidationFailed, role)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Nickname:     input.Nickname,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}
