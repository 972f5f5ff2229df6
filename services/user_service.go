package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/devakhil7/plyr-sub003/models"
	"github.com/devakhil7/plyr-sub003/repositories"
	"github.com/devakhil7/plyr-sub003/storage"
)

type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	UploadLogo(ctx context.Context, userID int, contentType string, reader io.Reader) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{userRepo: userRepo, uploader: uploader}
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	populateUserDetails(user, s.uploader)
	return user, nil
}

func (s *userService) UploadLogo(ctx context.Context, userID int, contentType string, reader io.Reader) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ext, err := storage.ExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("users/%d/logo%s", userID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload user logo: %w", err)
	}

	if user.LogoKey != nil && *user.LogoKey != key {
		_ = s.uploader.Delete(ctx, *user.LogoKey)
	}

	if err := s.userRepo.UpdateLogoKey(ctx, userID, &key); err != nil {
		return nil, err
	}
	user.LogoKey = &key
	populateUserDetails(user, s.uploader)
	return user, nil
}
