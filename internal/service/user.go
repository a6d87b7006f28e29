package service

import (
	"context"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
}

// NewUserService creates a UserService. A nil repository turns EnsureUser into a no-op.
func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) error {
	if s.repository == nil {
		return nil
	}

	user := entities.NewUser(userID, chatID)

	exists, err := s.repository.Exists(ctx, user.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = s.repository.Save(ctx, user)
	return err
}
