package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/kderen/bugtrail/internal/auth"
	"github.com/kderen/bugtrail/internal/models"
)

// UserService handles user administration
type UserService struct {
	repo     UserRepository
	attempts *auth.AttemptTracker
	logger   *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(repo UserRepository, attempts *auth.AttemptTracker, logger *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		attempts: attempts,
		logger:   logger,
	}
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return users, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return user, nil
}

// UpdateParams holds the admin-editable account fields. Nil pointers leave
// the current value untouched.
type UpdateParams struct {
	FirstName  *string
	LastName   *string
	Speciality *string
	Role       *string
	Active     *bool
	NotLocked  *bool
}

// Update applies admin edits to an account. Flipping NotLocked by hand
// moves the lock state the same way the state machine would: locking
// stamps the lock date, unlocking clears it and evicts the account's
// attempt record.
func (s *UserService) Update(ctx context.Context, email string, params UpdateParams) (*models.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if params.FirstName != nil {
		user.FirstName = strings.TrimSpace(*params.FirstName)
	}
	if params.LastName != nil {
		user.LastName = strings.TrimSpace(*params.LastName)
	}
	if params.Speciality != nil {
		if !models.ValidSpeciality(*params.Speciality) {
			return nil, models.ErrBadRequest
		}
		user.Speciality = *params.Speciality
	}
	if params.Role != nil {
		if !models.ValidRole(*params.Role) {
			return nil, models.ErrBadRequest
		}
		user.Role = *params.Role
	}
	if params.Active != nil {
		user.Active = *params.Active
	}
	if params.NotLocked != nil {
		s.applyLockFlag(user, *params.NotLocked)
	}

	updated, err := s.repo.Save(ctx, user)
	if err != nil {
		s.logger.Error("failed to update user", slog.String("email", email), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user updated", slog.String("email", updated.Email))

	return updated, nil
}

func (s *UserService) applyLockFlag(user *models.User, notLocked bool) {
	if user.NotLocked && !notLocked {
		now := time.Now()
		user.LockDate = &now
	}
	if !user.NotLocked && notLocked {
		user.LockDate = nil
		s.attempts.Evict(user.Email)
	}
	user.NotLocked = notLocked
}

// Unlock restores a locked account ahead of its lock duration
func (s *UserService) Unlock(ctx context.Context, email string) (*models.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	s.applyLockFlag(user, true)

	updated, err := s.repo.Save(ctx, user)
	if err != nil {
		s.logger.Error("failed to unlock user", slog.String("email", email), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("account unlocked by admin", slog.String("email", updated.Email))

	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, email string) error {
	err := s.repo.Delete(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete user", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("user deleted", slog.String("email", email))
	return nil
}
