package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/kderen/bugtrail/internal/auth"
	"github.com/kderen/bugtrail/internal/models"
	pkgauth "github.com/kderen/bugtrail/pkg/auth"
)

// UserRepository defines the account store operations the services need
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, email string) error
}

// AuthService handles credential verification, the account lock state
// machine and token issuance.
type AuthService struct {
	repo         UserRepository
	codec        *auth.TokenCodec
	attempts     *auth.AttemptTracker
	lockDuration time.Duration
	logger       *slog.Logger

	// accountLocks serializes lock-state evaluation per account so the
	// not_locked/lock_date pair is always written as one unit.
	accountLocks sync.Map // email -> *sync.Mutex
}

// NewAuthService creates a new AuthService
func NewAuthService(repo UserRepository, codec *auth.TokenCodec, attempts *auth.AttemptTracker, lockDuration time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		repo:         repo,
		codec:        codec,
		attempts:     attempts,
		lockDuration: lockDuration,
		logger:       logger,
	}
}

// LoginResult carries the authenticated user and the issued token
type LoginResult struct {
	User  *models.User
	Token string
}

// Login verifies credentials and issues an access token. The lock state
// machine runs before the password comparison, so a locked account fails
// with ErrAccountLocked without the password ever being checked.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, models.ErrBadCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("login failed: unknown account")
			return nil, models.ErrBadCredentials
		}
		s.logger.Error("failed to load user for login", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if !user.Active {
		s.logger.Info("login blocked: account disabled", slog.String("email", user.Email))
		return nil, models.ErrAccountDisabled
	}

	if err := s.evaluateLockState(ctx, user); err != nil {
		return nil, err
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Info("login failed: invalid credentials", slog.String("email", user.Email))
		return nil, models.ErrBadCredentials
	}

	// Successful verifications feed the attempt counter. Enough of them
	// inside the window locks the account on the next evaluation.
	s.attempts.Record(user.Email)

	now := time.Now()
	user.LastLoginAt = &now

	updated, err := s.repo.Save(ctx, user)
	if err != nil {
		s.logger.Error("failed to record login time", slog.String("email", user.Email), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	token, err := s.codec.Issue(updated.Email, models.AuthoritiesForRole(updated.Role))
	if err != nil {
		s.logger.Error("failed to issue token", slog.String("email", updated.Email), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user logged in", slog.String("email", updated.Email))

	return &LoginResult{User: updated, Token: token}, nil
}

// evaluateLockState runs the lock state machine for user and persists the
// outcome. Returns ErrAccountLocked while a lock is in force.
//
// Unlocked accounts lock when the attempt counter has exceeded the
// maximum. Locked accounts unlock once the lock duration has elapsed,
// which also evicts their attempt record so the counter starts fresh.
func (s *AuthService) evaluateLockState(ctx context.Context, user *models.User) error {
	mu := s.accountLock(user.Email)
	mu.Lock()
	defer mu.Unlock()

	now := time.Now()

	if user.NotLocked {
		if s.attempts.HasExceeded(user.Email) {
			user.NotLocked = false
			user.LockDate = &now
			s.logger.Warn("account locked after exceeding max login attempts",
				slog.String("email", user.Email))
		}
	} else {
		if user.LockDate == nil {
			// Self-heal a locked account missing its lock date
			user.LockDate = &now
		}

		if now.After(user.LockDate.Add(s.lockDuration)) {
			user.NotLocked = true
			user.LockDate = nil
			s.attempts.Evict(user.Email)
			s.logger.Info("account lock expired", slog.String("email", user.Email))
		}
	}

	if _, err := s.repo.Save(ctx, user); err != nil {
		s.logger.Error("failed to persist lock state", slog.String("email", user.Email), slog.Any("error", err))
		return models.ErrInternalServer
	}

	if !user.NotLocked {
		return models.ErrAccountLocked
	}

	return nil
}

func (s *AuthService) accountLock(email string) *sync.Mutex {
	mu, _ := s.accountLocks.LoadOrStore(email, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// RegisterParams holds the fields accepted from the registration form
type RegisterParams struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Speciality string
}

// Register creates a new active, unlocked account with the default role
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, models.ErrBadRequest
	}

	if !models.ValidSpeciality(params.Speciality) {
		return nil, models.ErrBadRequest
	}

	if err := pkgauth.ValidatePassword(params.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		s.logger.Info("registration failed: email already exists")
		return nil, models.ErrConflict
	} else if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check existing user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	hash, err := pkgauth.HashPassword(params.Password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(params.FirstName),
		LastName:     strings.TrimSpace(params.LastName),
		Speciality:   params.Speciality,
		Role:         models.RoleUser,
		Active:       true,
		NotLocked:    true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user registered", slog.String("email", created.Email))

	return created, nil
}
