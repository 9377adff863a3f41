package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/kderen/bugtrail/internal/auth"
	"github.com/kderen/bugtrail/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newTestUserService(repo UserRepository, tracker *auth.AttemptTracker) *UserService {
	if tracker == nil {
		tracker = auth.NewAttemptTracker(5, 100, 5*time.Minute)
	}
	return NewUserService(repo, tracker, slog.Default())
}

func TestUserService_Update_Fields(t *testing.T) {
	user := NewTestUser("dev@example.com", "hash")
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := newTestUserService(repo, nil)

	updated, err := svc.Update(context.Background(), "dev@example.com", UpdateParams{
		FirstName:  strPtr("Ada"),
		Speciality: strPtr(models.SpecialityQA),
		Role:       strPtr(models.RoleManager),
	})

	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, models.SpecialityQA, updated.Speciality)
	assert.Equal(t, models.RoleManager, updated.Role)
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	user := NewTestUser("dev@example.com", "hash")
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := newTestUserService(repo, nil)

	_, err := svc.Update(context.Background(), "dev@example.com", UpdateParams{
		Role: strPtr("superuser"),
	})

	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestUserService_Update_ManualLockStampsLockDate(t *testing.T) {
	user := NewTestUser("dev@example.com", "hash")
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := newTestUserService(repo, nil)

	updated, err := svc.Update(context.Background(), "dev@example.com", UpdateParams{
		NotLocked: boolPtr(false),
	})

	require.NoError(t, err)
	assert.False(t, updated.NotLocked)
	require.NotNil(t, updated.LockDate)
	assert.WithinDuration(t, time.Now(), *updated.LockDate, time.Second)
}

func TestUserService_Unlock_ClearsStateAndEvictsAttempts(t *testing.T) {
	lockDate := time.Now()
	user := NewTestUser("dev@example.com", "hash")
	user.NotLocked = false
	user.LockDate = &lockDate

	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	tracker := auth.NewAttemptTracker(5, 100, 5*time.Minute)
	for i := 0; i < 5; i++ {
		tracker.Record("dev@example.com")
	}

	svc := newTestUserService(repo, tracker)

	updated, err := svc.Unlock(context.Background(), "dev@example.com")

	require.NoError(t, err)
	assert.True(t, updated.NotLocked)
	assert.Nil(t, updated.LockDate)
	assert.Equal(t, 0, tracker.Attempts("dev@example.com"))
}

func TestUserService_GetByEmail_NotFound(t *testing.T) {
	svc := newTestUserService(&MockUserRepository{}, nil)

	_, err := svc.GetByEmail(context.Background(), "ghost@example.com")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	repo := &MockUserRepository{
		DeleteFunc: func(ctx context.Context, email string) error {
			return models.ErrNotFound
		},
	}

	svc := newTestUserService(repo, nil)

	err := svc.Delete(context.Background(), "ghost@example.com")

	assert.ErrorIs(t, err, models.ErrNotFound)
}
