package services

import (
	"context"
	"time"

	"github.com/kderen/bugtrail/internal/models"
)

// MockUserRepository implements UserRepository with pluggable behavior.
// Save defaults to echoing the passed user back, which is what most tests
// want when they only assert on the mutated fields.
type MockUserRepository struct {
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	GetByIDFunc    func(ctx context.Context, id string) (*models.User, error)
	ListFunc       func(ctx context.Context) ([]*models.User, error)
	CreateFunc     func(ctx context.Context, user *models.User) (*models.User, error)
	SaveFunc       func(ctx context.Context, user *models.User) (*models.User, error)
	DeleteFunc     func(ctx context.Context, email string) error

	SavedUsers []*models.User
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = "mock-id"
	user.JoinedAt = time.Now()
	return user, nil
}

func (m *MockUserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	m.SavedUsers = append(m.SavedUsers, user)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return user, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, email string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, email)
	}
	return nil
}

// MockBugRepository implements BugRepository with pluggable behavior
type MockBugRepository struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Bug, error)
	ListFunc    func(ctx context.Context) ([]*models.Bug, error)
	CreateFunc  func(ctx context.Context, bug *models.Bug) (*models.Bug, error)
	SaveFunc    func(ctx context.Context, bug *models.Bug) (*models.Bug, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockBugRepository) GetByID(ctx context.Context, id string) (*models.Bug, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockBugRepository) List(ctx context.Context) ([]*models.Bug, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Bug{}, nil
}

func (m *MockBugRepository) Create(ctx context.Context, bug *models.Bug) (*models.Bug, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, bug)
	}
	bug.ID = "mock-bug-id"
	bug.CreatedAt = time.Now()
	bug.UpdatedAt = time.Now()
	return bug, nil
}

func (m *MockBugRepository) Save(ctx context.Context, bug *models.Bug) (*models.Bug, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, bug)
	}
	return bug, nil
}

func (m *MockBugRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// NewTestUser builds an active, unlocked user with the given bcrypt hash
func NewTestUser(email, passwordHash string) *models.User {
	return &models.User{
		ID:           "user-1",
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    "Test",
		LastName:     "User",
		Speciality:   models.SpecialityBackend,
		Role:         models.RoleUser,
		Active:       true,
		NotLocked:    true,
		JoinedAt:     time.Now(),
	}
}
