package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/kderen/bugtrail/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBugService_Create_Success(t *testing.T) {
	repo := &MockBugRepository{}
	svc := NewBugService(repo, slog.Default())

	bug, err := svc.Create(context.Background(), CreateBugParams{
		Title:          "  Login page hangs  ",
		Description:    "Spinner never resolves on slow networks",
		Classification: models.ClassificationFunctional,
		Severity:       models.SeverityHigh,
		ReporterEmail:  "dev@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "Login page hangs", bug.Title)
	assert.Equal(t, models.StatusNew, bug.Status)
	assert.Equal(t, "dev@example.com", bug.ReporterEmail)
	assert.Nil(t, bug.AssigneeEmail)
}

func TestBugService_Create_RejectsInvalidEnums(t *testing.T) {
	svc := NewBugService(&MockBugRepository{}, slog.Default())

	_, err := svc.Create(context.Background(), CreateBugParams{
		Title:          "Bad classification",
		Classification: "cosmetic",
		Severity:       models.SeverityLow,
		ReporterEmail:  "dev@example.com",
	})
	assert.ErrorIs(t, err, models.ErrBadRequest)

	_, err = svc.Create(context.Background(), CreateBugParams{
		Title:          "Bad severity",
		Classification: models.ClassificationUsability,
		Severity:       "catastrophic",
		ReporterEmail:  "dev@example.com",
	})
	assert.ErrorIs(t, err, models.ErrBadRequest)

	_, err = svc.Create(context.Background(), CreateBugParams{
		Title:          "   ",
		Classification: models.ClassificationUsability,
		Severity:       models.SeverityLow,
		ReporterEmail:  "dev@example.com",
	})
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestBugService_Update_StatusAndAssignee(t *testing.T) {
	existing := &models.Bug{
		ID:             "bug-1",
		Title:          "Login page hangs",
		Classification: models.ClassificationFunctional,
		Severity:       models.SeverityHigh,
		Status:         models.StatusNew,
		ReporterEmail:  "dev@example.com",
	}
	repo := &MockBugRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Bug, error) {
			return existing, nil
		},
	}
	svc := NewBugService(repo, slog.Default())

	updated, err := svc.Update(context.Background(), "bug-1", UpdateBugParams{
		Status:        strPtr(models.StatusInProgress),
		AssigneeEmail: strPtr("Fixer@Example.com"),
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	require.NotNil(t, updated.AssigneeEmail)
	assert.Equal(t, "fixer@example.com", *updated.AssigneeEmail)
}

func TestBugService_Update_EmptyAssigneeUnassigns(t *testing.T) {
	assignee := "fixer@example.com"
	existing := &models.Bug{
		ID:            "bug-1",
		Title:         "Login page hangs",
		Status:        models.StatusInProgress,
		AssigneeEmail: &assignee,
	}
	repo := &MockBugRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Bug, error) {
			return existing, nil
		},
	}
	svc := NewBugService(repo, slog.Default())

	updated, err := svc.Update(context.Background(), "bug-1", UpdateBugParams{
		AssigneeEmail: strPtr(""),
	})

	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeEmail)
}

func TestBugService_Update_InvalidStatus(t *testing.T) {
	existing := &models.Bug{ID: "bug-1", Title: "Login page hangs"}
	repo := &MockBugRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Bug, error) {
			return existing, nil
		},
	}
	svc := NewBugService(repo, slog.Default())

	_, err := svc.Update(context.Background(), "bug-1", UpdateBugParams{
		Status: strPtr("resolved-ish"),
	})

	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestBugService_Get_NotFound(t *testing.T) {
	svc := NewBugService(&MockBugRepository{}, slog.Default())

	_, err := svc.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, models.ErrNotFound)
}
