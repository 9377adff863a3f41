package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kderen/bugtrail/internal/models"
)

// BugRepository defines the bug store operations the service needs
type BugRepository interface {
	GetByID(ctx context.Context, id string) (*models.Bug, error)
	List(ctx context.Context) ([]*models.Bug, error)
	Create(ctx context.Context, bug *models.Bug) (*models.Bug, error)
	Save(ctx context.Context, bug *models.Bug) (*models.Bug, error)
	Delete(ctx context.Context, id string) error
}

// BugService handles bug tracking business logic
type BugService struct {
	repo   BugRepository
	logger *slog.Logger
}

// NewBugService creates a new BugService
func NewBugService(repo BugRepository, logger *slog.Logger) *BugService {
	return &BugService{
		repo:   repo,
		logger: logger,
	}
}

func (s *BugService) List(ctx context.Context) ([]*models.Bug, error) {
	bugs, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list bugs", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return bugs, nil
}

func (s *BugService) Get(ctx context.Context, id string) (*models.Bug, error) {
	bug, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get bug", slog.String("bug_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return bug, nil
}

// CreateBugParams holds the fields accepted when reporting a bug
type CreateBugParams struct {
	Title          string
	Description    string
	Classification string
	Severity       string
	ReporterEmail  string
}

// Create reports a new bug. Status always starts at "new"; the reporter
// is the authenticated principal, never client input.
func (s *BugService) Create(ctx context.Context, params CreateBugParams) (*models.Bug, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, models.ErrBadRequest
	}

	if !models.ValidClassification(params.Classification) || !models.ValidSeverity(params.Severity) {
		return nil, models.ErrBadRequest
	}

	bug := &models.Bug{
		Title:          title,
		Description:    strings.TrimSpace(params.Description),
		Classification: params.Classification,
		Severity:       params.Severity,
		Status:         models.StatusNew,
		ReporterEmail:  params.ReporterEmail,
	}

	created, err := s.repo.Create(ctx, bug)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			return nil, models.ErrBadRequest
		}
		s.logger.Error("failed to create bug", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("bug reported",
		slog.String("bug_id", created.ID),
		slog.String("severity", created.Severity),
		slog.String("reporter", created.ReporterEmail))

	return created, nil
}

// UpdateBugParams holds the editable bug fields. Nil pointers leave the
// current value untouched.
type UpdateBugParams struct {
	Title          *string
	Description    *string
	Classification *string
	Severity       *string
	Status         *string
	AssigneeEmail  *string
}

func (s *BugService) Update(ctx context.Context, id string, params UpdateBugParams) (*models.Bug, error) {
	bug, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, models.ErrBadRequest
		}
		bug.Title = title
	}
	if params.Description != nil {
		bug.Description = strings.TrimSpace(*params.Description)
	}
	if params.Classification != nil {
		if !models.ValidClassification(*params.Classification) {
			return nil, models.ErrBadRequest
		}
		bug.Classification = *params.Classification
	}
	if params.Severity != nil {
		if !models.ValidSeverity(*params.Severity) {
			return nil, models.ErrBadRequest
		}
		bug.Severity = *params.Severity
	}
	if params.Status != nil {
		if !models.ValidStatus(*params.Status) {
			return nil, models.ErrBadRequest
		}
		bug.Status = *params.Status
	}
	if params.AssigneeEmail != nil {
		if *params.AssigneeEmail == "" {
			bug.AssigneeEmail = nil
		} else {
			assignee := strings.ToLower(strings.TrimSpace(*params.AssigneeEmail))
			bug.AssigneeEmail = &assignee
		}
	}

	updated, err := s.repo.Save(ctx, bug)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			return nil, models.ErrBadRequest
		}
		s.logger.Error("failed to update bug", slog.String("bug_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("bug updated", slog.String("bug_id", updated.ID), slog.String("status", updated.Status))

	return updated, nil
}

func (s *BugService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete bug", slog.String("bug_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("bug deleted", slog.String("bug_id", id))
	return nil
}
