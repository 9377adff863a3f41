package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kderen/bugtrail/internal/database"
	"github.com/kderen/bugtrail/internal/models"
)

const bugColumns = `id, title, description, classification, severity, status, reporter_email, assignee_email, created_at, updated_at`

type BugRepository struct {
	pool *pgxpool.Pool
}

func NewBugRepository(db *database.DB) *BugRepository {
	return &BugRepository{pool: db.Pool}
}

func scanBugRow(scanner rowScanner) (*models.Bug, error) {
	var bug models.Bug
	var assignee *string

	err := scanner.Scan(
		&bug.ID, &bug.Title, &bug.Description,
		&bug.Classification, &bug.Severity, &bug.Status,
		&bug.ReporterEmail, &assignee,
		&bug.CreatedAt, &bug.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	bug.AssigneeEmail = assignee

	return &bug, nil
}

func scanBugRows(rows pgx.Rows) ([]*models.Bug, error) {
	defer rows.Close()

	bugs := make([]*models.Bug, 0)

	for rows.Next() {
		bug, err := scanBugRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bug: %w", err)
		}
		bugs = append(bugs, bug)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return bugs, nil
}

func (r *BugRepository) GetByID(ctx context.Context, id string) (*models.Bug, error) {
	query := `SELECT ` + bugColumns + ` FROM bugs WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanBugRow(row)
}

func (r *BugRepository) List(ctx context.Context) ([]*models.Bug, error) {
	query := `SELECT ` + bugColumns + ` FROM bugs ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return scanBugRows(rows)
}

func (r *BugRepository) Create(ctx context.Context, bug *models.Bug) (*models.Bug, error) {
	query := `
		INSERT INTO bugs (id, title, description, classification, severity, status, reporter_email, assignee_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING ` + bugColumns

	id := uuid.New().String()

	row := r.pool.QueryRow(ctx, query,
		id, bug.Title, bug.Description,
		bug.Classification, bug.Severity, bug.Status,
		bug.ReporterEmail, bug.AssigneeEmail,
	)
	return scanBugRow(row)
}

func (r *BugRepository) Save(ctx context.Context, bug *models.Bug) (*models.Bug, error) {
	query := `
		UPDATE bugs
		SET title = $2, description = $3, classification = $4, severity = $5,
		    status = $6, assignee_email = $7, updated_at = now()
		WHERE id = $1
		RETURNING ` + bugColumns

	row := r.pool.QueryRow(ctx, query,
		bug.ID, bug.Title, bug.Description,
		bug.Classification, bug.Severity, bug.Status,
		bug.AssigneeEmail,
	)
	return scanBugRow(row)
}

func (r *BugRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bugs WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
