package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kderen/bugtrail/internal/database"
	"github.com/kderen/bugtrail/internal/models"
)

const userColumns = `id, email, password_hash, first_name, last_name, speciality, role, active, not_locked, lock_date, last_login_at, joined_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool}
}

// rowScanner covers both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User
	var lockDate, lastLoginAt *time.Time

	err := scanner.Scan(
		&user.ID, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Speciality,
		&user.Role, &user.Active, &user.NotLocked,
		&lockDate, &lastLoginAt,
		&user.JoinedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	user.LockDate = lockDate
	user.LastLoginAt = lastLoginAt

	return &user, nil
}

func scanUserRows(rows pgx.Rows) ([]*models.User, error) {
	defer rows.Close()

	users := make([]*models.User, 0)

	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	row := r.pool.QueryRow(ctx, query, email)
	return scanUserRow(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanUserRow(row)
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY joined_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return scanUserRows(rows)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, speciality, role, active, not_locked, lock_date, joined_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING ` + userColumns

	id := uuid.New().String()

	row := r.pool.QueryRow(ctx, query,
		id, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Speciality,
		user.Role, user.Active, user.NotLocked, user.LockDate,
	)
	return scanUserRow(row)
}

// Save persists the mutable account fields, including the lock state pair
// (not_locked, lock_date) written by the lock state machine.
func (r *UserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, speciality = $4, role = $5,
		    active = $6, not_locked = $7, lock_date = $8, last_login_at = $9,
		    updated_at = now()
		WHERE email = $1
		RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, query,
		user.Email, user.FirstName, user.LastName, user.Speciality,
		user.Role, user.Active, user.NotLocked, user.LockDate, user.LastLoginAt,
	)
	return scanUserRow(row)
}

func (r *UserRepository) Delete(ctx context.Context, email string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
