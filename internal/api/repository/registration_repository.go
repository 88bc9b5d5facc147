package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ctchen222/signup-form/internal/api/models"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// ErrDuplicateEmail is returned when the email is already registered.
var ErrDuplicateEmail = errors.New("duplicate email")

// RegistrationRepository stores accepted registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration, password string) error
	GetByEmail(ctx context.Context, email string) (*models.Registration, error)
}

type sqliteRegistrationRepository struct {
	db   *sqlx.DB
	cost int
}

// NewRegistrationRepository creates a SQLite-backed RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) RegistrationRepository {
	return &sqliteRegistrationRepository{db: db, cost: bcrypt.DefaultCost}
}

// NewRegistrationRepositoryWithCost is NewRegistrationRepository with a custom
// bcrypt cost; tests use bcrypt.MinCost.
func NewRegistrationRepositoryWithCost(db *sqlx.DB, cost int) RegistrationRepository {
	return &sqliteRegistrationRepository{db: db, cost: cost}
}

// Create hashes the password and inserts the registration.
func (r *sqliteRegistrationRepository) Create(ctx context.Context, reg *models.Registration, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	reg.PasswordHash = string(hashed)

	query := `INSERT INTO registrations (id, email, dob, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, reg.ID, reg.Email, reg.DOB, reg.PasswordHash, reg.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

// GetByEmail returns the registration for email, or nil when there is none.
func (r *sqliteRegistrationRepository) GetByEmail(ctx context.Context, email string) (*models.Registration, error) {
	var reg models.Registration
	query := `SELECT id, email, dob, password_hash, created_at FROM registrations WHERE email = ?`
	err := r.db.GetContext(ctx, &reg, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get registration by email: %w", err)
	}
	return &reg, nil
}
