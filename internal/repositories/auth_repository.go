package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gym_crm_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// AuthRepository defines the interface for admin-account database operations.
type AuthRepository interface {
	CreateAdmin(executor SQLExecutor, admin *models.AdminUser, hashedPassword string) (int64, error)
	FindAdminByUsername(username string) (*models.AdminUser, string, error) // Returns AdminUser, HashedPassword, Error
	FindAdminByID(adminID int64) (*models.AdminUser, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

// CreateAdmin inserts a new admin account.
func (r *authRepository) CreateAdmin(executor SQLExecutor, admin *models.AdminUser, hashedPassword string) (int64, error) {
	query := `INSERT INTO admin_users (username, password_hash, created_at, updated_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	currentTime := time.Now()

	var adminID int64
	err := executor.QueryRow(query, admin.Username, hashedPassword, currentTime, currentTime).Scan(&adminID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating admin user: %v", ErrDatabaseError, err)
	}
	return adminID, nil
}

// FindAdminByUsername retrieves an admin account by username. The password
// hash is returned separately so it never travels on the model.
func (r *authRepository) FindAdminByUsername(username string) (*models.AdminUser, string, error) {
	admin := &models.AdminUser{}
	var hashedPassword string

	query := `SELECT id, username, password_hash, created_at, updated_at
	          FROM admin_users WHERE username = $1`

	err := r.db.QueryRow(query, username).Scan(
		&admin.ID, &admin.Username, &hashedPassword, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: finding admin by username %s: %v", ErrDatabaseError, username, err)
	}
	return admin, hashedPassword, nil
}

// FindAdminByID retrieves an admin account by id.
func (r *authRepository) FindAdminByID(adminID int64) (*models.AdminUser, error) {
	admin := &models.AdminUser{}

	query := `SELECT id, username, created_at, updated_at
	          FROM admin_users WHERE id = $1`

	err := r.db.QueryRow(query, adminID).Scan(
		&admin.ID, &admin.Username, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding admin by ID %d: %v", ErrDatabaseError, adminID, err)
	}
	return admin, nil
}
