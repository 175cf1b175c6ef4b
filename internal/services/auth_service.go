package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gym_crm_backend/internal/models"
	"gym_crm_backend/internal/repositories"
	"gym_crm_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrAdminNotFound      = errors.New("admin user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrWeakPassword       = errors.New("password does not meet the minimum length")
)

// MinAdminPasswordLength is enforced when creating admin accounts.
const MinAdminPasswordLength = 8

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	Admin       *models.AdminUser `json:"admin"`
	AccessToken string            `json:"access_token"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
	GetAdminProfile(adminID int64) (*models.AdminUser, error)
	CreateAdmin(username, password string) (*models.AdminUser, error)
}

// --- authService Implementation ---
type authService struct {
	authRepo repositories.AuthRepository
	db       *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, db *sql.DB) AuthService {
	return &authService{authRepo: authRepo, db: db}
}

// Login verifies the admin credentials and issues a signed access token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	admin, storedHashedPassword, err := s.authRepo.FindAdminByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateAccessToken(admin.ID, admin.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		Admin:       admin,
		AccessToken: accessToken,
	}, nil
}

// GetAdminProfile retrieves an admin account by id.
func (s *authService) GetAdminProfile(adminID int64) (*models.AdminUser, error) {
	admin, err := s.authRepo.FindAdminByID(adminID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to retrieve admin profile: %w", err)
	}
	return admin, nil
}

// CreateAdmin hashes the password and stores a new admin account. Used by
// the create-admin bootstrap tool.
func (s *authService) CreateAdmin(username, password string) (*models.AdminUser, error) {
	username = strings.TrimSpace(username)
	if utils.IsEmpty(username) {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrInvalidCredentials)
	}
	if !utils.IsValidPasswordLength(password, MinAdminPasswordLength) {
		return nil, ErrWeakPassword
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.AdminUser{Username: username}
	adminID, err := s.authRepo.CreateAdmin(s.db, admin, string(hashedPasswordBytes))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	admin.ID = adminID
	return admin, nil
}
