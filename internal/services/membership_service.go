package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_crm_backend/internal/membership"
	"gym_crm_backend/internal/models"
	"gym_crm_backend/internal/repositories"
	"gym_crm_backend/pkg/utils"
)

// --- Custom Service Errors for the Membership Registry ---
var (
	ErrDuplicatePhone  = errors.New("phone number already registered")
	ErrInvalidName     = errors.New("name should only contain letters")
	ErrInvalidPhone    = errors.New("phone number must be 10 digits")
	ErrInvalidGender   = errors.New("invalid gender")
	ErrInvalidPlan     = errors.New("invalid subscription plan")
	ErrInvalidAmount   = errors.New("amount paid must be a positive number")
	ErrMissingClientID = errors.New("client id is required")
	ErrClientNotFound  = errors.New("client not found")
)

// --- Membership DTOs ---
type RegisterClientRequest struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Gender     string `json:"gender" binding:"required"`
	Plan       string `json:"plan" binding:"required"`
	AmountPaid int    `json:"amount_paid"`
}

type RenewClientRequest struct {
	CustomID   string `json:"custom_id"`
	Plan       string `json:"plan" binding:"required"`
	AmountPaid int    `json:"amount_paid"`
}

// MembershipSummary aggregates client counts for the dashboard.
type MembershipSummary struct {
	TotalClients    int `json:"total_clients"`
	ActiveClients   int `json:"active_clients"`
	InactiveClients int `json:"inactive_clients"`
	ExpiringSoon    int `json:"expiring_soon"`
}

// --- MembershipService Interface ---
type MembershipService interface {
	RegisterClient(req RegisterClientRequest) (*models.Client, error)
	RenewClient(req RenewClientRequest) (*models.Client, error)
	GetClientByCustomID(customID string) (*models.Client, error)
	ListClients(filter membership.StatusFilter, referenceDate time.Time) ([]models.Client, error)
	RefreshAllStatuses(referenceDate time.Time) (int64, error)
	GetMembershipSummary(referenceDate time.Time) (*MembershipSummary, error)
}

// --- membershipService Implementation ---
type membershipService struct {
	clientRepo repositories.ClientRepository
	db         *sql.DB
	now        func() time.Time
}

// NewMembershipService creates a new instance of MembershipService.
func NewMembershipService(repo repositories.ClientRepository, db *sql.DB) MembershipService {
	return &membershipService{
		clientRepo: repo,
		db:         db,
		now:        time.Now,
	}
}

// NewMembershipServiceWithClock is NewMembershipService with an injected
// clock, for tests that need a fixed "today".
func NewMembershipServiceWithClock(repo repositories.ClientRepository, db *sql.DB, now func() time.Time) MembershipService {
	return &membershipService{
		clientRepo: repo,
		db:         db,
		now:        now,
	}
}

// RegisterClient validates the input in a fixed order (first failing check
// wins), computes the initial plan window, and persists the client together
// with its custom id in one transaction. Nothing is written on any
// validation failure.
func (s *membershipService) RegisterClient(req RegisterClientRequest) (*models.Client, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)

	existing, err := s.clientRepo.GetClientByPhone(phone)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check phone uniqueness: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicatePhone
	}
	if !utils.IsAlphabeticName(name) {
		return nil, ErrInvalidName
	}
	if !utils.IsTenDigitPhone(phone) {
		return nil, ErrInvalidPhone
	}
	if !models.IsValidGender(req.Gender) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGender, req.Gender)
	}
	plan, err := membership.ParsePlanCode(req.Plan)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, req.Plan)
	}
	if req.AmountPaid <= 0 {
		return nil, ErrInvalidAmount
	}

	planStart := membership.DateOnly(s.now())
	planEnd, err := membership.ComputePlanEnd(planStart, plan)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, req.Plan)
	}

	client := &models.Client{
		Name:       name,
		Phone:      phone,
		Gender:     req.Gender,
		PlanStart:  planStart,
		PlanEnd:    planEnd,
		Status:     membership.DeriveStatus(planEnd, planStart),
		AmountPaid: req.AmountPaid,
	}

	// The serial id and the custom id derived from it must be assigned as
	// one atomic unit, or two concurrent registrations could both format
	// the same identifier from a stale "last" value.
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start registration transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := s.clientRepo.CreateClient(tx, client)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// Lost the race against a concurrent registration of the
			// same phone number.
			return nil, ErrDuplicatePhone
		}
		return nil, fmt.Errorf("failed to create client in repository: %w", err)
	}

	client.CustomID = membership.NextCustomID(id - 1)
	if err := s.clientRepo.AssignCustomID(tx, id, client.CustomID); err != nil {
		return nil, fmt.Errorf("failed to assign custom id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}
	return client, nil
}

// RenewClient replaces a client's plan window. A still-valid plan is
// extended from its current end date; a lapsed plan restarts from today.
// The read and the write run under one row lock so concurrent renewals of
// the same client cannot lose updates.
func (s *membershipService) RenewClient(req RenewClientRequest) (*models.Client, error) {
	customID := strings.TrimSpace(req.CustomID)
	if customID == "" {
		return nil, ErrMissingClientID
	}
	plan, err := membership.ParsePlanCode(req.Plan)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, req.Plan)
	}
	if req.AmountPaid <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start renewal transaction: %w", err)
	}
	defer tx.Rollback()

	client, err := s.clientRepo.GetClientByCustomIDForUpdate(tx, customID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrClientNotFound, customID)
		}
		return nil, fmt.Errorf("failed to find client for renewal: %w", err)
	}

	today := membership.DateOnly(s.now())
	planStart := today
	if !membership.DateOnly(client.PlanEnd).Before(today) {
		// Contiguous renewal: the new window starts where the valid one
		// ends, no gap and no lost days.
		planStart = membership.DateOnly(client.PlanEnd)
	}
	planEnd, err := membership.ComputePlanEnd(planStart, plan)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, req.Plan)
	}

	client.PlanStart = planStart
	client.PlanEnd = planEnd
	client.Status = membership.DeriveStatus(planEnd, today)
	client.AmountPaid = req.AmountPaid

	if err := s.clientRepo.UpdateClientPlan(tx, client); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrClientNotFound, customID)
		}
		return nil, fmt.Errorf("failed to update client plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit renewal: %w", err)
	}
	return client, nil
}

// GetClientByCustomID looks up a single client.
func (s *membershipService) GetClientByCustomID(customID string) (*models.Client, error) {
	customID = strings.TrimSpace(customID)
	if customID == "" {
		return nil, ErrMissingClientID
	}
	client, err := s.clientRepo.GetClientByCustomID(nil, customID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrClientNotFound, customID)
		}
		return nil, fmt.Errorf("failed to get client by custom id: %w", err)
	}
	return client, nil
}

// ListClients returns clients matching the filter, evaluated against
// referenceDate. The all filter refreshes every cached status first; the
// other filters compare plan_end directly and never write.
func (s *membershipService) ListClients(filter membership.StatusFilter, referenceDate time.Time) ([]models.Client, error) {
	referenceDate = membership.DateOnly(referenceDate)
	if filter == membership.FilterAll {
		if _, err := s.RefreshAllStatuses(referenceDate); err != nil {
			return nil, err
		}
	}
	clients, err := s.clientRepo.GetClients(filter, referenceDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// RefreshAllStatuses recomputes and persists the cached status of every
// client against referenceDate. It is the only bulk write in the system.
func (s *membershipService) RefreshAllStatuses(referenceDate time.Time) (int64, error) {
	updated, err := s.clientRepo.RefreshStatuses(s.db, membership.DateOnly(referenceDate))
	if err != nil {
		return 0, fmt.Errorf("failed to refresh client statuses: %w", err)
	}
	return updated, nil
}

// GetMembershipSummary derives dashboard counts against referenceDate
// without touching any stored status.
func (s *membershipService) GetMembershipSummary(referenceDate time.Time) (*MembershipSummary, error) {
	referenceDate = membership.DateOnly(referenceDate)
	clients, err := s.clientRepo.GetClients(membership.FilterAll, referenceDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients for summary: %w", err)
	}

	windowEnd := referenceDate.AddDate(0, 0, membership.ExpiringSoonWindowDays)
	summary := &MembershipSummary{TotalClients: len(clients)}
	for _, client := range clients {
		planEnd := membership.DateOnly(client.PlanEnd)
		if membership.DeriveStatus(planEnd, referenceDate) == membership.StatusActive {
			summary.ActiveClients++
			if !planEnd.After(windowEnd) {
				summary.ExpiringSoon++
			}
		} else {
			summary.InactiveClients++
		}
	}
	return summary, nil
}
