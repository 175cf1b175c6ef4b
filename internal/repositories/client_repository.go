package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gym_crm_backend/internal/membership"
	"gym_crm_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// ClientRepository defines the interface for client-related database operations.
// Creation is split into CreateClient + AssignCustomID so the service layer can
// run both inside one transaction: the display identifier is derived from the
// serial id returned by the insert, which is what keeps concurrent
// registrations from ever computing the same identifier.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) (int64, error)
	AssignCustomID(executor SQLExecutor, clientID int64, customID string) error
	GetClientByCustomID(executor SQLExecutor, customID string) (*models.Client, error)
	GetClientByCustomIDForUpdate(executor SQLExecutor, customID string) (*models.Client, error)
	GetClientByPhone(phone string) (*models.Client, error)
	GetClients(filter membership.StatusFilter, referenceDate time.Time) ([]models.Client, error)
	UpdateClientPlan(executor SQLExecutor, client *models.Client) error
	RefreshStatuses(executor SQLExecutor, referenceDate time.Time) (int64, error)
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, COALESCE(custom_id, ''), name, phone, gender, plan_start, plan_end, status, amount_paid, created_at, updated_at`

// CreateClient inserts a new client and returns its surrogate id. The
// custom_id column is left NULL here; AssignCustomID fills it within the same
// transaction.
func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) (int64, error) {
	query := `INSERT INTO clients (name, phone, gender, plan_start, plan_end, status, amount_paid, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = currentTime
	}
	if client.UpdatedAt.IsZero() {
		client.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		client.Name, client.Phone, client.Gender,
		client.PlanStart, client.PlanEnd, client.Status,
		client.AmountPaid, client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	return client.ID, nil
}

// AssignCustomID sets the display identifier of a freshly inserted client.
func (r *clientRepository) AssignCustomID(executor SQLExecutor, clientID int64, customID string) error {
	query := `UPDATE clients SET custom_id = $1 WHERE id = $2`

	result, err := executor.Exec(query, customID, clientID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: assigning custom id to client %d: %v", ErrDatabaseError, clientID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for custom id of client %d: %v", ErrDatabaseError, clientID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetClientByCustomID retrieves a client by the human-facing identifier.
func (r *clientRepository) GetClientByCustomID(executor SQLExecutor, customID string) (*models.Client, error) {
	if executor == nil {
		executor = r.db
	}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE custom_id = $1`
	return r.scanClientRow(executor.QueryRow(query, customID), "custom id "+customID)
}

// GetClientByCustomIDForUpdate is GetClientByCustomID with a row lock, for
// read-modify-write renewal transactions.
func (r *clientRepository) GetClientByCustomIDForUpdate(executor SQLExecutor, customID string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE custom_id = $1 FOR UPDATE`
	return r.scanClientRow(executor.QueryRow(query, customID), "custom id "+customID)
}

// GetClientByPhone retrieves a client by phone number.
func (r *clientRepository) GetClientByPhone(phone string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE phone = $1`
	return r.scanClientRow(r.db.QueryRow(query, phone), "phone "+phone)
}

func (r *clientRepository) scanClientRow(row *sql.Row, descr string) (*models.Client, error) {
	client := &models.Client{}
	err := row.Scan(
		&client.ID, &client.CustomID, &client.Name, &client.Phone, &client.Gender,
		&client.PlanStart, &client.PlanEnd, &client.Status,
		&client.AmountPaid, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by %s: %v", ErrDatabaseError, descr, err)
	}
	return client, nil
}

// GetClients retrieves clients matching a status filter, evaluated against
// referenceDate, in insertion order. The all filter is a plain select here;
// the service layer runs the status sweep before calling it.
func (r *clientRepository) GetClients(filter membership.StatusFilter, referenceDate time.Time) ([]models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	var args []interface{}

	switch filter {
	case membership.FilterAll:
		// no predicate
	case membership.FilterActive:
		query += ` WHERE plan_end >= $1`
		args = append(args, referenceDate)
	case membership.FilterInactive:
		query += ` WHERE plan_end < $1`
		args = append(args, referenceDate)
	case membership.FilterExpiring:
		query += ` WHERE plan_end >= $1 AND plan_end <= $2`
		args = append(args, referenceDate, referenceDate.AddDate(0, 0, membership.ExpiringSoonWindowDays))
	default:
		return nil, fmt.Errorf("%w: unknown status filter %q", ErrDatabaseError, string(filter))
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var client models.Client
		if err := rows.Scan(
			&client.ID, &client.CustomID, &client.Name, &client.Phone, &client.Gender,
			&client.PlanStart, &client.PlanEnd, &client.Status,
			&client.AmountPaid, &client.CreatedAt, &client.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

// UpdateClientPlan overwrites the plan window, status and amount paid of a
// client. Other attributes are immutable after registration.
func (r *clientRepository) UpdateClientPlan(executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients SET
	            plan_start = $1, plan_end = $2, status = $3, amount_paid = $4, updated_at = $5
	          WHERE id = $6`

	client.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		client.PlanStart, client.PlanEnd, client.Status, client.AmountPaid,
		client.UpdatedAt, client.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating plan of client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RefreshStatuses recomputes and persists every client's cached status
// against referenceDate in a single statement. Returns the number of rows
// touched.
func (r *clientRepository) RefreshStatuses(executor SQLExecutor, referenceDate time.Time) (int64, error) {
	query := `UPDATE clients SET
	            status = CASE WHEN plan_end >= $1 THEN $2 ELSE $3 END,
	            updated_at = $4`

	result, err := executor.Exec(query,
		referenceDate, membership.StatusActive, membership.StatusExpired, time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: refreshing client statuses: %v", ErrDatabaseError, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for status refresh: %v", ErrDatabaseError, err)
	}
	return rowsAffected, nil
}
