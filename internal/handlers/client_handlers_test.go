package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gym_crm_backend/internal/membership"
	"gym_crm_backend/internal/models"
	"gym_crm_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMembershipService returns canned results so handler translation logic
// can be tested without repositories or a database.
type stubMembershipService struct {
	client     *models.Client
	clients    []models.Client
	summary    *services.MembershipSummary
	err        error
	lastFilter membership.StatusFilter
}

func (s *stubMembershipService) RegisterClient(services.RegisterClientRequest) (*models.Client, error) {
	return s.client, s.err
}

func (s *stubMembershipService) RenewClient(services.RenewClientRequest) (*models.Client, error) {
	return s.client, s.err
}

func (s *stubMembershipService) GetClientByCustomID(string) (*models.Client, error) {
	return s.client, s.err
}

func (s *stubMembershipService) ListClients(filter membership.StatusFilter, _ time.Time) ([]models.Client, error) {
	s.lastFilter = filter
	return s.clients, s.err
}

func (s *stubMembershipService) RefreshAllStatuses(time.Time) (int64, error) {
	return int64(len(s.clients)), s.err
}

func (s *stubMembershipService) GetMembershipSummary(time.Time) (*services.MembershipSummary, error) {
	return s.summary, s.err
}

func newTestRouter(stub *stubMembershipService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewClientHandler(stub)
	engine.POST("/clients", handler.RegisterClient)
	engine.POST("/clients/renew", handler.RenewClient)
	engine.POST("/clients/status-sweep", handler.RefreshStatuses)
	engine.GET("/clients", handler.GetClients)
	engine.GET("/clients/:customId", handler.GetClientByCustomID)
	return engine
}

func sampleClient() *models.Client {
	return &models.Client{
		ID:         1,
		CustomID:   "GS001",
		Name:       "John Doe",
		Phone:      "1234567890",
		Gender:     models.GenderMale,
		PlanStart:  time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		PlanEnd:    time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		Status:     membership.StatusActive,
		AmountPaid: 1500,
	}
}

func TestRegisterClientCreated(t *testing.T) {
	stub := &stubMembershipService{client: sampleClient()}
	engine := newTestRouter(stub)

	body := `{"name":"John Doe","phone":"1234567890","gender":"Male","plan":"1month","amount_paid":1500}`
	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"GS001"`)
}

func TestRegisterClientErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"duplicate phone is a conflict", services.ErrDuplicatePhone, http.StatusConflict},
		{"invalid name", services.ErrInvalidName, http.StatusBadRequest},
		{"invalid phone", services.ErrInvalidPhone, http.StatusBadRequest},
		{"invalid gender", services.ErrInvalidGender, http.StatusBadRequest},
		{"invalid plan", services.ErrInvalidPlan, http.StatusBadRequest},
		{"invalid amount", services.ErrInvalidAmount, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestRouter(&stubMembershipService{err: tt.err})

			body := `{"name":"John Doe","phone":"1234567890","gender":"Male","plan":"1month","amount_paid":1500}`
			req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRenewClientNotFound(t *testing.T) {
	engine := newTestRouter(&stubMembershipService{err: services.ErrClientNotFound})

	body := `{"custom_id":"GS404","plan":"1month","amount_paid":1000}`
	req := httptest.NewRequest(http.MethodPost, "/clients/renew", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "GS404")
}

func TestGetClientsDefaultsToAllFilter(t *testing.T) {
	stub := &stubMembershipService{clients: []models.Client{*sampleClient()}}
	engine := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, membership.FilterAll, stub.lastFilter)
	assert.Contains(t, rec.Body.String(), `"total":1`)
}

func TestGetClientsFilterParam(t *testing.T) {
	stub := &stubMembershipService{}
	engine := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/clients?filter=expiring", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, membership.FilterExpiring, stub.lastFilter)
}

func TestGetClientsRejectsUnknownFilter(t *testing.T) {
	engine := newTestRouter(&stubMembershipService{})

	req := httptest.NewRequest(http.MethodGet, "/clients?filter=bogus", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusSweep(t *testing.T) {
	stub := &stubMembershipService{clients: []models.Client{*sampleClient(), *sampleClient()}}
	engine := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/clients/status-sweep", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"updated":2`)
}

func TestGetClientByCustomID(t *testing.T) {
	engine := newTestRouter(&stubMembershipService{client: sampleClient()})

	req := httptest.NewRequest(http.MethodGet, "/clients/GS001", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"John Doe"`)
}
