package handlers

import (
	"errors"
	"net/http"
	"time"

	"gym_crm_backend/internal/membership"
	"gym_crm_backend/internal/services"
	"gym_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClientHandler holds the membership service.
type ClientHandler struct {
	membershipService services.MembershipService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(ms services.MembershipService) *ClientHandler {
	return &ClientHandler{membershipService: ms}
}

// RegisterClient handles the registration of a new client.
func (h *ClientHandler) RegisterClient(c *gin.Context) {
	var req services.RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RegisterClient: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.membershipService.RegisterClient(req)
	if err != nil {
		utils.LogError(err, "RegisterClient: Error from membershipService.RegisterClient")
		if errors.Is(err, services.ErrDuplicatePhone) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Phone number already registered.", err.Error()))
		} else if isRegistrationValidationError(err) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, client)
}

func isRegistrationValidationError(err error) bool {
	return errors.Is(err, services.ErrInvalidName) ||
		errors.Is(err, services.ErrInvalidPhone) ||
		errors.Is(err, services.ErrInvalidGender) ||
		errors.Is(err, services.ErrInvalidPlan) ||
		errors.Is(err, services.ErrInvalidAmount)
}

// RenewClient handles renewing a client's subscription plan.
func (h *ClientHandler) RenewClient(c *gin.Context) {
	var req services.RenewClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RenewClient: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.membershipService.RenewClient(req)
	if err != nil {
		utils.LogError(err, "RenewClient: Error from membershipService.RenewClient for "+req.CustomID)
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No client found with ID "+req.CustomID, err.Error()))
		} else if errors.Is(err, services.ErrMissingClientID) ||
			errors.Is(err, services.ErrInvalidPlan) ||
			errors.Is(err, services.ErrInvalidAmount) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to renew client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

// GetClients handles listing clients by status filter. The "all" filter also
// refreshes every cached status, matching the overview behavior.
func (h *ClientHandler) GetClients(c *gin.Context) {
	filter, err := membership.ParseStatusFilter(c.DefaultQuery("filter", string(membership.FilterAll)))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid status filter.", err.Error()))
		return
	}

	clients, err := h.membershipService.ListClients(filter, time.Now())
	if err != nil {
		utils.LogError(err, "GetClients: Error from membershipService.ListClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch clients.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   clients,
		"total":  len(clients),
		"filter": filter,
	})
}

// GetClientByCustomID handles fetching a single client by custom ID.
func (h *ClientHandler) GetClientByCustomID(c *gin.Context) {
	customID := c.Param("customId")

	client, err := h.membershipService.GetClientByCustomID(customID)
	if err != nil {
		utils.LogError(err, "GetClientByCustomID: Error from membershipService for "+customID)
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No client found with ID "+customID, err.Error()))
		} else if errors.Is(err, services.ErrMissingClientID) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Client ID is required.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

// RefreshStatuses handles the explicit status sweep.
func (h *ClientHandler) RefreshStatuses(c *gin.Context) {
	updated, err := h.membershipService.RefreshAllStatuses(time.Now())
	if err != nil {
		utils.LogError(err, "RefreshStatuses: Error from membershipService.RefreshAllStatuses")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to refresh client statuses.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
