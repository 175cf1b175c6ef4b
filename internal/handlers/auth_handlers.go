package handlers

import (
	"errors"
	"net/http"

	"gym_crm_backend/internal/services"
	"gym_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login handles admin login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Login: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	authResp, err := h.authService.Login(req)
	if err != nil {
		utils.LogError(err, "Login: Error from authService.Login")
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to login.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// GetCurrentAdmin retrieves the profile of the currently authenticated admin.
func (h *AuthHandler) GetCurrentAdmin(c *gin.Context) {
	adminIDRaw, exists := c.Get("adminID")
	if !exists {
		utils.LogError(errors.New("adminID not found in context"), "GetCurrentAdmin: adminID not in context")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Admin not authenticated.", "Missing admin ID in context"))
		return
	}

	adminID, ok := adminIDRaw.(int64)
	if !ok {
		utils.LogError(errors.New("adminID is not of type int64"), "GetCurrentAdmin: adminID type assertion failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Admin ID format incorrect.", "Invalid admin ID format in context"))
		return
	}

	admin, err := h.authService.GetAdminProfile(adminID)
	if err != nil {
		utils.LogError(err, "GetCurrentAdmin: Error from authService.GetAdminProfile for adminID "+utils.Int64ToStr(adminID))
		if errors.Is(err, services.ErrAdminNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Admin profile not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve admin profile.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, admin)
}

// Logout handles admin logout.
// For stateless JWT, this is primarily a client-side action.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully. Please discard your token."})
}
