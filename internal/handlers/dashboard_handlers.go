package handlers

import (
	"net/http"
	"time"

	"gym_crm_backend/internal/services"
	"gym_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves aggregated membership counts.
type DashboardHandler struct {
	membershipService services.MembershipService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ms services.MembershipService) *DashboardHandler {
	return &DashboardHandler{membershipService: ms}
}

// GetSummary returns total, active, inactive and expiring-soon client counts
// evaluated against today. Read-only; no cached status is touched.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.membershipService.GetMembershipSummary(time.Now())
	if err != nil {
		utils.LogError(err, "GetSummary: Error from membershipService.GetMembershipSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build dashboard summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}
