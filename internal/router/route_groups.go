package router

import (
	"gym_crm_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes sets up the authentication routes that require no token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.Login)
}

// SetupAuthenticatedAuthRoutes sets up the session routes behind the auth middleware.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.Logout)
	group.GET("/me", authHandler.GetCurrentAdmin)
}

// SetupClientRoutes sets up the client membership routes.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler) {
	clientRoutes := authenticatedGroup.Group("/clients")
	{
		clientRoutes.POST("", clientHandler.RegisterClient)
		clientRoutes.POST("/renew", clientHandler.RenewClient)
		clientRoutes.POST("/status-sweep", clientHandler.RefreshStatuses)
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.GET("/:customId", clientHandler.GetClientByCustomID)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	{
		dashboardRoutes.GET("/summary", dashboardHandler.GetSummary)
	}
}
