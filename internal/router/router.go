package router

import (
	"database/sql"

	"gym_crm_backend/internal/handlers"
	"gym_crm_backend/internal/middleware"
	"gym_crm_backend/internal/repositories"
	"gym_crm_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	clientRepo := repositories.NewClientRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	membershipService := services.NewMembershipService(clientRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(membershipService)
	dashboardHandler := handlers.NewDashboardHandler(membershipService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupClientRoutes(authenticated, clientHandler)
		SetupDashboardRoutes(authenticated, dashboardHandler)
	}
}
