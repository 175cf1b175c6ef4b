// Command create-admin bootstraps the staff account the CRM is operated with.
package main

import (
	"flag"
	"log"

	"gym_crm_backend/internal/database"
	"gym_crm_backend/internal/repositories"
	"gym_crm_backend/internal/services"
	"gym_crm_backend/pkg/utils"

	"github.com/joho/godotenv"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("a -password is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "gym_crm_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "gym_crm_password")
	dbName := utils.Getenv("DB_NAME", "gym_crm_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	db := database.GetDB()
	defer db.Close()

	authService := services.NewAuthService(repositories.NewAuthRepository(db), db)
	admin, err := authService.CreateAdmin(*username, *password)
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user %q created with id %d", admin.Username, admin.ID)
}
