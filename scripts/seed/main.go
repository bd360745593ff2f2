package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/skillsync-team/meeting-service/internal/domain/entities"
	"github.com/skillsync-team/meeting-service/internal/infrastructure/database"
	"github.com/skillsync-team/meeting-service/pkg/config"
)

func main() {
	log.Println("🚀 Starting test users creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	// Define test users
	testUsers := []struct {
		Email    string
		Name     string
		Timezone string
	}{
		{Email: "alice@test.local", Name: "Alice", Timezone: "Europe/Berlin"},
		{Email: "bob@test.local", Name: "Bob", Timezone: "America/New_York"},
		{Email: "charlie@test.local", Name: "Charlie", Timezone: "Asia/Tokyo"},
		{Email: "diana@test.local", Name: "Diana", Timezone: "UTC"},
		{Email: "eve@test.local", Name: "Eve", Timezone: "UTC"},
	}

	log.Println("🗑️  Cleaning up existing test users...")
	db.Where("email LIKE ?", "%@test.local").Delete(&entities.User{})

	log.Println("👥 Creating test users...")

	for i, testUser := range testUsers {
		user := &entities.User{
			ID:       uuid.New(),
			Email:    testUser.Email,
			Name:     testUser.Name,
			Timezone: testUser.Timezone,
			IsActive: true,
		}

		if err := db.Create(user).Error; err != nil {
			log.Printf("❌ Failed to create user %s: %v", testUser.Email, err)
			continue
		}

		fmt.Printf("🟢 User %d: %s\n", i+1, testUser.Name)
		fmt.Printf("   Email:    %s\n", user.Email)
		fmt.Printf("   User ID:  %s\n", user.ID)
		fmt.Printf("   Timezone: %s\n\n", user.Timezone)
	}

	log.Println("✅ All test users created successfully!")
	log.Println("💡 Pass a User ID in the X-User-ID header to act as that user")
	log.Println("🧹 To clean up test users, run: DELETE FROM users WHERE email LIKE '%@test.local'")
}
