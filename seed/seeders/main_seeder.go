package seeders

import (
	"log"

	"github.com/medtrustid-lab/medtrust_api/model"
	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll migrates the schema and runs all seeders
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.db.AutoMigrate(
		&model.User{},
		&model.Consent{},
		&model.AccessRequest{},
		&model.AccessLog{},
		&model.SecurityAlert{},
		&model.BlockedIP{},
	); err != nil {
		log.Printf("Schema migration failed: %v", err)
		return err
	}

	userSeeder := NewUserSeeder(s.db)
	if err := userSeeder.SeedUsers(); err != nil {
		log.Printf("User seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedUsersOnly seeds demo accounts without touching the schema
func (s *MainSeeder) SeedUsersOnly() error {
	userSeeder := NewUserSeeder(s.db)
	return userSeeder.SeedUsers()
}
