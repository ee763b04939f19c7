package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/medtrustid-lab/medtrust_api/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserSeeder creates the demo patient and staff accounts.
type UserSeeder struct {
	db *gorm.DB
}

func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{db: db}
}

func (s *UserSeeder) SeedUsers() error {
	demoUsers := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"John Doe", "john@example.com", "Patient123!", "patient"},
		{"Dr. Sarah Lee", "sarah@example.com", "Staff123!", "staff"},
	}

	for _, u := range demoUsers {
		var existing model.User
		if err := s.db.Where("email = ?", u.email).First(&existing).Error; err == nil {
			log.Printf("User %s already exists, skipping", u.email)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		id, _ := uuid.NewV7()

		user := model.User{
			ID:        id.String(),
			Name:      u.name,
			Email:     u.email,
			Password:  string(hashed),
			Role:      u.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.Create(&user).Error; err != nil {
			log.Printf("Error creating user %s: %v", u.email, err)
			return err
		}

		log.Printf("Created %s user: %s (password: %s)", u.role, u.email, u.password)
	}

	return nil
}
