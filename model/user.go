package model

import "time"

type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:text;not null"`
	Name      string     `json:"name" gorm:"not null;size:255"`
	Email     string     `json:"email" gorm:"unique;not null;size:255"`
	Password  string     `json:"-" gorm:"not null"`
	Role      string     `json:"role" gorm:"not null;size:20;default:patient"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"not null"`
}
