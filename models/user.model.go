package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage    string `gorm:"default:''"`
	Name            string `gorm:"default:''"`
	Email           string `gorm:"unique;not null"`
	Role            string `gorm:"default:'USER'"` // USER, ADMIN
	Password        string `gorm:"not null"`
	IsEmailVerified bool   `gorm:"default:false"`
	LastLogin       time.Time
	IsDeleted       bool `gorm:"default:false"`
}

// IsAdmin reports whether the user bypasses enrollment and prerequisite checks.
func (u *User) IsAdmin() bool {
	return u.Role == "ADMIN"
}
