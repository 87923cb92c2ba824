package models

import "time"

// User is an administrator account. Only mutating budget routes require
// authentication; public read routes are anonymous.
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	FullName    string     `json:"fullName"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}
