package models

import (
	"time"

	"gorm.io/gorm"
)

// Role IDs are fixed by the seed data and referenced directly by the
// permission middleware.
const (
	RoleAdmin     uint = 1
	RoleDoctor    uint = 2
	RoleReception uint = 3
)

type Role struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"unique"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
