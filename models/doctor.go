package models

import (
	"gorm.io/gorm"
)

type Specialty struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"unique"`
}

// Doctor links a user account to a medical profile. Doctors are never hard
// deleted; deactivation flips Active so past appointments keep a valid
// reference.
type Doctor struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"uniqueIndex"`
	User          User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	SpecialtyID   uint      `json:"specialty_id"`
	Specialty     Specialty `json:"specialty,omitempty" gorm:"foreignKey:SpecialtyID"`
	LicenseNumber string    `json:"license_number" gorm:"unique"`
	Active        bool      `json:"active" gorm:"default:true"`
}
