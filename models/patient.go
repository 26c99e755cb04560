package models

import (
	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"uniqueIndex"`
	User      User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
	Gender    string `json:"gender"`
	Address   string `json:"address"`
	BloodType string `json:"blood_type"`
	Active    bool   `json:"active" gorm:"default:true"`
}
