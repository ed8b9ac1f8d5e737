package models

import "time"

// Goal is a savings goal. SavedAmount may exceed TargetAmount; progress is
// not clamped. Higher priority means more urgent for display ordering.
type Goal struct {
	Base
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	Name         string     `gorm:"not null" json:"name"`
	TargetAmount float64    `gorm:"not null;check:target_amount >= 0" json:"target_amount"`
	SavedAmount  float64    `gorm:"default:0;check:saved_amount >= 0" json:"saved_amount"`
	TargetDate   *time.Time `json:"target_date,omitempty"`
	Priority     int        `gorm:"default:1" json:"priority"`
}
