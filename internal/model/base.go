package model

import (
	"time"
)

// BaseModel replaces gorm.Model so the JSON tags stay under our control.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
