package domain

import "time"

type Activity struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"-" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"size:500;not null"`
	Deadline    time.Time `json:"deadline" gorm:"not null"`
	Confirmed   bool      `json:"confirmed" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
