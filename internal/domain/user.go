package domain

import "time"

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	NationalID   string    `json:"nationalId" gorm:"size:13;uniqueIndex;not null"`
	Salt         string    `json:"-" gorm:"size:29;not null"`
	PasswordHash string    `json:"-" gorm:"size:60;not null"`
	Title        string    `json:"title" gorm:"size:100"`
	FirstName    string    `json:"firstName" gorm:"size:100"`
	LastName     string    `json:"lastName" gorm:"size:100"`
	Role         Role      `json:"role" gorm:"size:20;not null;default:'User'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
