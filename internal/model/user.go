package model

import "time"

// User is an application account. PasswordHash holds a bcrypt digest,
// never the raw password.
type User struct {
	ID           uint64    `gorm:"primaryKey"`
	UserName     string    `gorm:"size:64;not null;uniqueIndex"`
	FirstName    string    `gorm:"size:64"`
	MiddleName   string    `gorm:"size:64"`
	LastName     string    `gorm:"size:64"`
	Email        string    `gorm:"size:128;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	Status       string    `gorm:"size:16;not null;default:'active';index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string { return "users" }
