package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	// No DeletedAt for hard delete; posts, comments, likes and karma cascade
}
