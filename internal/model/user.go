package model

import "time"

// User is a facilitator account. Campaigns are scoped to their owner.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Login    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt hash

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
