package models

import (
	"time"
)

// UserRole is the platform-wide role attached to every account.
type UserRole string

const (
	RolePlayer     UserRole = "PLAYER"
	RoleQuizmaster UserRole = "QUIZMASTER"
	RoleAdmin      UserRole = "ADMIN"
)

// User is the platform account row. Score and Level are mutated only through
// the progression service; Level is always derived from Score.
type User struct {
	ID        string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Username  string   `gorm:"uniqueIndex;not null" json:"username"`
	Password  string   `gorm:"not null" json:"-"`
	Email     string   `json:"email,omitempty"`
	AvatarURL string   `gorm:"not null" json:"avatar_url"`
	Role      UserRole `gorm:"type:varchar(20);not null;default:PLAYER" json:"role"`
	Score     int      `gorm:"default:0" json:"score"`
	Level     int      `gorm:"default:1" json:"level"`
	Active    bool     `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
