package models

import (
	"time"
)

// Category is the fixed set of quiz categories.
type Category string

const (
	CategoryGeography Category = "GEOGRAPHY"
	CategoryHistory   Category = "HISTORY"
	CategoryMusic     Category = "MUSIC"
)

// Categories lists every valid quiz category, in display order.
var Categories = []Category{CategoryGeography, CategoryHistory, CategoryMusic}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Quiz is the root of the quiz aggregate. Score is the maximum achievable
// score; EarnedScore records the result of the most recent submission and
// UserID the user who made it. CreatedByID keeps the original author.
type Quiz struct {
	ID          string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string   `gorm:"uniqueIndex;not null" json:"name"`
	Category    Category `gorm:"type:varchar(20);not null;index" json:"category"`
	Score       int      `gorm:"default:0" json:"score"`
	EarnedScore int      `gorm:"default:0" json:"earned_score"`
	ImageURL    string   `json:"image_url,omitempty"`
	Description string   `json:"description,omitempty"`

	CreatedByID string  `gorm:"type:uuid" json:"created_by_id,omitempty"`
	UserID      *string `gorm:"type:uuid;index" json:"user_id,omitempty"` // last submitter

	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Question cannot outlive its Quiz; deletion goes through the cascade in
// the quiz service only.
type Question struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	QuizID string `gorm:"type:uuid;not null;index" json:"quiz_id"`

	Options []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

// QuestionOption cannot outlive its Question.
type QuestionOption struct {
	ID         string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Text       string `gorm:"not null" json:"text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"is_correct"`
	QuestionID string `gorm:"type:uuid;not null;index" json:"question_id"`
}
