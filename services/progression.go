package services

import (
	"errors"
	"fmt"

	"quiz-platform/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreRules define the tunable progression thresholds (overridable via env).
type ScoreRules struct {
	PointsPerLevel     int
	PromotionThreshold int
	DailyBonusPoints   int
}

var DefaultScoreRules = ScoreRules{
	PointsPerLevel:     1000,
	PromotionThreshold: 10000,
	DailyBonusPoints:   10,
}

// roleTransitions maps a role to the role it becomes once the user's score
// clears the promotion threshold. Roles absent from the table never change,
// so promotion is one-directional and ADMIN/QUIZMASTER are left alone.
var roleTransitions = map[models.UserRole]models.UserRole{
	models.RolePlayer: models.RoleQuizmaster,
}

func nextRole(current models.UserRole, score int, rules ScoreRules) models.UserRole {
	if score <= rules.PromotionThreshold {
		return current
	}
	if promoted, ok := roleTransitions[current]; ok {
		return promoted
	}
	return current
}

// levelForScore derives the level from a cumulative score.
func levelForScore(score int, rules ScoreRules) int {
	return score/rules.PointsPerLevel + 1
}

type ProgressionService struct {
	DB    *gorm.DB
	Rules ScoreRules
}

func NewProgressionService(db *gorm.DB, rules ScoreRules) *ProgressionService {
	return &ProgressionService{DB: db, Rules: rules}
}

// ApplyScoreDelta adds delta to the user's cumulative score, recomputes the
// level and applies the promotion table, then persists. The row is locked
// for the duration so concurrent submissions and bonus runs cannot lose
// updates.
// Callers must invoke it exactly once per logical event: it is not
// idempotent under retries.
func (s *ProgressionService) ApplyScoreDelta(userID string, delta int) (*models.User, error) {
	var updated *models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", models.ErrUserNotFound, userID)
			}
			return err
		}

		user.Score += delta
		user.Level = levelForScore(user.Score, s.Rules)
		user.Role = nextRole(user.Role, user.Score, s.Rules)

		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		updated = &models.User{}
		*updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
