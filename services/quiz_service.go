package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"quiz-platform/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewQuizRequest is the quiz-authoring payload: the quiz plus its nested
// questions and options, created as one unit.
type NewQuizRequest struct {
	Name        string            `json:"name" validate:"required,min=3,max=50"`
	Description string            `json:"description"`
	ImageURL    string            `json:"image_url" validate:"omitempty,url"`
	Score       int               `json:"score" validate:"min=0"`
	Category    models.Category   `json:"category" validate:"required,oneof=GEOGRAPHY HISTORY MUSIC"`
	Questions   []QuestionRequest `json:"questions" validate:"dive"`
}

type QuestionRequest struct {
	Name    string                  `json:"name" validate:"required"`
	Options []QuestionOptionRequest `json:"options" validate:"min=2,dive"`
}

type QuestionOptionRequest struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// SubmitResult reports the outcome of one submission. LeaderboardSynced is
// false when the remote push failed; local state is committed either way.
type SubmitResult struct {
	QuizID            string          `json:"quiz_id"`
	EarnedScore       int             `json:"earned_score"`
	TotalScore        int             `json:"total_score"`
	Level             int             `json:"level"`
	Role              models.UserRole `json:"role"`
	LeaderboardSynced bool            `json:"leaderboard_synced"`
}

type QuizService struct {
	DB          *gorm.DB
	Progression *ProgressionService
	Leaderboard *LeaderboardClient
	Cache       *QuizCache

	validate *validator.Validate

	// LeaderboardTimeout bounds the remote push so a slow leaderboard
	// cannot block a submission.
	LeaderboardTimeout time.Duration
}

func NewQuizService(db *gorm.DB, progression *ProgressionService, leaderboard *LeaderboardClient, cache *QuizCache) *QuizService {
	return &QuizService{
		DB:                 db,
		Progression:        progression,
		Leaderboard:        leaderboard,
		Cache:              cache,
		validate:           validator.New(),
		LeaderboardTimeout: 3 * time.Second,
	}
}

// CreateQuiz validates the request and persists the quiz with its questions
// and options in one transaction. No partial tree is ever visible.
func (s *QuizService) CreateQuiz(ctx context.Context, req NewQuizRequest, createdByID string) (*models.Quiz, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidationFailed, err)
	}

	quiz := &models.Quiz{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Score:       req.Score,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		CreatedByID: createdByID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}

		for _, questionReq := range req.Questions {
			question := &models.Question{
				ID:     uuid.NewString(),
				Name:   questionReq.Name,
				QuizID: quiz.ID,
			}
			if err := tx.Create(question).Error; err != nil {
				return err
			}

			for _, optionReq := range questionReq.Options {
				option := &models.QuestionOption{
					ID:         uuid.NewString(),
					Text:       optionReq.Text,
					IsCorrect:  optionReq.IsCorrect,
					QuestionID: question.ID,
				}
				if err := tx.Create(option).Error; err != nil {
					return err
				}
			}
			quiz.Questions = append(quiz.Questions, *question)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Evict(ctx)
	return quiz, nil
}

// GetByID loads a quiz with its full question/option tree.
func (s *QuizService) GetByID(id string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.DB.Preload("Questions.Options").Where("id = ?", id).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrQuizNotFound, id)
		}
		return nil, err
	}
	return &quiz, nil
}

// GetAllByCategory lists quizzes in a category, cache-aside.
func (s *QuizService) GetAllByCategory(ctx context.Context, category models.Category) ([]models.Quiz, error) {
	if quizzes, ok := s.Cache.Get(ctx, category); ok {
		return quizzes, nil
	}

	var quizzes []models.Quiz
	if err := s.DB.Where("category = ?", category).Order("updated_at DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, category, quizzes)
	return quizzes, nil
}

// SetImageURL stores a freshly uploaded cover image URL on a quiz.
func (s *QuizService) SetImageURL(ctx context.Context, quizID, imageURL string) error {
	result := s.DB.Model(&models.Quiz{}).Where("id = ?", quizID).Update("image_url", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", models.ErrQuizNotFound, quizID)
	}
	s.Cache.Evict(ctx)
	return nil
}

// GetAllByUser lists the quizzes a user most recently submitted.
func (s *QuizService) GetAllByUser(userID string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.DB.Where("user_id = ?", userID).Order("updated_at DESC").Find(&quizzes).Error
	return quizzes, err
}

// SubmitQuiz scores an attempt, applies the earned delta to the user through
// the shared progression rule, records the result and the submitter on the
// quiz, and finally pushes the user's new total to the leaderboard. The
// leaderboard push runs under a short timeout; if it fails the local writes
// stay committed and the result is flagged as unsynced.
func (s *QuizService) SubmitQuiz(ctx context.Context, attempt QuizAttempt, userID string) (*SubmitResult, error) {
	quiz, err := s.GetByID(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	// The stored maximum is authoritative even when the attempt round-trips
	// its own copy.
	attempt.Score = quiz.Score

	earnedScore, err := ComputeEarnedScore(attempt)
	if err != nil {
		return nil, err
	}

	user, err := s.Progression.ApplyScoreDelta(userID, earnedScore)
	if err != nil {
		return nil, err
	}

	quiz.EarnedScore = earnedScore
	quiz.UserID = &user.ID
	if err := s.DB.Model(&models.Quiz{}).Where("id = ?", quiz.ID).
		Updates(map[string]interface{}{"earned_score": earnedScore, "user_id": user.ID}).Error; err != nil {
		return nil, err
	}

	result := &SubmitResult{
		QuizID:            quiz.ID,
		EarnedScore:       earnedScore,
		TotalScore:        user.Score,
		Level:             user.Level,
		Role:              user.Role,
		LeaderboardSynced: true,
	}

	pushCtx, cancel := context.WithTimeout(ctx, s.LeaderboardTimeout)
	defer cancel()
	if _, err := s.Leaderboard.UpsertScore(pushCtx, ScoreRecord{
		UserID:    user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		Score:     user.Score,
	}); err != nil {
		log.Printf("⚠️  Leaderboard upsert failed for user %s after quiz %s: %v", user.ID, quiz.ID, err)
		result.LeaderboardSynced = false
	}

	return result, nil
}

// DeleteQuiz performs the 2-level cascade: options, then questions, then the
// quiz itself, all in one transaction with indexed lookups. The trailing
// orphan check turns any partial cascade into a rollback.
func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		if err := tx.Where("id = ?", id).First(&quiz).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", models.ErrQuizNotFound, id)
			}
			return err
		}

		var questionIDs []string
		if err := tx.Model(&models.Question{}).Where("quiz_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.QuestionOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", id).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&quiz).Error; err != nil {
			return err
		}

		var orphanQuestions int64
		if err := tx.Model(&models.Question{}).Where("quiz_id = ?", id).Count(&orphanQuestions).Error; err != nil {
			return err
		}
		var orphanOptions int64
		if len(questionIDs) > 0 {
			if err := tx.Model(&models.QuestionOption{}).Where("question_id IN ?", questionIDs).Count(&orphanOptions).Error; err != nil {
				return err
			}
		}
		if orphanQuestions > 0 || orphanOptions > 0 {
			return fmt.Errorf("%w: quiz %s left %d questions and %d options behind",
				models.ErrCascadeIntegrity, id, orphanQuestions, orphanOptions)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Cache.Evict(ctx)
	return nil
}
