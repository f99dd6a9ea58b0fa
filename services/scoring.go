package services

import (
	"fmt"

	"quiz-platform/models"
)

// QuizAttempt is a submitted answer sheet: the quiz's maximum score plus the
// rendered questions with both the correctness flag and the taker's selection.
type QuizAttempt struct {
	QuizID    string            `json:"id"`
	Score     int               `json:"score"`
	Questions []AttemptQuestion `json:"questions"`
}

type AttemptQuestion struct {
	Name    string          `json:"name,omitempty"`
	Options []AttemptOption `json:"options"`
}

type AttemptOption struct {
	Text       string `json:"text,omitempty"`
	IsCorrect  bool   `json:"is_correct"`
	IsSelected bool   `json:"is_selected"`
}

// ComputeEarnedScore scores an attempt. Each question is worth
// maxScore / questionCount (integer division), and a question counts as
// answered when an option that is both correct and selected exists. The
// integer division means a fully correct attempt can earn slightly less
// than the quiz maximum when the maximum is not evenly divisible.
func ComputeEarnedScore(attempt QuizAttempt) (int, error) {
	if len(attempt.Questions) == 0 {
		return 0, fmt.Errorf("%w: attempt has no questions", models.ErrInvalidAttempt)
	}

	correctAnswers := 0
	for i, question := range attempt.Questions {
		if len(question.Options) == 0 {
			return 0, fmt.Errorf("%w: question %d has no options", models.ErrInvalidAttempt, i)
		}
		for _, option := range question.Options {
			if option.IsCorrect && option.IsSelected {
				correctAnswers++
			}
		}
	}

	return attempt.Score / len(attempt.Questions) * correctAnswers, nil
}
