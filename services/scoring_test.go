package services

import (
	"errors"
	"testing"

	"quiz-platform/models"
)

func attemptWith(maxScore int, answers ...bool) QuizAttempt {
	questions := make([]AttemptQuestion, 0, len(answers))
	for _, answeredCorrectly := range answers {
		questions = append(questions, AttemptQuestion{
			Options: []AttemptOption{
				{Text: "right", IsCorrect: true, IsSelected: answeredCorrectly},
				{Text: "wrong", IsCorrect: false, IsSelected: !answeredCorrectly},
			},
		})
	}
	return QuizAttempt{Score: maxScore, Questions: questions}
}

func TestComputeEarnedScoreExactValues(t *testing.T) {
	cases := []struct {
		name    string
		attempt QuizAttempt
		want    int
	}{
		{"all correct, divisible", attemptWith(100, true, true, true, true), 100},
		{"two of three, remainder lost", attemptWith(100, true, true, false), 66},
		{"all correct, not divisible, below max", attemptWith(100, true, true, true), 99},
		{"none correct", attemptWith(100, false, false), 0},
		{"single question full marks", attemptWith(50, true), 50},
		{"zero max score", attemptWith(0, true, true), 0},
	}

	for _, tc := range cases {
		got, err := ComputeEarnedScore(tc.attempt)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestComputeEarnedScoreNoQuestions(t *testing.T) {
	_, err := ComputeEarnedScore(QuizAttempt{Score: 100})
	if !errors.Is(err, models.ErrInvalidAttempt) {
		t.Fatalf("expected ErrInvalidAttempt, got %v", err)
	}
}

func TestComputeEarnedScoreQuestionWithoutOptions(t *testing.T) {
	attempt := attemptWith(100, true)
	attempt.Questions = append(attempt.Questions, AttemptQuestion{})

	_, err := ComputeEarnedScore(attempt)
	if !errors.Is(err, models.ErrInvalidAttempt) {
		t.Fatalf("expected ErrInvalidAttempt, got %v", err)
	}
}
