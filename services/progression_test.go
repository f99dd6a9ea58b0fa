package services

import (
	"testing"

	"quiz-platform/models"
)

func TestLevelForScore(t *testing.T) {
	cases := []struct {
		score int
		want  int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{1001, 2},
		{9999, 10},
		{10001, 11},
	}
	for _, tc := range cases {
		if got := levelForScore(tc.score, DefaultScoreRules); got != tc.want {
			t.Fatalf("score %d: expected level %d, got %d", tc.score, tc.want, got)
		}
	}
}

func TestNextRolePromotesPlayerPastThreshold(t *testing.T) {
	if got := nextRole(models.RolePlayer, 10001, DefaultScoreRules); got != models.RoleQuizmaster {
		t.Fatalf("expected QUIZMASTER, got %s", got)
	}
}

func TestNextRoleThresholdIsExclusive(t *testing.T) {
	if got := nextRole(models.RolePlayer, 10000, DefaultScoreRules); got != models.RolePlayer {
		t.Fatalf("score exactly at threshold must not promote, got %s", got)
	}
}

func TestNextRoleLeavesElevatedRolesAlone(t *testing.T) {
	for _, role := range []models.UserRole{models.RoleQuizmaster, models.RoleAdmin} {
		if got := nextRole(role, 999999, DefaultScoreRules); got != role {
			t.Fatalf("expected %s to keep role, got %s", role, got)
		}
	}
}
