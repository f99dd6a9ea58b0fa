package services

import (
	"context"
	"log"
	"time"

	"quiz-platform/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ActivityWindow is how recently a user must have been touched to count as
// active for the bonus run.
const ActivityWindow = 24 * time.Hour

// DailyBonusJob grants a fixed bonus to recently active users on a recurring
// schedule. Each run is sequential over the active set; promotion goes
// through the same ApplyScoreDelta rule as quiz submissions, and ApplyScoreDelta's
// save refreshes updated_at, so a user gets exactly one save per run.
type DailyBonusJob struct {
	DB          *gorm.DB
	Progression *ProgressionService
	Leaderboard *LeaderboardClient
	Interval    time.Duration
}

func NewDailyBonusJob(db *gorm.DB, progression *ProgressionService, leaderboard *LeaderboardClient) *DailyBonusJob {
	return &DailyBonusJob{
		DB:          db,
		Progression: progression,
		Leaderboard: leaderboard,
		Interval:    24 * time.Hour,
	}
}

// Start schedules the job. Singleton mode reschedules instead of stacking
// runs, so a slow run simply delays the next firing.
func (j *DailyBonusJob) Start() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(j.Interval),
		gocron.NewTask(j.Run),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}

// Run executes one bonus pass: every user whose updated_at falls inside the
// activity window gets the bonus and a leaderboard push; everyone else is
// left untouched, with no save call.
func (j *DailyBonusJob) Run() {
	cutoff := time.Now().Add(-ActivityWindow)

	var activeUsers []models.User
	if err := j.DB.Where("updated_at > ?", cutoff).Find(&activeUsers).Error; err != nil {
		log.Printf("[DailyBonus] DB error: %v", err)
		return
	}

	granted := 0
	for _, user := range activeUsers {
		updated, err := j.Progression.ApplyScoreDelta(user.ID, j.Progression.Rules.DailyBonusPoints)
		if err != nil {
			log.Printf("[DailyBonus] Failed to grant bonus to user %s: %v", user.ID, err)
			continue
		}
		granted++

		if j.Leaderboard == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if _, err := j.Leaderboard.UpsertScore(ctx, ScoreRecord{
			UserID:    updated.ID,
			Username:  updated.Username,
			AvatarURL: updated.AvatarURL,
			Score:     updated.Score,
		}); err != nil {
			log.Printf("[DailyBonus] Leaderboard push failed for user %s: %v", updated.ID, err)
		}
		cancel()
	}

	log.Printf("✅ Daily bonus: granted %d points to %d active users", j.Progression.Rules.DailyBonusPoints, granted)
}
