package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"quiz-platform/models"

	"github.com/redis/go-redis/v9"
)

// QuizCache keeps per-category quiz listings in Redis so the quizzes page
// does not hit postgres on every render. Entries are JSON blobs with a TTL
// and are evicted whenever a quiz is created or deleted. A nil cache is a
// valid no-op (every Get is a miss), which keeps Redis optional.
type QuizCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQuizCache(client *redis.Client, ttl time.Duration) *QuizCache {
	return &QuizCache{client: client, ttl: ttl}
}

func (c *QuizCache) key(category models.Category) string {
	return "quizzes:category:" + string(category)
}

// Get returns the cached listing for a category and whether it was present.
func (c *QuizCache) Get(ctx context.Context, category models.Category) ([]models.Quiz, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, c.key(category)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[QuizCache] get %s: %v", category, err)
		}
		return nil, false
	}

	var quizzes []models.Quiz
	if err := json.Unmarshal(payload, &quizzes); err != nil {
		log.Printf("[QuizCache] corrupt entry for %s: %v", category, err)
		return nil, false
	}
	return quizzes, true
}

// Set stores a category listing. Failures are logged and swallowed; the
// cache is never allowed to fail a read path.
func (c *QuizCache) Set(ctx context.Context, category models.Category, quizzes []models.Quiz) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(quizzes)
	if err != nil {
		log.Printf("[QuizCache] marshal %s: %v", category, err)
		return
	}
	if err := c.client.Set(ctx, c.key(category), payload, c.ttl).Err(); err != nil {
		log.Printf("[QuizCache] set %s: %v", category, err)
	}
}

// Evict drops every category listing. Called after quiz creation/deletion.
func (c *QuizCache) Evict(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	keys := make([]string, 0, len(models.Categories))
	for _, category := range models.Categories {
		keys = append(keys, c.key(category))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[QuizCache] evict: %v", err)
	}
}
