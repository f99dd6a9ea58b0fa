package services

import (
	"context"
	"testing"
	"time"

	"quiz-platform/models"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*QuizCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewQuizCache(client, time.Minute), mr
}

func TestQuizCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if _, ok := cache.Get(ctx, models.CategoryHistory); ok {
		t.Fatal("expected cold cache miss")
	}

	quizzes := []models.Quiz{{ID: "q1", Name: "Ancient Rome", Category: models.CategoryHistory, Score: 100}}
	cache.Set(ctx, models.CategoryHistory, quizzes)

	cached, ok := cache.Get(ctx, models.CategoryHistory)
	if !ok {
		t.Fatal("expected cache hit after set")
	}
	if len(cached) != 1 || cached[0].Name != "Ancient Rome" {
		t.Fatalf("unexpected cached payload: %+v", cached)
	}

	// Other categories stay cold.
	if _, ok := cache.Get(ctx, models.CategoryMusic); ok {
		t.Fatal("expected miss for uncached category")
	}
}

func TestQuizCacheEvictDropsEveryCategory(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	for _, category := range models.Categories {
		cache.Set(ctx, category, []models.Quiz{{ID: "q-" + string(category), Category: category}})
	}
	cache.Evict(ctx)

	for _, category := range models.Categories {
		if _, ok := cache.Get(ctx, category); ok {
			t.Fatalf("expected %s to be evicted", category)
		}
	}
}

func TestQuizCacheEntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, models.CategoryGeography, []models.Quiz{{ID: "q1"}})
	mr.FastForward(2 * time.Minute)

	if _, ok := cache.Get(ctx, models.CategoryGeography); ok {
		t.Fatal("expected entry to expire after TTL")
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var cache *QuizCache
	ctx := context.Background()

	if _, ok := cache.Get(ctx, models.CategoryMusic); ok {
		t.Fatal("nil cache must always miss")
	}
	cache.Set(ctx, models.CategoryMusic, nil)
	cache.Evict(ctx)
}
