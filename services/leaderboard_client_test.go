package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-platform/models"
)

func TestUpsertScoreSendsRecord(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody ScoreRecord

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotBody.ID = "rec-1"
		_ = json.NewEncoder(w).Encode(gotBody)
	}))
	defer server.Close()

	client := NewLeaderboardClient(server.URL, "svc-token")
	record, err := client.UpsertScore(context.Background(), ScoreRecord{
		UserID:   "u1",
		Username: "alice",
		Score:    1200,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if gotMethod != http.MethodPut || gotPath != "/api/scores/u1" {
		t.Fatalf("expected PUT /api/scores/u1, got %s %s", gotMethod, gotPath)
	}
	if gotAuth != "Bearer svc-token" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if gotBody.Score != 1200 || gotBody.Username != "alice" {
		t.Fatalf("unexpected payload: %+v", gotBody)
	}
	if record.ID != "rec-1" {
		t.Fatalf("expected decoded response record, got %+v", record)
	}
}

func TestLeaderboardFailuresWrapSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewLeaderboardClient(server.URL, "")
	if _, err := client.UpsertScore(context.Background(), ScoreRecord{UserID: "u1"}); !errors.Is(err, models.ErrLeaderboardUnavailable) {
		t.Fatalf("expected ErrLeaderboardUnavailable on 500, got %v", err)
	}
	if err := client.DeleteScore(context.Background(), "u1"); !errors.Is(err, models.ErrLeaderboardUnavailable) {
		t.Fatalf("expected ErrLeaderboardUnavailable on delete, got %v", err)
	}

	// Unreachable server: connection refused must wrap the same sentinel.
	server.Close()
	if _, err := client.GetTopScores(context.Background()); !errors.Is(err, models.ErrLeaderboardUnavailable) {
		t.Fatalf("expected ErrLeaderboardUnavailable on refused connection, got %v", err)
	}
}

func TestGetTopScoresAndDeletes(t *testing.T) {
	var deletedAll bool
	var deletedID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/scores/top":
			_ = json.NewEncoder(w).Encode([]ScoreRecord{
				{UserID: "u1", Score: 900},
				{UserID: "u2", Score: 500},
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/scores":
			deletedAll = true
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete:
			deletedID = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewLeaderboardClient(server.URL, "")

	scores, err := client.GetTopScores(context.Background())
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(scores) != 2 || scores[0].UserID != "u1" {
		t.Fatalf("unexpected top scores: %+v", scores)
	}

	if err := client.DeleteAllScores(context.Background()); err != nil || !deletedAll {
		t.Fatalf("delete all failed: err=%v deletedAll=%v", err, deletedAll)
	}
	if err := client.DeleteScore(context.Background(), "u2"); err != nil || deletedID != "/api/scores/u2" {
		t.Fatalf("delete one failed: err=%v path=%s", err, deletedID)
	}
}

func TestScoresAfterTopThree(t *testing.T) {
	three := []ScoreRecord{{UserID: "a"}, {UserID: "b"}, {UserID: "c"}}
	if got := ScoresAfterTopThree(three); len(got) != 3 {
		t.Fatalf("short boards are returned whole, got %d entries", len(got))
	}

	five := append(three, ScoreRecord{UserID: "d"}, ScoreRecord{UserID: "e"})
	rest := ScoresAfterTopThree(five)
	if len(rest) != 2 || rest[0].UserID != "d" {
		t.Fatalf("expected entries after the podium, got %+v", rest)
	}
}
