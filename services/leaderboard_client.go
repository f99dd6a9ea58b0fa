package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"quiz-platform/models"
)

// ScoreRecord is the leaderboard service's wire representation of one user's
// ranked score.
type ScoreRecord struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Score     int       `json:"score"`
	UpdatedOn time.Time `json:"updated_on,omitempty"`
}

// LeaderboardClient is a thin client over the external leaderboard service.
// It performs no caching and no retries; every failure surfaces as
// models.ErrLeaderboardUnavailable and the caller decides what degrades.
type LeaderboardClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewLeaderboardClient(baseURL, token string) *LeaderboardClient {
	return &LeaderboardClient{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// UpsertScore creates or overwrites the score record for a user. Idempotent
// by user id on the service side.
func (c *LeaderboardClient) UpsertScore(ctx context.Context, record ScoreRecord) (*ScoreRecord, error) {
	url := fmt.Sprintf("%s/api/scores/%s", c.BaseURL, record.UserID)

	body, err := c.do(ctx, http.MethodPut, url, record)
	if err != nil {
		return nil, err
	}

	var out ScoreRecord
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding upsert response: %v", models.ErrLeaderboardUnavailable, err)
	}
	return &out, nil
}

// DeleteScore removes a single user's record from the leaderboard.
func (c *LeaderboardClient) DeleteScore(ctx context.Context, userID string) error {
	url := fmt.Sprintf("%s/api/scores/%s", c.BaseURL, userID)
	_, err := c.do(ctx, http.MethodDelete, url, nil)
	return err
}

// DeleteAllScores wipes the whole leaderboard. Administrative and
// destructive; privilege checks happen at the HTTP edge.
func (c *LeaderboardClient) DeleteAllScores(ctx context.Context) error {
	url := fmt.Sprintf("%s/api/scores", c.BaseURL)
	_, err := c.do(ctx, http.MethodDelete, url, nil)
	return err
}

// GetTopScores returns the leaderboard ordered by score, descending.
func (c *LeaderboardClient) GetTopScores(ctx context.Context) ([]ScoreRecord, error) {
	url := fmt.Sprintf("%s/api/scores/top", c.BaseURL)

	body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var records []ScoreRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding top scores: %v", models.ErrLeaderboardUnavailable, err)
	}
	return records, nil
}

func (c *LeaderboardClient) do(ctx context.Context, method, url string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", models.ErrLeaderboardUnavailable, method, url, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Leaderboard %s %s returned %d: %s", method, url, resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: %s %s returned %d", models.ErrLeaderboardUnavailable, method, url, resp.StatusCode)
	}

	return body, nil
}

// ScoresAfterTopThree returns everything below the podium; the first three
// entries are rendered separately.
func ScoresAfterTopThree(topScores []ScoreRecord) []ScoreRecord {
	if len(topScores) < 4 {
		return topScores
	}
	return topScores[3:]
}
