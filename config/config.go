package config

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/Alias1177/WinGo-Predictor/internal/platform/http"
	"github.com/Alias1177/WinGo-Predictor/models"
)

// Client talks to the WinGo unified API.
type Client struct {
	http   *platformhttp.Client
	config *models.Config
	logger zerolog.Logger
}

// NewClient creates a new feed client with rate limiting and retries.
func NewClient(config *models.Config) *Client {
	return &Client{
		http: platformhttp.NewClient(platformhttp.ClientOptions{
			Timeout: time.Duration(config.RequestTimeout) * time.Second,
		}),
		config: config,
		logger: log.With().Str("component", "feed_client").Logger(),
	}
}

// GetLatestRound fetches the most recent 1-minute round. Any failure
// (network, malformed payload, empty result, number out of range) is
// returned as an error so the caller can abort the cycle cleanly.
func (c *Client) GetLatestRound(ctx context.Context) (*models.WinGoRound, error) {
	c.logger.Debug().Str("url", c.config.FeedURL).Msg("Fetching latest round")

	body, err := c.http.Get(ctx, c.config.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}

	if strings.Contains(string(body), `"status":"error"`) {
		c.logger.Error().Str("response", string(body)).Msg("WinGo API error")
		return nil, fmt.Errorf("WinGo API error: %s", string(body))
	}

	var data models.WinGoResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if len(data) == 0 {
		c.logger.Warn().Str("response", string(body)).Msg("No rounds in response")
		return nil, fmt.Errorf("empty data returned")
	}

	round := data[0].Content
	if round.IssueNumber == "" {
		return nil, fmt.Errorf("round missing issue number")
	}
	if round.Number < 0 || round.Number > 9 {
		return nil, fmt.Errorf("drawn number %d out of range", round.Number)
	}

	c.logger.Debug().Str("period", round.IssueNumber).Int("number", round.Number).Msg("Fetched round")
	return &round, nil
}
