// Package api talks to the be-svitlo outage schedule endpoint.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/powerschedule/powerschedule/pkg/models"
)

const defaultBaseURL = "https://be-svitlo.oe.if.ua"

// ErrNoData means the provider answered but had no schedule for the
// requested queue.
var ErrNoData = errors.New("no schedule data for queue")

// Client communicates with the outage schedule API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchSchedules returns one ScheduleData per day the provider knows
// about for the queue. The provider may return any number of days and
// does not guarantee that today is among them; days where the queue key
// is missing are skipped.
func (c *Client) FetchSchedules(ctx context.Context, queueNumber string) ([]models.ScheduleData, error) {
	endpoint := fmt.Sprintf("%s/schedule-by-queue?queue=%s", c.BaseURL, url.QueryEscape(queueNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var responses []models.ScheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&responses); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	var schedules []models.ScheduleData
	for _, r := range responses {
		shutdowns, ok := r.Queues[queueNumber]
		if !ok {
			continue
		}
		schedules = append(schedules, models.ScheduleData{
			EventDate:     r.EventDate,
			CreatedAt:     r.CreatedAt,
			ApprovedSince: r.ScheduleApprovedSince,
			Shutdowns:     shutdowns,
		})
	}

	if len(schedules) == 0 {
		return nil, ErrNoData
	}

	return schedules, nil
}
