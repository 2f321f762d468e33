package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoDayPayload = `[
  {
    "eventDate": "10.11.2025",
    "createdAt": "10.11.2025 06:12",
    "scheduleApprovedSince": "10.11.2025 06:00",
    "queues": {
      "4.2": [
        {"from": "04:00", "to": "07:00", "shutdownHours": "3 год"},
        {"from": "18:00", "to": "21:00", "shutdownHours": "3 год"}
      ],
      "1.1": [
        {"from": "00:00", "to": "03:00", "shutdownHours": "3 год"}
      ]
    }
  },
  {
    "eventDate": "11.11.2025",
    "createdAt": "10.11.2025 20:45",
    "scheduleApprovedSince": "10.11.2025 20:30",
    "queues": {
      "4.2": [
        {"from": "08:00", "to": "11:00", "shutdownHours": "3 год"}
      ]
    }
  }
]`

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient()
	c.BaseURL = srv.URL
	return c, srv
}

func TestFetchSchedules(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedule-by-queue", r.URL.Path)
		assert.Equal(t, "4.2", r.URL.Query().Get("queue"))
		w.Write([]byte(twoDayPayload))
	})
	defer srv.Close()

	schedules, err := c.FetchSchedules(context.Background(), "4.2")
	require.NoError(t, err)
	require.Len(t, schedules, 2)

	assert.Equal(t, "10.11.2025", schedules[0].EventDate)
	assert.Equal(t, "10.11.2025 06:12", schedules[0].CreatedAt)
	assert.Equal(t, "10.11.2025 06:00", schedules[0].ApprovedSince)
	require.Len(t, schedules[0].Shutdowns, 2)
	assert.Equal(t, "04:00", schedules[0].Shutdowns[0].From)
	assert.Equal(t, "3 год", schedules[0].Shutdowns[0].Hours)

	assert.Equal(t, "11.11.2025", schedules[1].EventDate)
	require.Len(t, schedules[1].Shutdowns, 1)
}

func TestFetchSchedulesQueueMissing(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(twoDayPayload))
	})
	defer srv.Close()

	_, err := c.FetchSchedules(context.Background(), "9.9")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFetchSchedulesEmptyBody(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	defer srv.Close()

	_, err := c.FetchSchedules(context.Background(), "4.2")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFetchSchedulesServerError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := c.FetchSchedules(context.Background(), "4.2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchSchedulesBadJSON(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})
	defer srv.Close()

	_, err := c.FetchSchedules(context.Background(), "4.2")
	assert.Error(t, err)
}
