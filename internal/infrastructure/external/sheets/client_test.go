package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

func TestClient_FetchDay(t *testing.T) {
	const grid = "Rooms / Slots,08:00-08:50,09:00-09:50\nC-301,MAD (BCS-5A) Zubair,"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(grid))
	}))
	defer srv.Close()

	client := NewClient(DefaultClientConfig(map[string]string{
		"Monday": srv.URL,
	}))

	got, err := client.FetchDay(context.Background(), shared.Monday)
	require.NoError(t, err)
	assert.Equal(t, grid, got)
	assert.True(t, client.IsHealthy())
}

func TestClient_FetchDay_NoURLConfigured(t *testing.T) {
	client := NewClient(DefaultClientConfig(map[string]string{
		"Monday": "http://example.invalid/monday",
	}))

	_, err := client.FetchDay(context.Background(), shared.Friday)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrUnknownDay)
}

func TestClient_FetchDay_RevokedURLIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(DefaultClientConfig(map[string]string{
		"Monday": srv.URL,
	}))

	_, err := client.FetchDay(context.Background(), shared.Monday)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrSheetInvalidPayload)
	assert.EqualValues(t, 1, calls.Load(), "4xx responses must not be retried")
}

func TestClient_FetchDay_EmptyBodyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(DefaultClientConfig(map[string]string{
		"Wednesday": srv.URL,
	}))

	_, err := client.FetchDay(context.Background(), shared.Wednesday)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrSheetInvalidPayload)
}

func TestClient_FetchDay_ServerErrorRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("Rooms / Slots,08:00-08:50\nLab-1,OS Lab (BCS-5B) Kariem"))
	}))
	defer srv.Close()

	client := NewClient(DefaultClientConfig(map[string]string{
		"Tuesday": srv.URL,
	}))

	got, err := client.FetchDay(context.Background(), shared.Tuesday)
	require.NoError(t, err)
	assert.Contains(t, got, "OS Lab")
	assert.EqualValues(t, 2, calls.Load())
}

func TestClient_Days_TeachingOrder(t *testing.T) {
	client := NewClient(DefaultClientConfig(map[string]string{
		"Friday":    "http://example.invalid/fri",
		"Monday":    "http://example.invalid/mon",
		"Wednesday": "http://example.invalid/wed",
		"not-a-day": "http://example.invalid/junk",
	}))

	days := client.Days()
	assert.Equal(t, []shared.Weekday{shared.Monday, shared.Wednesday, shared.Friday}, days)
}

func TestClient_IsHealthy_ReflectsBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(DefaultClientConfig(map[string]string{
		"Monday": srv.URL,
	}))

	// Enough consecutive failures to trip the breaker.
	for i := 0; i < 10; i++ {
		_, err := client.FetchDay(context.Background(), shared.Monday)
		require.Error(t, err)
		if !client.IsHealthy() {
			break
		}
	}
	assert.False(t, client.IsHealthy())

	_, err := client.FetchDay(context.Background(), shared.Monday)
	require.Error(t, err)
	assert.False(t, errors.Is(err, shared.ErrSheetInvalidPayload))
}
