package notificationservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/pkg/logger"
)

func notification() ReservationConfirmed {
	return ReservationConfirmed{
		ReservationID:  10,
		UserID:         3,
		RestaurantID:   1,
		RestaurantName: "Trattoria",
		TableID:        2,
		Date:           "2026-11-20",
		Time:           "19:00",
		PartySize:      4,
	}
}

func TestClient_SendReservationConfirmed(t *testing.T) {
	var got ReservationConfirmed
	var idempotencyKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications/reservations", r.URL.Path)
		idempotencyKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.Discard())
	require.NoError(t, c.SendReservationConfirmed(context.Background(), notification()))

	assert.Equal(t, notification(), got)
	assert.Equal(t, "reservation-10-confirmed", idempotencyKey)
}

func TestClient_SendReservationConfirmed_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"code":400,"message":"unknown user"}`},
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, time.Second, logger.Discard())
			err := c.SendReservationConfirmed(context.Background(), notification())
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestClient_NotifyReservationConfirmed_Degrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50*time.Millisecond, logger.Discard())
	err := c.NotifyReservationConfirmed(context.Background(), notification())
	assert.ErrorIs(t, err, ErrServiceDegraded)
}

func TestClient_Disabled(t *testing.T) {
	c := NewClient("", time.Second, logger.Discard())
	assert.False(t, c.Enabled())
	assert.NoError(t, c.NotifyReservationConfirmed(context.Background(), notification()))
}
