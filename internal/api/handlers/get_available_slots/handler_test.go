package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

func newRequest(restaurantID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/"+restaurantID+"/available-slots?"+query, nil)
	return mux.SetURLVars(req, map[string]string{"restaurantId": restaurantID})
}

func TestHandler_Slots(t *testing.T) {
	date := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)

	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableSlots.Request) bool {
		return req.RestaurantID == 1 && req.Time == "18:15" && req.PartySize == 4 && req.WindowMinutes == nil
	})).Return(&getAvailableSlots.Response{
		RestaurantID:  1,
		Date:          date,
		Time:          "18:15",
		PartySize:     4,
		WindowMinutes: 30,
		Available:     true,
		Slots: []getAvailableSlots.Slot{
			{StartTime: "18:00", TableID: 10, TableCapacity: 4, AvailableSpots: 1, TotalSpots: 2},
		},
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Discard()).Handle(rec, newRequest("1", "date=2026-11-20&time=18:15&partySize=4"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Equal(t, "2026-11-20", resp.Date)
	assert.Equal(t, 30, resp.WindowMinutes)
	assert.Equal(t, []AvailableSlot{{Time: "18:00", TableID: 10, TableCapacity: 4, AvailableSpots: 1, TotalSpots: 2}}, resp.Slots)
	uc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name         string
		restaurantID string
		query        string
		ucErr        error
		wantStatus   int
	}{
		{name: "bad restaurant id", restaurantID: "x", query: "date=2026-11-20&time=18:15&partySize=4", wantStatus: http.StatusBadRequest},
		{name: "bad time", restaurantID: "1", query: "date=2026-11-20&time=25:00&partySize=4", wantStatus: http.StatusBadRequest},
		{name: "bad window", restaurantID: "1", query: "date=2026-11-20&time=18:15&partySize=4&window=wide", wantStatus: http.StatusBadRequest},
		{name: "not found", restaurantID: "1", query: "date=2026-11-20&time=18:15&partySize=4", ucErr: getAvailableSlots.ErrRestaurantNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid", restaurantID: "1", query: "date=2026-11-20&time=18:15&partySize=0", ucErr: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", restaurantID: "1", query: "date=2026-11-20&time=18:15&partySize=4", ucErr: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.Discard()).Handle(rec, newRequest(tt.restaurantID, tt.query))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
