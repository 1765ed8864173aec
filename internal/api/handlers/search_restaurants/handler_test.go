package search_restaurants

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	searchRestaurants "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/search_restaurants"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *searchRestaurants.Request) (*searchRestaurants.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*searchRestaurants.Response), args.Error(1)
}

func TestHandler_Found(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *searchRestaurants.Request) bool {
		return req.Location == "Austin, TX" &&
			req.Date.Equal(time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)) &&
			req.Time == "18:15" &&
			req.PartySize == 2 &&
			req.WindowMinutes != nil && *req.WindowMinutes == 60 &&
			req.SortBy == searchRestaurants.SortByRating
	})).Return(&searchRestaurants.Response{
		Restaurants: []domain.RestaurantAvailability{
			{
				Restaurant: &domain.Restaurant{
					ID:      1,
					Name:    "Bistro",
					Rating:  4.5,
					Address: domain.Address{City: "Austin", State: "TX", ZipCode: "78701"},
				},
				Slots: []domain.AvailableSlot{
					{StartTime: "18:00", TableID: 10},
					{StartTime: "18:30", TableID: 11},
				},
			},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/restaurants/search?location=Austin,+TX&date=2026-11-20&time=18:15&partySize=2&window=60&sort=rating", nil)
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Discard()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Restaurants, 1)
	assert.Equal(t, "Bistro", resp.Restaurants[0].Name)
	assert.Equal(t, "78701", resp.Restaurants[0].Address.ZipCode)
	assert.Equal(t, []AvailableSlot{{Time: "18:00", TableID: 10}, {Time: "18:30", TableID: 11}}, resp.Restaurants[0].AvailableSlots)
	uc.AssertExpectations(t)
}

func TestHandler_EmptyResultIsArray(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&searchRestaurants.Response{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/search?date=2026-11-20&time=18:15&partySize=2", nil)
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Discard()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":0,"restaurants":[]}`, rec.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		ucErr      error
		wantStatus int
	}{
		{name: "missing date", query: "time=18:15&partySize=2", wantStatus: http.StatusBadRequest},
		{name: "bad party size", query: "date=2026-11-20&time=18:15&partySize=two", wantStatus: http.StatusBadRequest},
		{name: "rejected by use case", query: "date=2026-11-20&time=18:15&partySize=2&sort=price", ucErr: searchRestaurants.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", query: "date=2026-11-20&time=18:15&partySize=2", ucErr: searchRestaurants.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/search?"+tt.query, nil)
			rec := httptest.NewRecorder()
			NewHandler(uc, logger.Discard()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
