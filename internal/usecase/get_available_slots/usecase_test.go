package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	restaurantRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/restaurant"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/availability"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/logger"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/ptr"
)

type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Evaluate(ctx context.Context, req availability.Request) (*availability.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Result), args.Error(1)
}

var day = time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{RestaurantID: 7, Date: day, Time: "18:15", PartySize: 4}
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("default window and representative details", func(t *testing.T) {
		repo := new(MockRestaurantRepository)
		evaluator := new(MockEvaluator)
		uc := NewUseCase(repo, evaluator, 45, logger.Discard())

		repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Restaurant{ID: 7, Approved: true}, nil)
		evaluator.On("Evaluate", mock.Anything, availability.Request{
			RestaurantID: 7, Date: day, Time: "18:15", PartySize: 4, WindowMinutes: 45,
		}).Return(&availability.Result{
			Slots: []domain.AvailableSlot{{StartTime: "18:00", TableID: 1}, {StartTime: "18:30", TableID: 1}},
			TableSlots: []domain.TableSlot{
				{TableID: 1, TableCapacity: 4, StartTime: "18:00", Remaining: 1, Total: 2},
				{TableID: 1, TableCapacity: 4, StartTime: "18:30", Remaining: 2, Total: 2},
			},
			Aggregate: domain.AggregateAvailability{TotalTables: 2, Reserved: 1},
		}, nil)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, 45, resp.WindowMinutes)
		assert.True(t, resp.Available)
		require.Len(t, resp.Slots, 2)
		assert.Equal(t, Slot{StartTime: "18:00", TableID: 1, TableCapacity: 4, AvailableSpots: 1, TotalSpots: 2}, resp.Slots[0])
		evaluator.AssertExpectations(t)
	})

	t.Run("explicit zero window", func(t *testing.T) {
		repo := new(MockRestaurantRepository)
		evaluator := new(MockEvaluator)
		uc := NewUseCase(repo, evaluator, 30, logger.Discard())

		repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Restaurant{ID: 7, Approved: true}, nil)
		evaluator.On("Evaluate", mock.Anything, mock.MatchedBy(func(r availability.Request) bool {
			return r.WindowMinutes == 0
		})).Return(&availability.Result{}, nil)

		req := validRequest()
		req.WindowMinutes = ptr.Ptr(0)

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
		assert.False(t, resp.Available)
	})

	t.Run("unapproved restaurant", func(t *testing.T) {
		repo := new(MockRestaurantRepository)
		evaluator := new(MockEvaluator)
		uc := NewUseCase(repo, evaluator, 30, logger.Discard())

		repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Restaurant{ID: 7}, nil)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrRestaurantNotFound)
		evaluator.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		repo := new(MockRestaurantRepository)
		uc := NewUseCase(repo, new(MockEvaluator), 30, logger.Discard())

		repo.On("GetByID", mock.Anything, int64(7)).Return(nil, restaurantRepo.ErrRestaurantNotFound)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("malformed inventory surfaces as is", func(t *testing.T) {
		repo := new(MockRestaurantRepository)
		evaluator := new(MockEvaluator)
		uc := NewUseCase(repo, evaluator, 30, logger.Discard())

		repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Restaurant{ID: 7, Approved: true}, nil)
		evaluator.On("Evaluate", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: restaurant=7 table=1", domain.ErrMalformedInventory))

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, domain.ErrMalformedInventory)
	})

	t.Run("evaluator failure", func(t *testing.T) {
		repo := new(MockRestaurantRepository)
		evaluator := new(MockEvaluator)
		uc := NewUseCase(repo, evaluator, 30, logger.Discard())

		repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Restaurant{ID: 7, Approved: true}, nil)
		evaluator.On("Evaluate", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{name: "no restaurant", modify: func(r *Request) { r.RestaurantID = 0 }},
		{name: "no date", modify: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad time", modify: func(r *Request) { r.Time = "25:00" }},
		{name: "empty party", modify: func(r *Request) { r.PartySize = 0 }},
		{name: "huge party", modify: func(r *Request) { r.PartySize = domain.MaxPartySize + 1 }},
		{name: "negative window", modify: func(r *Request) { r.WindowMinutes = ptr.Ptr(-5) }},
		{name: "window too wide", modify: func(r *Request) { r.WindowMinutes = ptr.Ptr(domain.MaxWindowMinutes + 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(req)
			err := validateRequest(req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	assert.NoError(t, validateRequest(validRequest()))
}

type tablesMustNotBeRead struct{ t *testing.T }

func (s tablesMustNotBeRead) ListTables(_ context.Context, restaurantID int64) ([]domain.Table, error) {
	s.t.Errorf("tables of restaurant %d read twice", restaurantID)
	return nil, errors.New("unexpected ListTables")
}

type emptyLedger struct{}

func (emptyLedger) FindConfirmed(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Reservation, error) {
	return []*domain.Reservation{}, nil
}

func TestUseCase_Execute_FreeFormSlotCarriesCapacity(t *testing.T) {
	repo := new(MockRestaurantRepository)
	evaluator := availability.NewService(tablesMustNotBeRead{t: t}, emptyLedger{}, logger.Discard())
	uc := NewUseCase(repo, evaluator, 30, logger.Discard())

	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Restaurant{
		ID:       7,
		Approved: true,
		Tables:   []domain.Table{{ID: 7, RestaurantID: 7, Capacity: 4}},
	}, nil)

	req := validRequest()
	req.PartySize = 2

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Available)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, Slot{StartTime: "18:15", TableID: 7, TableCapacity: 4, AvailableSpots: 1, TotalSpots: 1}, resp.Slots[0])
}
