package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/reservation"
	restaurantRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/restaurant"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/ledger"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/logger"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/ptr"
)

// Mocks

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByRestaurantWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

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

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Cancel(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

type countingMetrics struct {
	cancelled map[string]int
}

func (c *countingMetrics) ReservationCancelled(by string) {
	if c.cancelled == nil {
		c.cancelled = map[string]int{}
	}
	c.cancelled[by]++
}

type fixture struct {
	reservations *MockReservationRepository
	restaurants  *MockRestaurantRepository
	ledger       *MockLedger
	metrics      *countingMetrics
	service      *Service
}

func newFixture() *fixture {
	f := &fixture{
		reservations: new(MockReservationRepository),
		restaurants:  new(MockRestaurantRepository),
		ledger:       new(MockLedger),
		metrics:      &countingMetrics{},
	}
	f.service = NewService(f.reservations, f.restaurants, f.ledger, f.metrics, logger.Discard())
	return f
}

var (
	guest = domain.Principal{UserID: 3, Role: domain.RoleUser}
	other = domain.Principal{UserID: 9, Role: domain.RoleUser}
	owner = domain.Principal{UserID: 42, Role: domain.RoleOwner}
	admin = domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	day   = time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
)

func confirmedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:           5,
		RestaurantID: 7,
		TableID:      2,
		UserID:       guest.UserID,
		Date:         day,
		Time:         "19:00",
		PartySize:    2,
		Status:       domain.StatusConfirmed,
	}
}

func TestService_Cancel(t *testing.T) {
	t.Run("author cancels", func(t *testing.T) {
		f := newFixture()
		cancelledAt := day.Add(-time.Hour)
		cancelled := confirmedReservation()
		cancelled.Status = domain.StatusCancelled
		cancelled.CancelledAt = &cancelledAt

		f.reservations.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)
		f.ledger.On("Cancel", mock.Anything, int64(5)).Return(cancelled, nil)

		resp, err := f.service.Cancel(context.Background(), 5, guest)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		require.NotNil(t, resp.CancelledAt)
		assert.Equal(t, 1, f.metrics.cancelled["user"])
	})

	t.Run("admin cancels someone else's reservation", func(t *testing.T) {
		f := newFixture()
		cancelled := confirmedReservation()
		cancelled.Status = domain.StatusCancelled

		f.reservations.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)
		f.ledger.On("Cancel", mock.Anything, int64(5)).Return(cancelled, nil)

		_, err := f.service.Cancel(context.Background(), 5, admin)
		require.NoError(t, err)
		assert.Equal(t, 1, f.metrics.cancelled["admin"])
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)

		_, err := f.service.Cancel(context.Background(), 5, other)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.ledger.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	})

	t.Run("already cancelled is a no-op", func(t *testing.T) {
		f := newFixture()
		already := confirmedReservation()
		already.Status = domain.StatusCancelled
		f.reservations.On("GetByID", mock.Anything, int64(5)).Return(already, nil)

		resp, err := f.service.Cancel(context.Background(), 5, guest)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		f.ledger.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
		assert.Empty(t, f.metrics.cancelled)
	})

	t.Run("completed is rejected", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)
		f.ledger.On("Cancel", mock.Anything, int64(5)).Return(nil, ledger.ErrCannotCancel)

		_, err := f.service.Cancel(context.Background(), 5, guest)
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", mock.Anything, int64(5)).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := f.service.Cancel(context.Background(), 5, guest)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestService_GetByID(t *testing.T) {
	t.Run("author", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)

		resp, err := f.service.GetByID(context.Background(), 5, guest)
		require.NoError(t, err)
		assert.Equal(t, "2026-11-20", resp.Date)
		assert.Equal(t, "19:00", resp.Time)
		f.restaurants.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("restaurant owner", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)
		f.restaurants.On("GetByID", mock.Anything, int64(7)).Return(&domain.Restaurant{ID: 7, OwnerID: owner.UserID}, nil)

		_, err := f.service.GetByID(context.Background(), 5, owner)
		require.NoError(t, err)
	})

	t.Run("stranger", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)
		f.restaurants.On("GetByID", mock.Anything, int64(7)).Return(&domain.Restaurant{ID: 7, OwnerID: owner.UserID}, nil)

		_, err := f.service.GetByID(context.Background(), 5, other)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_GetUserReservations(t *testing.T) {
	t.Run("own history with status", func(t *testing.T) {
		f := newFixture()
		status := domain.StatusConfirmed
		f.reservations.On("GetByUserID", mock.Anything, guest.UserID, &status).
			Return([]*domain.Reservation{confirmedReservation()}, nil)

		resp, err := f.service.GetUserReservations(context.Background(), guest, &models.GetUserReservationsRequest{
			UserID: guest.UserID,
			Status: ptr.Ptr("confirmed"),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 1)
	})

	t.Run("someone else's history", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.GetUserReservations(context.Background(), other, &models.GetUserReservationsRequest{UserID: guest.UserID})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.GetUserReservations(context.Background(), guest, &models.GetUserReservationsRequest{
			UserID: guest.UserID,
			Status: ptr.Ptr("pending"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByUserID", mock.Anything, guest.UserID, (*domain.ReservationStatus)(nil)).
			Return(nil, errors.New("db down"))

		_, err := f.service.GetUserReservations(context.Background(), guest, &models.GetUserReservationsRequest{UserID: guest.UserID})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_GetRestaurantReservations(t *testing.T) {
	t.Run("owner with date filter", func(t *testing.T) {
		f := newFixture()
		f.restaurants.On("GetByID", mock.Anything, int64(7)).Return(&domain.Restaurant{ID: 7, OwnerID: owner.UserID}, nil)
		f.reservations.On("GetByRestaurantWithFilter", mock.Anything, domain.ReservationsFilter{RestaurantID: 7, Date: &day}).
			Return([]*domain.Reservation{confirmedReservation()}, nil)

		resp, err := f.service.GetRestaurantReservations(context.Background(), owner, &models.GetRestaurantReservationsRequest{
			RestaurantID: 7,
			Date:         &day,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 1)
	})

	t.Run("admin skips ownership lookup", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByRestaurantWithFilter", mock.Anything, mock.Anything).Return([]*domain.Reservation{}, nil)

		resp, err := f.service.GetRestaurantReservations(context.Background(), admin, &models.GetRestaurantReservationsRequest{RestaurantID: 7})
		require.NoError(t, err)
		assert.Empty(t, resp.Reservations)
		f.restaurants.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("not the owner", func(t *testing.T) {
		f := newFixture()
		f.restaurants.On("GetByID", mock.Anything, int64(7)).Return(&domain.Restaurant{ID: 7, OwnerID: owner.UserID}, nil)

		_, err := f.service.GetRestaurantReservations(context.Background(), guest, &models.GetRestaurantReservationsRequest{RestaurantID: 7})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		f := newFixture()
		f.restaurants.On("GetByID", mock.Anything, int64(7)).Return(nil, restaurantRepo.ErrRestaurantNotFound)

		_, err := f.service.GetRestaurantReservations(context.Background(), owner, &models.GetRestaurantReservationsRequest{RestaurantID: 7})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
