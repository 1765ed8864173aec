package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	restaurantRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/restaurant"
	"github.com/m04kA/SMC-RestaurantBooking/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/ledger"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/logger"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/ptr"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// Mocks

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

func (m *MockLedger) Append(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyReservationConfirmed(ctx context.Context, n notificationservice.ReservationConfirmed) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) ReservationCreated() {
	m.Called()
}

func (m *MockMetrics) ReservationConflict() {
	m.Called()
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var (
	day   = time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
	now   = time.Date(2026, 11, 19, 12, 0, 0, 0, time.UTC)
	guest = domain.Principal{UserID: 3, Role: domain.RoleUser}
)

type fixture struct {
	restaurants *MockRestaurantRepository
	ledger      *MockLedger
	notifier    *MockNotifier
	metrics     *MockMetrics
	uc          *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		restaurants: new(MockRestaurantRepository),
		ledger:      new(MockLedger),
		notifier:    new(MockNotifier),
		metrics:     new(MockMetrics),
	}
	f.uc = NewUseCase(f.restaurants, f.ledger, f.notifier, time.Second, f.metrics, logger.Discard())
	f.uc.timeProvider = fixedTime{t: now}
	return f
}

func bistro() *domain.Restaurant {
	return &domain.Restaurant{
		ID:       7,
		OwnerID:  42,
		Name:     "Bistro",
		Approved: true,
		Tables: []domain.Table{
			{ID: 1, RestaurantID: 7, Capacity: 4, StartTimes: []types.TimeString{"18:00", "18:30"}, Quantity: ptr.Ptr(1)},
			{ID: 2, RestaurantID: 7, Capacity: 2},
		},
	}
}

func validRequest() *Request {
	return &Request{
		Principal:    guest,
		RestaurantID: 7,
		TableID:      1,
		Date:         day,
		Time:         "18:00",
		PartySize:    4,
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture()
	createdAt := now.Add(time.Minute)

	f.restaurants.On("GetByID", mock.Anything, int64(7)).Return(bistro(), nil)
	f.ledger.On("Append", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.TableID == 1 && r.UserID == guest.UserID && r.Time == "18:00" && r.PartySize == 4 && r.Date.Equal(day)
	})).Return(&domain.Reservation{
		ID:           100,
		RestaurantID: 7,
		TableID:      1,
		UserID:       guest.UserID,
		Date:         day,
		Time:         "18:00",
		PartySize:    4,
		Status:       domain.StatusConfirmed,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil)
	f.metrics.On("ReservationCreated").Return()
	f.notifier.On("NotifyReservationConfirmed", mock.Anything, mock.MatchedBy(func(n notificationservice.ReservationConfirmed) bool {
		return n.ReservationID == 100 && n.RestaurantName == "Bistro" && n.Date == "2026-11-20" && n.Time == "18:00"
	})).Return(nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, types.TimeString("18:00"), resp.Time)

	f.uc.Wait()
	f.ledger.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestUseCase_Execute_FreeFormTableAcceptsAnyTime(t *testing.T) {
	f := newFixture()

	f.restaurants.On("GetByID", mock.Anything, int64(7)).Return(bistro(), nil)
	f.ledger.On("Append", mock.Anything, mock.Anything).
		Return(&domain.Reservation{ID: 5, TableID: 2, Date: day, Time: "12:45", Status: domain.StatusConfirmed}, nil)
	f.metrics.On("ReservationCreated").Return()
	f.notifier.On("NotifyReservationConfirmed", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.TableID = 2
	req.Time = "12:45"
	req.PartySize = 2

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	f.uc.Wait()
}

func TestUseCase_Execute_NotificationFailureKeepsReservation(t *testing.T) {
	f := newFixture()

	f.restaurants.On("GetByID", mock.Anything, int64(7)).Return(bistro(), nil)
	f.ledger.On("Append", mock.Anything, mock.Anything).
		Return(&domain.Reservation{ID: 100, TableID: 1, Date: day, Time: "18:00", Status: domain.StatusConfirmed}, nil)
	f.metrics.On("ReservationCreated").Return()
	f.notifier.On("NotifyReservationConfirmed", mock.Anything, mock.Anything).
		Return(notificationservice.ErrServiceDegraded)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)

	f.uc.Wait()
	f.notifier.AssertExpectations(t)
}

type blockingNotifier struct {
	received chan context.Context
	release  chan struct{}
}

func (b *blockingNotifier) NotifyReservationConfirmed(ctx context.Context, _ notificationservice.ReservationConfirmed) error {
	b.received <- ctx
	<-b.release
	return nil
}

func TestUseCase_Execute_NotificationDoesNotHoldResponse(t *testing.T) {
	f := newFixture()
	notifier := &blockingNotifier{received: make(chan context.Context, 1), release: make(chan struct{})}
	f.uc.notifier = notifier

	f.restaurants.On("GetByID", mock.Anything, int64(7)).Return(bistro(), nil)
	f.ledger.On("Append", mock.Anything, mock.Anything).
		Return(&domain.Reservation{ID: 100, TableID: 1, Date: day, Time: "18:00", Status: domain.StatusConfirmed}, nil)
	f.metrics.On("ReservationCreated").Return()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := f.uc.Execute(ctx, validRequest())
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("booking response waited for the notification")
	}

	// Клиент отключился после ответа
	cancel()

	notifyCtx := <-notifier.received
	assert.NoError(t, notifyCtx.Err())
	_, hasDeadline := notifyCtx.Deadline()
	assert.True(t, hasDeadline)

	close(notifier.release)
	f.uc.Wait()
}

func TestUseCase_Execute_SlotTaken(t *testing.T) {
	f := newFixture()

	f.restaurants.On("GetByID", mock.Anything, int64(7)).Return(bistro(), nil)
	f.ledger.On("Append", mock.Anything, mock.Anything).Return(nil, ledger.ErrSlotConflict)
	f.metrics.On("ReservationConflict").Return()

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)
	f.metrics.AssertExpectations(t)
	f.metrics.AssertNotCalled(t, "ReservationCreated")
	f.notifier.AssertNotCalled(t, "NotifyReservationConfirmed", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	unapproved := bistro()
	unapproved.Approved = false

	malformed := bistro()
	malformed.Tables[0].Quantity = ptr.Ptr(0)

	tests := []struct {
		name       string
		modify     func(r *Request)
		restaurant *domain.Restaurant
		repoErr    error
		wantErr    error
		wantKind   error
	}{
		{
			name:     "anonymous caller",
			modify:   func(r *Request) { r.Principal = domain.Principal{} },
			wantErr:  ErrInvalidInput,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "party size zero",
			modify:   func(r *Request) { r.PartySize = 0 },
			wantErr:  ErrInvalidInput,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "malformed time",
			modify:   func(r *Request) { r.Time = "6pm" },
			wantErr:  ErrInvalidInput,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "in the past",
			modify:   func(r *Request) { r.Date = now.AddDate(0, 0, -1) },
			wantErr:  ErrInPast,
			wantKind: domain.ErrValidation,
		},
		{
			name:     "unknown restaurant",
			repoErr:  restaurantRepo.ErrRestaurantNotFound,
			wantErr:  ErrRestaurantNotFound,
			wantKind: domain.ErrNotFound,
		},
		{
			name:       "unapproved restaurant",
			restaurant: unapproved,
			wantErr:    ErrRestaurantNotFound,
			wantKind:   domain.ErrNotFound,
		},
		{
			name:     "table of another restaurant",
			modify:   func(r *Request) { r.TableID = 99 },
			wantErr:  ErrTableNotFound,
			wantKind: domain.ErrNotFound,
		},
		{
			name:     "party larger than table",
			modify:   func(r *Request) { r.PartySize = 5 },
			wantErr:  ErrPartyTooLarge,
			wantKind: domain.ErrCapacity,
		},
		{
			name:     "time not offered by the table",
			modify:   func(r *Request) { r.Time = "18:15" },
			wantErr:  ErrTimeNotOffered,
			wantKind: domain.ErrValidation,
		},
		{
			name:       "malformed inventory",
			restaurant: malformed,
			wantErr:    domain.ErrMalformedInventory,
		},
		{
			name:    "repository failure",
			repoErr: errors.New("connection reset"),
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			restaurant := tt.restaurant
			if restaurant == nil && tt.repoErr == nil {
				restaurant = bistro()
			}
			if tt.repoErr != nil {
				f.restaurants.On("GetByID", mock.Anything, int64(7)).Return(nil, tt.repoErr)
			} else {
				f.restaurants.On("GetByID", mock.Anything, int64(7)).Return(restaurant, nil)
			}

			req := validRequest()
			if tt.modify != nil {
				tt.modify(req)
			}

			_, err := f.uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
			}
			f.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		})
	}
}

func TestValidateNotInPast(t *testing.T) {
	assert.NoError(t, validateNotInPast(now, "12:00", now))
	assert.ErrorIs(t, validateNotInPast(now, "11:59", now), ErrInPast)
	assert.NoError(t, validateNotInPast(day, "00:00", now))
}
