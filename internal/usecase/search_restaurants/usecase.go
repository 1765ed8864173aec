package search_restaurants

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/availability"
)

// UseCase use case поиска ресторанов со свободными столиками
type UseCase struct {
	restaurantRepo RestaurantRepository
	evaluator      Evaluator
	metrics        Metrics
	defaultWindow  int
	maxParallel    int
	logger         Logger
}

// NewUseCase создает новый экземпляр use case.
// maxParallel ограничивает число одновременно оцениваемых ресторанов.
func NewUseCase(
	restaurantRepo RestaurantRepository,
	evaluator Evaluator,
	metrics Metrics,
	defaultWindow int,
	maxParallel int,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if defaultWindow <= 0 {
		defaultWindow = domain.DefaultWindowMinutes
	}
	if maxParallel <= 0 {
		maxParallel = 1
	}

	return &UseCase{
		restaurantRepo: restaurantRepo,
		evaluator:      evaluator,
		metrics:        metrics,
		defaultWindow:  defaultWindow,
		maxParallel:    maxParallel,
		logger:         logger,
	}
}

// Execute выполняет поиск.
// Рестораны без свободных времен не попадают в выдачу.
// Ошибка оценки одного ресторана логируется и исключает только его.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchRestaurants: location=%q, date=%s, time=%s, party=%d, sort=%q",
		req.Location, req.Date.Format(domain.DateFormat), req.Time, req.PartySize, req.SortBy)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchRestaurants: validation failed: %v", err)
		return nil, err
	}

	window := uc.defaultWindow
	if req.WindowMinutes != nil {
		window = *req.WindowMinutes
	}

	// 2. Кандидаты из каталога (одобренные, id по возрастанию)
	candidates, err := uc.restaurantRepo.ListApproved(ctx, domain.LocationFilter{Query: strings.TrimSpace(req.Location)})
	if err != nil {
		uc.logger.Error("SearchRestaurants: failed to list restaurants: %v", err)
		return nil, fmt.Errorf("%w: list restaurants: %v", ErrInternal, err)
	}

	// 3. Параллельная оценка с ограничением
	evaluated := make([]*domain.RestaurantAvailability, len(candidates))
	failed := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.maxParallel)

	for i, restaurant := range candidates {
		g.Go(func() error {
			result, err := uc.evaluator.Evaluate(gctx, availability.Request{
				RestaurantID:  restaurant.ID,
				Date:          req.Date,
				Time:          req.Time,
				PartySize:     req.PartySize,
				WindowMinutes: window,
			})
			if err != nil {
				uc.logger.Warn("SearchRestaurants: restaurant id=%d excluded: %v", restaurant.ID, err)
				failed[i] = true
				return nil
			}
			if result.IsEmpty() {
				return nil
			}

			evaluated[i] = &domain.RestaurantAvailability{
				Restaurant: restaurant,
				Slots:      result.Slots,
				Aggregate:  result.Aggregate,
			}
			return nil
		})
	}

	// Горутины не возвращают ошибок, Wait только дожидается завершения
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 4. Сохраняем порядок каталога и убираем пустые
	resp := &Response{Restaurants: make([]domain.RestaurantAvailability, 0, len(candidates))}
	for i := range candidates {
		if failed[i] {
			resp.Excluded++
			continue
		}
		if evaluated[i] != nil {
			resp.Restaurants = append(resp.Restaurants, *evaluated[i])
		}
	}

	// 5. Сортировка по рейтингу
	if req.SortBy == SortByRating {
		sort.SliceStable(resp.Restaurants, func(a, b int) bool {
			return resp.Restaurants[a].Restaurant.Rating > resp.Restaurants[b].Restaurant.Rating
		})
	}

	uc.metrics.SearchCompleted(len(resp.Restaurants), resp.Excluded)
	uc.logger.Info("SearchRestaurants: %d of %d restaurants available, %d excluded",
		len(resp.Restaurants), len(candidates), resp.Excluded)

	return resp, nil
}

type noopMetrics struct{}

func (noopMetrics) SearchCompleted(int, int) {}
