package search_restaurants

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	searchRestaurants "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/search_restaurants"
)

const (
	msgInvalidQuery = "ожидаются параметры date=YYYY-MM-DD, time=HH:MM, partySize и опционально location, window, sort"
)

type Handler struct {
	useCase SearchRestaurantsUseCase
	logger  Logger
}

func NewHandler(useCase SearchRestaurantsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/search
// Query params: date, time, partySize (required), location, window, sort (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	query, err := handlers.ParseSlotQuery(values.Get)
	if err != nil {
		h.logger.Warn("GET /restaurants/search - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &searchRestaurants.Request{
		Location:      values.Get("location"),
		Date:          query.Date,
		Time:          query.Time,
		PartySize:     query.PartySize,
		WindowMinutes: query.WindowMinutes,
		SortBy:        searchRestaurants.SortBy(values.Get("sort")),
	})
	if err != nil {
		switch {
		case errors.Is(err, searchRestaurants.ErrInvalidInput):
			h.logger.Warn("GET /restaurants/search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /restaurants/search - Search failed: location=%q, error=%v", values.Get("location"), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Excluded > 0 {
		h.logger.Warn("GET /restaurants/search - Restaurants excluded due to errors: count=%d", result.Excluded)
	}

	h.logger.Info("GET /restaurants/search - Search completed: location=%q, found=%d", values.Get("location"), len(result.Restaurants))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
