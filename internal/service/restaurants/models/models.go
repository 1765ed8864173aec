package models

import (
	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// AddressResponse адрес ресторана
type AddressResponse struct {
	Street  string   `json:"street"`
	City    string   `json:"city"`
	State   string   `json:"state"`
	ZipCode string   `json:"zipCode"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// TableResponse столик ресторана
type TableResponse struct {
	ID         int64    `json:"id"`
	Capacity   int      `json:"capacity"`
	StartTimes []string `json:"startTimes"`
	Quantity   int      `json:"quantity"`
}

// RestaurantResponse ответ с данными ресторана
type RestaurantResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Cuisine       string          `json:"cuisine,omitempty"`
	Description   string          `json:"description,omitempty"`
	Address       AddressResponse `json:"address"`
	Rating        float64         `json:"rating"`
	Tables        []TableResponse `json:"tables"`
	BookingsToday int             `json:"bookingsToday"`
}

// TableListResponse ответ со списком столиков
type TableListResponse struct {
	RestaurantID int64           `json:"restaurantId"`
	Tables       []TableResponse `json:"tables"`
}

// FromDomainAddress конвертирует адрес в DTO
func FromDomainAddress(a domain.Address) AddressResponse {
	return AddressResponse{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Lat:     a.Lat,
		Lng:     a.Lng,
	}
}

// FromDomainTables конвертирует столики в DTO.
// Quantity всегда заполнено: отсутствующее значение означает один столик.
func FromDomainTables(tables []domain.Table) []TableResponse {
	resp := make([]TableResponse, 0, len(tables))
	for _, t := range tables {
		startTimes := make([]string, 0, len(t.StartTimes))
		for _, st := range t.StartTimes {
			startTimes = append(startTimes, st.String())
		}

		resp = append(resp, TableResponse{
			ID:         t.ID,
			Capacity:   t.Capacity,
			StartTimes: startTimes,
			Quantity:   t.Units(),
		})
	}
	return resp
}

// FromDomainRestaurant конвертирует domain модель в DTO
func FromDomainRestaurant(r *domain.Restaurant, bookingsToday int) *RestaurantResponse {
	if r == nil {
		return nil
	}

	return &RestaurantResponse{
		ID:            r.ID,
		Name:          r.Name,
		Cuisine:       r.Cuisine,
		Description:   r.Description,
		Address:       FromDomainAddress(r.Address),
		Rating:        r.Rating,
		Tables:        FromDomainTables(r.Tables),
		BookingsToday: bookingsToday,
	}
}
