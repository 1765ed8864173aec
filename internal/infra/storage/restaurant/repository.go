package restaurant

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

var zipCodePattern = regexp.MustCompile(`^\d{5}$`)

var restaurantColumns = []string{
	"id",
	"owner_id",
	"name",
	"cuisine",
	"description",
	"street",
	"city",
	"state",
	"zip_code",
	"lat",
	"lng",
	"rating",
	"approved",
	"created_at",
	"updated_at",
}

var tableColumns = []string{
	"id",
	"restaurant_id",
	"capacity",
	"start_times",
	"quantity",
}

// Repository репозиторий ресторанов и их столиков (инвентарь)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресторанов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает ресторан по ID вместе со столиками
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(restaurantColumns...).
		From("restaurants").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	restaurant, err := scanRestaurant(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan restaurant: %v", ErrScanRow, err)
	}

	tables, err := r.ListTables(ctx, id)
	if err != nil {
		return nil, err
	}
	restaurant.Tables = tables

	return restaurant, nil
}

// ListApproved получает одобренные рестораны, отфильтрованные по локации.
// Столики не загружаются: их читает оценка доступности по каждому ресторану отдельно.
// Порядок: по ID по возрастанию.
//
// Правила фильтра:
// - 5 цифр: точное совпадение zip кода
// - "City, ST": подстрока города И подстрока штата (без учета регистра)
// - иначе: подстрока города ИЛИ штата (без учета регистра)
func (r *Repository) ListApproved(ctx context.Context, filter domain.LocationFilter) ([]*domain.Restaurant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(restaurantColumns...).
		From("restaurants").
		Where(squirrel.Eq{"approved": true}).
		OrderBy("id ASC")

	if cond := locationCondition(filter); cond != nil {
		selectBuilder = selectBuilder.Where(cond)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListApproved - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListApproved - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	restaurants := make([]*domain.Restaurant, 0)
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListApproved - scan restaurant: %v", ErrScanRow, err)
		}
		restaurants = append(restaurants, restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListApproved - rows iteration: %v", ErrScanRow, err)
	}

	return restaurants, nil
}

// ListTables получает столики ресторана, упорядоченные по ID
func (r *Repository) ListTables(ctx context.Context, restaurantID int64) ([]domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tableColumns...).
		From("restaurant_tables").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTables - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTables - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]domain.Table, 0)
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListTables - scan table: %v", ErrScanRow, err)
		}
		tables = append(tables, *table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTables - rows iteration: %v", ErrScanRow, err)
	}

	return tables, nil
}

// GetTable получает столик ресторана.
// Внутри транзакции берет блокировку строки (FOR UPDATE): это точка сериализации
// конкурентных бронирований одного столика.
func (r *Repository) GetTable(ctx context.Context, restaurantID, tableID int64) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(tableColumns...).
		From("restaurant_tables").
		Where(squirrel.Eq{"id": tableID, "restaurant_id": restaurantID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTable - build select query: %v", ErrBuildQuery, err)
	}

	table, err := scanTable(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	if err != nil {
		// %w сохраняет *pq.Error: по нему txmanager распознает проигранную гонку
		return nil, fmt.Errorf("%w: GetTable - scan table: %w", ErrScanRow, err)
	}

	return table, nil
}

// locationCondition строит условие фильтрации по локации
func locationCondition(filter domain.LocationFilter) squirrel.Sqlizer {
	q := strings.TrimSpace(filter.Query)
	if q == "" {
		return nil
	}

	if zipCodePattern.MatchString(q) {
		return squirrel.Eq{"zip_code": q}
	}

	if city, state, ok := strings.Cut(q, ","); ok {
		city, state = strings.TrimSpace(city), strings.TrimSpace(state)
		cond := squirrel.And{}
		if city != "" {
			cond = append(cond, squirrel.ILike{"city": contains(city)})
		}
		if state != "" {
			cond = append(cond, squirrel.ILike{"state": contains(state)})
		}
		if len(cond) == 0 {
			return nil
		}
		return cond
	}

	return squirrel.Or{
		squirrel.ILike{"city": contains(q)},
		squirrel.ILike{"state": contains(q)},
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRestaurant(row scanner) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	var lat, lng sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&restaurant.ID,
		&restaurant.OwnerID,
		&restaurant.Name,
		&restaurant.Cuisine,
		&restaurant.Description,
		&restaurant.Address.Street,
		&restaurant.Address.City,
		&restaurant.Address.State,
		&restaurant.Address.ZipCode,
		&lat,
		&lng,
		&restaurant.Rating,
		&restaurant.Approved,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		restaurant.Address.Lat = &lat.Float64
	}
	if lng.Valid {
		restaurant.Address.Lng = &lng.Float64
	}
	restaurant.CreatedAt = createdAt.Time
	restaurant.UpdatedAt = updatedAt.Time

	return &restaurant, nil
}

func scanTable(row scanner) (*domain.Table, error) {
	var table domain.Table
	var startTimes []string
	var quantity sql.NullInt64

	err := row.Scan(
		&table.ID,
		&table.RestaurantID,
		&table.Capacity,
		pq.Array(&startTimes),
		&quantity,
	)
	if err != nil {
		return nil, err
	}

	table.StartTimes = make([]types.TimeString, len(startTimes))
	for i, st := range startTimes {
		table.StartTimes[i] = types.TimeString(st)
	}
	if quantity.Valid {
		q := int(quantity.Int64)
		table.Quantity = &q
	}

	return &table, nil
}
