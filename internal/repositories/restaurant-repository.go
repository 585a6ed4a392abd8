package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/entities"
	apperrors "restaurant-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	restaurantTable  = "restaurants"
	restaurantFields = "id, name, created_at, updated_at"
)

type dbRestaurant struct {
	ID        uint64
	Name      string
	MenuCount uint64
	CreatedAt time.Time
	UpdatedAt sql.NullTime
}

func (db *dbRestaurant) ToDTO() dto.RestaurantDTO {
	updatedAt := ""
	if db.UpdatedAt.Valid {
		updatedAt = db.UpdatedAt.Time.Local().Format("2006-01-02 15:04:05")
	}
	return dto.RestaurantDTO{
		ID:        db.ID,
		Name:      db.Name,
		MenuCount: db.MenuCount,
		CreatedAt: db.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		UpdatedAt: updatedAt,
	}
}

type RestaurantRepositoryInterface interface {
	GetRestaurants(ctx context.Context, limit, offset uint64, search string) ([]dto.RestaurantDTO, uint64, error)
	FindRestaurant(ctx context.Context, id uint64) (*dto.RestaurantDetailDTO, error)
	// UpsertRestaurants вставляет отсутствующие рестораны одним set-запросом
	// и возвращает сущности с id для всех переданных имен.
	UpsertRestaurants(ctx context.Context, q Querier, names []string) ([]entities.Restaurant, error)
}

type restaurantRepository struct{ storage *pgxpool.Pool }

func NewRestaurantRepository(storage *pgxpool.Pool) RestaurantRepositoryInterface {
	return &restaurantRepository{storage: storage}
}

func (r *restaurantRepository) GetRestaurants(ctx context.Context, limit, offset uint64, search string) ([]dto.RestaurantDTO, uint64, error) {
	var total uint64
	var args []interface{}
	whereClause := ""

	if search != "" {
		whereClause = "WHERE name ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", restaurantTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.RestaurantDTO{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT r.id, r.name,
		       (SELECT COUNT(*) FROM menus m WHERE m.restaurant_id = r.id) AS menu_count,
		       r.created_at, r.updated_at
		FROM %s r %s ORDER BY r.id LIMIT $%d OFFSET $%d`,
		restaurantTable, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	restaurants := make([]dto.RestaurantDTO, 0)
	for rows.Next() {
		var dbRow dbRestaurant
		if err := rows.Scan(&dbRow.ID, &dbRow.Name, &dbRow.MenuCount, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		restaurants = append(restaurants, dbRow.ToDTO())
	}
	return restaurants, total, rows.Err()
}

func (r *restaurantRepository) FindRestaurant(ctx context.Context, id uint64) (*dto.RestaurantDetailDTO, error) {
	var restaurant entities.Restaurant
	err := r.storage.QueryRow(ctx,
		fmt.Sprintf("SELECT id, name, created_at FROM %s WHERE id = $1", restaurantTable), id,
	).Scan(&restaurant.ID, &restaurant.Name, &restaurant.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	detail := &dto.RestaurantDetailDTO{
		ID:        restaurant.ID,
		Name:      restaurant.Name,
		Menus:     []dto.MenuDetailDTO{},
		CreatedAt: restaurant.CreatedAt.Local().Format("2006-01-02 15:04:05"),
	}

	rows, err := r.storage.Query(ctx, `
		SELECT m.id, m.name, mi.id, mi.name, mmi.price
		FROM menus m
		LEFT JOIN menu_menu_items mmi ON mmi.menu_id = m.id
		LEFT JOIN menu_items mi ON mi.id = mmi.menu_item_id
		WHERE m.restaurant_id = $1
		ORDER BY m.id, mi.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	menuIndex := map[uint64]int{}
	for rows.Next() {
		var menuID uint64
		var menuName string
		var itemID sql.NullInt64
		var itemName sql.NullString
		var price sql.NullFloat64
		if err := rows.Scan(&menuID, &menuName, &itemID, &itemName, &price); err != nil {
			return nil, err
		}

		idx, ok := menuIndex[menuID]
		if !ok {
			detail.Menus = append(detail.Menus, dto.MenuDetailDTO{ID: menuID, Name: menuName, Items: []dto.MenuItemInMenuDTO{}})
			idx = len(detail.Menus) - 1
			menuIndex[menuID] = idx
		}
		if itemID.Valid {
			detail.Menus[idx].Items = append(detail.Menus[idx].Items, dto.MenuItemInMenuDTO{
				ID:    uint64(itemID.Int64),
				Name:  itemName.String,
				Price: null.NewFloat64(price.Float64, price.Valid),
			})
		}
	}
	return detail, rows.Err()
}

func (r *restaurantRepository) UpsertRestaurants(ctx context.Context, q Querier, names []string) ([]entities.Restaurant, error) {
	if len(names) == 0 {
		return []entities.Restaurant{}, nil
	}

	// DO UPDATE вместо DO NOTHING, чтобы RETURNING отдал id и для уже существующих имен.
	query := fmt.Sprintf(`
		INSERT INTO %s (name)
		SELECT unnest($1::text[])
		ON CONFLICT (name) DO UPDATE SET updated_at = NOW()
		RETURNING id, name`, restaurantTable)

	rows, err := q.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("upsert ресторанов: %w", err)
	}
	defer rows.Close()

	restaurants := make([]entities.Restaurant, 0, len(names))
	for rows.Next() {
		var restaurant entities.Restaurant
		if err := rows.Scan(&restaurant.ID, &restaurant.Name); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}
