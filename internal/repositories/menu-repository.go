package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/entities"
	apperrors "restaurant-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const menuTable = "menus"

// MenuKey - уникальный ключ меню внутри одного батча импорта.
type MenuKey struct {
	RestaurantID uint64
	Name         string
}

type MenuRepositoryInterface interface {
	GetMenus(ctx context.Context, limit, offset uint64, search string) ([]dto.MenuDTO, uint64, error)
	FindMenu(ctx context.Context, id uint64) (*dto.MenuDTO, error)
	// UpsertMenus вставляет отсутствующие меню одним set-запросом,
	// уникальность - (restaurant_id, name).
	UpsertMenus(ctx context.Context, q Querier, keys []MenuKey) ([]entities.Menu, error)
}

type menuRepository struct{ storage *pgxpool.Pool }

func NewMenuRepository(storage *pgxpool.Pool) MenuRepositoryInterface {
	return &menuRepository{storage: storage}
}

func (r *menuRepository) GetMenus(ctx context.Context, limit, offset uint64, search string) ([]dto.MenuDTO, uint64, error) {
	var total uint64
	var args []interface{}
	whereClause := ""

	if search != "" {
		whereClause = "WHERE m.name ILIKE $1 OR r.name ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s m JOIN restaurants r ON r.id = m.restaurant_id %s", menuTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.MenuDTO{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT m.id, m.restaurant_id, r.name, m.name,
		       (SELECT COUNT(*) FROM menu_menu_items mmi WHERE mmi.menu_id = m.id) AS item_count,
		       m.created_at
		FROM %s m
		JOIN restaurants r ON r.id = m.restaurant_id
		%s ORDER BY m.id LIMIT $%d OFFSET $%d`,
		menuTable, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	menus := make([]dto.MenuDTO, 0)
	for rows.Next() {
		var m dto.MenuDTO
		var createdAt time.Time
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.RestaurantName, &m.Name, &m.ItemCount, &createdAt); err != nil {
			return nil, 0, err
		}
		m.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
		menus = append(menus, m)
	}
	return menus, total, rows.Err()
}

func (r *menuRepository) FindMenu(ctx context.Context, id uint64) (*dto.MenuDTO, error) {
	var m dto.MenuDTO
	var createdAt time.Time
	err := r.storage.QueryRow(ctx, fmt.Sprintf(`
		SELECT m.id, m.restaurant_id, r.name, m.name,
		       (SELECT COUNT(*) FROM menu_menu_items mmi WHERE mmi.menu_id = m.id) AS item_count,
		       m.created_at
		FROM %s m
		JOIN restaurants r ON r.id = m.restaurant_id
		WHERE m.id = $1`, menuTable), id,
	).Scan(&m.ID, &m.RestaurantID, &m.RestaurantName, &m.Name, &m.ItemCount, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	m.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
	return &m, nil
}

func (r *menuRepository) UpsertMenus(ctx context.Context, q Querier, keys []MenuKey) ([]entities.Menu, error) {
	if len(keys) == 0 {
		return []entities.Menu{}, nil
	}

	restaurantIDs := make([]uint64, 0, len(keys))
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		restaurantIDs = append(restaurantIDs, k.RestaurantID)
		names = append(names, k.Name)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (restaurant_id, name)
		SELECT * FROM unnest($1::bigint[], $2::text[])
		ON CONFLICT (restaurant_id, name) DO UPDATE SET updated_at = NOW()
		RETURNING id, restaurant_id, name`, menuTable)

	rows, err := q.Query(ctx, query, restaurantIDs, names)
	if err != nil {
		return nil, fmt.Errorf("upsert меню: %w", err)
	}
	defer rows.Close()

	menus := make([]entities.Menu, 0, len(keys))
	for rows.Next() {
		var menu entities.Menu
		if err := rows.Scan(&menu.ID, &menu.RestaurantID, &menu.Name); err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}
	return menus, rows.Err()
}
