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

const menuItemTable = "menu_items"

type MenuItemRepositoryInterface interface {
	GetMenuItems(ctx context.Context, limit, offset uint64, search string) ([]dto.MenuItemDTO, uint64, error)
	FindMenuItem(ctx context.Context, id uint64) (*dto.MenuItemDetailDTO, error)
	// UpsertMenuItems вставляет отсутствующие блюда одним set-запросом.
	// Имя блюда уникально глобально: "Burger" в двух ресторанах - одна запись.
	UpsertMenuItems(ctx context.Context, q Querier, names []string) ([]entities.MenuItem, error)
}

type menuItemRepository struct{ storage *pgxpool.Pool }

func NewMenuItemRepository(storage *pgxpool.Pool) MenuItemRepositoryInterface {
	return &menuItemRepository{storage: storage}
}

func (r *menuItemRepository) GetMenuItems(ctx context.Context, limit, offset uint64, search string) ([]dto.MenuItemDTO, uint64, error) {
	var total uint64
	var args []interface{}
	whereClause := ""

	if search != "" {
		whereClause = "WHERE name ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", menuItemTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.MenuItemDTO{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT mi.id, mi.name,
		       (SELECT COUNT(*) FROM menu_menu_items mmi WHERE mmi.menu_item_id = mi.id) AS menu_count,
		       mi.created_at
		FROM %s mi %s ORDER BY mi.id LIMIT $%d OFFSET $%d`,
		menuItemTable, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]dto.MenuItemDTO, 0)
	for rows.Next() {
		var item dto.MenuItemDTO
		var createdAt time.Time
		if err := rows.Scan(&item.ID, &item.Name, &item.MenuCount, &createdAt); err != nil {
			return nil, 0, err
		}
		item.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
		items = append(items, item)
	}
	return items, total, rows.Err()
}

func (r *menuItemRepository) FindMenuItem(ctx context.Context, id uint64) (*dto.MenuItemDetailDTO, error) {
	var item entities.MenuItem
	err := r.storage.QueryRow(ctx,
		fmt.Sprintf("SELECT id, name, created_at FROM %s WHERE id = $1", menuItemTable), id,
	).Scan(&item.ID, &item.Name, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	detail := &dto.MenuItemDetailDTO{
		ID:         item.ID,
		Name:       item.Name,
		Placements: []dto.ItemPlacementDTO{},
		CreatedAt:  item.CreatedAt.Local().Format("2006-01-02 15:04:05"),
	}

	rows, err := r.storage.Query(ctx, `
		SELECT mmi.menu_id, m.name, r.name, mmi.price
		FROM menu_menu_items mmi
		JOIN menus m ON m.id = mmi.menu_id
		JOIN restaurants r ON r.id = m.restaurant_id
		WHERE mmi.menu_item_id = $1
		ORDER BY mmi.menu_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p dto.ItemPlacementDTO
		var price sql.NullFloat64
		if err := rows.Scan(&p.MenuID, &p.MenuName, &p.RestaurantName, &price); err != nil {
			return nil, err
		}
		p.Price = null.NewFloat64(price.Float64, price.Valid)
		detail.Placements = append(detail.Placements, p)
	}
	return detail, rows.Err()
}

func (r *menuItemRepository) UpsertMenuItems(ctx context.Context, q Querier, names []string) ([]entities.MenuItem, error) {
	if len(names) == 0 {
		return []entities.MenuItem{}, nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (name)
		SELECT unnest($1::text[])
		ON CONFLICT (name) DO UPDATE SET updated_at = NOW()
		RETURNING id, name`, menuItemTable)

	rows, err := q.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("upsert блюд: %w", err)
	}
	defer rows.Close()

	items := make([]entities.MenuItem, 0, len(names))
	for rows.Next() {
		var item entities.MenuItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
