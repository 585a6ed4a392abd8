package repositories

import (
	"context"
	"fmt"

	"restaurant-system/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

const placementTable = "menu_menu_items"

// PlacementRow - одна строка связи меню-блюдо с ценой для батчевого upsert.
type PlacementRow struct {
	MenuID     uint64
	MenuItemID uint64
	Price      float64
}

// PlacementResult - сохраненная связь и признак, была ли строка создана
// или обновлена по конфликту.
type PlacementResult struct {
	entities.MenuMenuItem
	Inserted bool
}

type PlacementRepositoryInterface interface {
	// UpsertPlacements пишет все связи батча одним set-запросом,
	// уникальность - (menu_id, menu_item_id), при конфликте цена перезаписывается.
	UpsertPlacements(ctx context.Context, q Querier, rows []PlacementRow) ([]PlacementResult, error)
}

type placementRepository struct{ storage *pgxpool.Pool }

func NewPlacementRepository(storage *pgxpool.Pool) PlacementRepositoryInterface {
	return &placementRepository{storage: storage}
}

func (r *placementRepository) UpsertPlacements(ctx context.Context, q Querier, rows []PlacementRow) ([]PlacementResult, error) {
	if len(rows) == 0 {
		return []PlacementResult{}, nil
	}

	menuIDs := make([]uint64, 0, len(rows))
	itemIDs := make([]uint64, 0, len(rows))
	prices := make([]float64, 0, len(rows))
	for _, row := range rows {
		menuIDs = append(menuIDs, row.MenuID)
		itemIDs = append(itemIDs, row.MenuItemID)
		prices = append(prices, row.Price)
	}

	// (xmax = 0) отличает вставку от обновления по конфликту.
	query := fmt.Sprintf(`
		INSERT INTO %s (menu_id, menu_item_id, price)
		SELECT * FROM unnest($1::bigint[], $2::bigint[], $3::numeric[])
		ON CONFLICT (menu_id, menu_item_id) DO UPDATE SET price = EXCLUDED.price, updated_at = NOW()
		RETURNING id, menu_id, menu_item_id, price::float8, (xmax = 0) AS is_insert`, placementTable)

	dbRows, err := q.Query(ctx, query, menuIDs, itemIDs, prices)
	if err != nil {
		return nil, fmt.Errorf("upsert связей меню-блюдо: %w", err)
	}
	defer dbRows.Close()

	results := make([]PlacementResult, 0, len(rows))
	for dbRows.Next() {
		var res PlacementResult
		if err := dbRows.Scan(&res.ID, &res.MenuID, &res.MenuItemID, &res.Price, &res.Inserted); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, dbRows.Err()
}
