package repositories

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"restaurant-system/internal/dto"
)

type StatsRepositoryInterface interface {
	GetSummary(ctx context.Context) (*dto.SummaryStatsDTO, error)
	GetPriceRange(ctx context.Context) (*dto.PriceRangeDTO, error)
	GetPriceDistribution(ctx context.Context) (map[string]uint64, error)
}

type StatsRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewStatsRepository(storage *pgxpool.Pool, logger *zap.Logger) StatsRepositoryInterface {
	return &StatsRepository{storage: storage, logger: logger}
}

func (r *StatsRepository) GetSummary(ctx context.Context) (*dto.SummaryStatsDTO, error) {
	query, args, err := sq.Select(
		"(SELECT COUNT(*) FROM restaurants)",
		"(SELECT COUNT(*) FROM menus)",
		"(SELECT COUNT(*) FROM menu_items)",
		"(SELECT COUNT(*) FROM menu_menu_items)",
	).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	stats := &dto.SummaryStatsDTO{}
	err = r.storage.QueryRow(ctx, query, args...).Scan(
		&stats.TotalRestaurants,
		&stats.TotalMenus,
		&stats.TotalMenuItems,
		&stats.TotalMenuItemInstances,
	)
	if err != nil {
		return nil, err
	}

	if stats.TotalRestaurants > 0 {
		stats.AverageMenusPerRestaurant = round2(float64(stats.TotalMenus) / float64(stats.TotalRestaurants))
	}
	if stats.TotalMenus > 0 {
		stats.AverageItemsPerMenu = round2(float64(stats.TotalMenuItemInstances) / float64(stats.TotalMenus))
	}
	return stats, nil
}

func (r *StatsRepository) GetPriceRange(ctx context.Context) (*dto.PriceRangeDTO, error) {
	query, args, err := sq.Select("MIN(price)", "MAX(price)", "AVG(price)").
		From(placementTable).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	var minPrice, maxPrice, avgPrice sql.NullFloat64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&minPrice, &maxPrice, &avgPrice); err != nil {
		return nil, err
	}

	return &dto.PriceRangeDTO{
		Min:     minPrice.Float64,
		Max:     maxPrice.Float64,
		Average: round2(avgPrice.Float64),
	}, nil
}

// GetPriceDistribution раскладывает цены размещений по корзинам.
func (r *StatsRepository) GetPriceDistribution(ctx context.Context) (map[string]uint64, error) {
	query, args, err := sq.Select(
		"COUNT(CASE WHEN price >= 0 AND price < 5 THEN 1 END)",
		"COUNT(CASE WHEN price >= 5 AND price < 10 THEN 1 END)",
		"COUNT(CASE WHEN price >= 10 AND price < 15 THEN 1 END)",
		"COUNT(CASE WHEN price >= 15 AND price < 20 THEN 1 END)",
		"COUNT(CASE WHEN price >= 20 AND price < 30 THEN 1 END)",
		"COUNT(CASE WHEN price >= 30 THEN 1 END)",
	).From(placementTable).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	ranges := make([]uint64, 6)
	if err := r.storage.QueryRow(ctx, query, args...).Scan(
		&ranges[0], &ranges[1], &ranges[2], &ranges[3], &ranges[4], &ranges[5],
	); err != nil {
		return nil, err
	}

	return map[string]uint64{
		"0-5":   ranges[0],
		"5-10":  ranges[1],
		"10-15": ranges[2],
		"15-20": ranges[3],
		"20-30": ranges[4],
		"30+":   ranges[5],
	}, nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
