package dto

// SummaryStatsDTO - сводные показатели по всем импортированным данным.
type SummaryStatsDTO struct {
	TotalRestaurants          uint64  `json:"total_restaurants"`
	TotalMenus                uint64  `json:"total_menus"`
	TotalMenuItems            uint64  `json:"total_menu_items"`
	TotalMenuItemInstances    uint64  `json:"total_menu_item_instances"`
	AverageMenusPerRestaurant float64 `json:"average_menus_per_restaurant"`
	AverageItemsPerMenu       float64 `json:"average_items_per_menu"`
}

type PriceRangeDTO struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// StatsDTO - ответ GET /api/stats.
type StatsDTO struct {
	Summary           SummaryStatsDTO   `json:"summary"`
	PriceRange        PriceRangeDTO     `json:"price_range"`
	PriceDistribution map[string]uint64 `json:"price_distribution"`
}
