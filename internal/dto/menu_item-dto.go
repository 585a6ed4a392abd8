package dto

import "github.com/aarondl/null/v8"

type MenuItemDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	// MenuCount - в скольких меню блюдо размещено.
	MenuCount uint64 `json:"menu_count"`
	CreatedAt string `json:"created_at"`
}

type MenuItemDetailDTO struct {
	ID         uint64             `json:"id"`
	Name       string             `json:"name"`
	Placements []ItemPlacementDTO `json:"placements"`
	CreatedAt  string             `json:"created_at"`
}

type ItemPlacementDTO struct {
	MenuID         uint64     `json:"menu_id"`
	MenuName       string     `json:"menu_name"`
	RestaurantName string     `json:"restaurant_name"`
	Price          null.Float64 `json:"price"`
}
