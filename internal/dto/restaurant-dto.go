package dto

import "github.com/aarondl/null/v8"

type RestaurantDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	MenuCount uint64 `json:"menu_count"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// RestaurantDetailDTO - ресторан с вложенными меню и блюдами.
type RestaurantDetailDTO struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Menus     []MenuDetailDTO `json:"menus"`
	CreatedAt string          `json:"created_at"`
}

type MenuDetailDTO struct {
	ID    uint64              `json:"id"`
	Name  string              `json:"name"`
	Items []MenuItemInMenuDTO `json:"items"`
}

// MenuItemInMenuDTO - блюдо в составе конкретного меню с его ценой там.
type MenuItemInMenuDTO struct {
	ID    uint64     `json:"id"`
	Name  string     `json:"name"`
	Price null.Float64 `json:"price"`
}
