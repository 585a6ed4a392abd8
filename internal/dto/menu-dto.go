package dto

type MenuDTO struct {
	ID             uint64 `json:"id"`
	RestaurantID   uint64 `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Name           string `json:"name"`
	ItemCount      uint64 `json:"item_count"`
	CreatedAt      string `json:"created_at"`
}
