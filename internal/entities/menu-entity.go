package entities

import "time"

type Menu struct {
	ID           uint64
	RestaurantID uint64
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
