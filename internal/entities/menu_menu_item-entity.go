package entities

import "time"

// MenuMenuItem - размещение блюда в меню с ценой. Именно здесь живет цена:
// одно блюдо может стоить по-разному в разных меню.
type MenuMenuItem struct {
	ID         uint64
	MenuID     uint64
	MenuItemID uint64
	Price      float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
