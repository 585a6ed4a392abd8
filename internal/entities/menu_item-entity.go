package entities

import "time"

// MenuItem глобален: одно и то же имя блюда в разных ресторанах - одна запись.
type MenuItem struct {
	ID        uint64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
