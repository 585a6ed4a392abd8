package services

import (
	"time"

	"restaurant-system/internal/dto"
)

// importAccumulator копит логи, журнал по блюдам, ошибки и счетчики одного
// прогона импорта. Конверт результата собирается даже при сбое: видно,
// как далеко импорт успел дойти.
type importAccumulator struct {
	errors   []string
	logs     []dto.LogEntryDTO
	itemLogs []dto.ItemLogEntryDTO
	stats    dto.ImportStatsDTO
}

func newImportAccumulator() *importAccumulator {
	return &importAccumulator{
		errors:   []string{},
		logs:     []dto.LogEntryDTO{},
		itemLogs: []dto.ItemLogEntryDTO{},
	}
}

func (a *importAccumulator) addLog(level, message string) {
	a.logs = append(a.logs, dto.LogEntryDTO{
		Level:     level,
		Message:   message,
		Timestamp: time.Now().Local().Format("2006-01-02 15:04:05"),
	})
}

func (a *importAccumulator) addItemLog(restaurantName, menuName, itemName string, price float64, status, message string) {
	a.itemLogs = append(a.itemLogs, dto.ItemLogEntryDTO{
		RestaurantName: restaurantName,
		MenuName:       menuName,
		ItemName:       itemName,
		Price:          price,
		Status:         status,
		Message:        message,
		Timestamp:      time.Now().Local().Format("2006-01-02 15:04:05"),
	})
}

func (a *importAccumulator) addError(message string) {
	a.errors = append(a.errors, message)
}

func (a *importAccumulator) result() *dto.ImportResultDTO {
	return &dto.ImportResultDTO{
		Success:  len(a.errors) == 0,
		Errors:   a.errors,
		Logs:     a.logs,
		ItemLogs: a.itemLogs,
		Data:     a.stats,
	}
}
