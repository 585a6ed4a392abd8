package dto

// ImportDocument - верхний уровень документа импорта.
type ImportDocument struct {
	Restaurants []RestaurantPayload `json:"restaurants"`
}

// RestaurantPayload - один ресторан из документа.
// Menus - указатель, чтобы отличать отсутствующее поле от пустого списка.
type RestaurantPayload struct {
	Name  string         `json:"name"`
	Menus *[]MenuPayload `json:"menus"`
}

// MenuPayload - меню. Список блюд может приходить под ключом menu_items или dishes.
type MenuPayload struct {
	Name      string        `json:"name"`
	MenuItems []ItemPayload `json:"menu_items"`
	Dishes    []ItemPayload `json:"dishes"`
}

type ItemPayload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Items возвращает список блюд меню независимо от того, под каким ключом он пришел.
func (m *MenuPayload) Items() []ItemPayload {
	if m.MenuItems != nil {
		return m.MenuItems
	}
	if m.Dishes != nil {
		return m.Dishes
	}
	return []ItemPayload{}
}

// ImportStatsDTO - агрегированные счетчики одного прогона импорта.
type ImportStatsDTO struct {
	RestaurantsProcessed int `json:"restaurants_processed"`
	MenusProcessed       int `json:"menus_processed"`
	ItemsProcessed       int `json:"items_processed"`
	BatchesProcessed     int `json:"batches_processed"`
}

type LogEntryDTO struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type ItemLogEntryDTO struct {
	RestaurantName string  `json:"restaurant_name"`
	MenuName       string  `json:"menu_name"`
	ItemName       string  `json:"item_name"`
	Price          float64 `json:"price"`
	Status         string  `json:"status"`
	Message        string  `json:"message"`
	Timestamp      string  `json:"timestamp"`
}

// ImportResultDTO - итоговый конверт результата. Возвращается целиком даже при
// сбое: частично накопленные счетчики и логи не отбрасываются.
type ImportResultDTO struct {
	Success  bool              `json:"success"`
	Errors   []string          `json:"errors"`
	Logs     []LogEntryDTO     `json:"logs"`
	ItemLogs []ItemLogEntryDTO `json:"item_logs"`
	Data     ImportStatsDTO    `json:"data"`
}

// ImportSubmissionDTO - синхронный ответ на постановку импорта в очередь.
type ImportSubmissionDTO struct {
	JobID string `json:"job_id"`
	State string `json:"state"`
}

// ImportStatusRequestDTO - параметры опроса статуса. Идентификаторы задач
// выдает очередь, поэтому все, что не uuid, отклоняется до обращения к ней.
type ImportStatusRequestDTO struct {
	JobID string `param:"job_id" validate:"required,uuid4"`
}

// ImportStatusDTO - ответ на опрос статуса задачи.
type ImportStatusDTO struct {
	JobID   string           `json:"job_id"`
	State   string           `json:"state"`
	Message string           `json:"message,omitempty"`
	Result  *ImportResultDTO `json:"result,omitempty"`
}
