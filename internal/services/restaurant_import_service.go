package services

import (
	"context"
	"fmt"
	"strings"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/repositories"
	apperrors "restaurant-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DefaultBatchSize - количество ресторанов в одной транзакции. Компромисс
// между размером транзакции, длительностью блокировок и памятью.
const DefaultBatchSize = 1000

// RestaurantImportService - батчевый импорт ресторанов, меню, блюд и цен.
// Каждый батч - одна транзакция с четырьмя set-based upsert'ами; уже
// закоммиченные батчи при сбое не откатываются.
type RestaurantImportService struct {
	db             *pgxpool.Pool
	restaurantRepo repositories.RestaurantRepositoryInterface
	menuRepo       repositories.MenuRepositoryInterface
	menuItemRepo   repositories.MenuItemRepositoryInterface
	placementRepo  repositories.PlacementRepositoryInterface
	logger         *zap.Logger
	batchSize      int
}

func NewRestaurantImportService(
	db *pgxpool.Pool,
	restaurantRepo repositories.RestaurantRepositoryInterface,
	menuRepo repositories.MenuRepositoryInterface,
	menuItemRepo repositories.MenuItemRepositoryInterface,
	placementRepo repositories.PlacementRepositoryInterface,
	logger *zap.Logger,
	batchSize int,
) *RestaurantImportService {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &RestaurantImportService{
		db:             db,
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		menuItemRepo:   menuItemRepo,
		placementRepo:  placementRepo,
		logger:         logger,
		batchSize:      batchSize,
	}
}

// Import обрабатывает документ батчами. Любая ошибка или паника внутри
// конвейера превращается в одну запись "Critical error: ..." в конверте;
// накопленные счетчики и логи при этом сохраняются.
func (s *RestaurantImportService) Import(ctx context.Context, doc *dto.ImportDocument) (result *dto.ImportResultDTO) {
	acc := newImportAccumulator()

	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("паника в конвейере импорта", zap.Any("panic", p))
			acc.addError(fmt.Sprintf("Critical error: %v", p))
			result = acc.result()
		}
	}()

	restaurants := doc.Restaurants
	for start := 0; start < len(restaurants); start += s.batchSize {
		end := start + s.batchSize
		if end > len(restaurants) {
			end = len(restaurants)
		}

		if err := s.processBatch(ctx, restaurants[start:end], acc); err != nil {
			s.logger.Error("батч импорта завершился ошибкой, оставшиеся батчи отменены",
				zap.Int("batch", acc.stats.BatchesProcessed+1),
				zap.Error(err),
			)
			acc.addError(fmt.Sprintf("Critical error: %s", err.Error()))
			return acc.result()
		}

		acc.addLog("info", fmt.Sprintf("Batch %d committed: %d restaurants", acc.stats.BatchesProcessed, end-start))
	}

	s.logger.Info("импорт завершен",
		zap.Int("restaurants", acc.stats.RestaurantsProcessed),
		zap.Int("menus", acc.stats.MenusProcessed),
		zap.Int("items", acc.stats.ItemsProcessed),
		zap.Int("batches", acc.stats.BatchesProcessed),
	)
	return acc.result()
}

// menuWork - одно меню батча после нормализации и консолидации дублей.
type menuWork struct {
	restaurantName string
	menuName       string
	items          []dto.ItemPayload
}

func (s *RestaurantImportService) processBatch(ctx context.Context, batch []dto.RestaurantPayload, acc *importAccumulator) error {
	// Фаза нормализации: вне транзакции, только чистые преобразования.
	restaurantNames := make([]string, 0, len(batch))
	seenRestaurants := make(map[string]bool, len(batch))
	var work []menuWork
	restaurantCount, menuCount, itemCount := 0, 0, 0

	for _, r := range batch {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			s.logger.Debug("пропущен ресторан с пустым именем")
			continue
		}
		restaurantCount++
		if !seenRestaurants[name] {
			seenRestaurants[name] = true
			restaurantNames = append(restaurantNames, name)
		}

		var menus []dto.MenuPayload
		if r.Menus != nil {
			menus = *r.Menus
		} else {
			// Отсутствующий ключ menus трактуем как пустой список.
			s.logger.Debug("у ресторана нет ключа menus", zap.String("restaurant", name))
		}

		for i := range menus {
			menuName := strings.TrimSpace(menus[i].Name)
			if menuName == "" {
				s.logger.Debug("пропущено меню с пустым именем", zap.String("restaurant", name))
				continue
			}
			menuCount++

			consolidated, originalCount, removed := consolidateItems(menus[i].Items())
			itemCount += originalCount
			if removed > 0 {
				acc.addLog("warn", fmt.Sprintf(
					"Duplicate items consolidated in menu '%s': %d removed (last occurrence wins)",
					menuName, removed))
			}

			work = append(work, menuWork{restaurantName: name, menuName: menuName, items: consolidated})
		}
	}

	// Фаза записи: один set-based upsert на тип сущности, все в одной транзакции.
	err := repositories.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		restaurants, err := s.restaurantRepo.UpsertRestaurants(ctx, tx, restaurantNames)
		if err != nil {
			return err
		}
		restaurantIDs := make(map[string]uint64, len(restaurants))
		for _, restaurant := range restaurants {
			restaurantIDs[restaurant.Name] = restaurant.ID
		}

		menuKeys := make([]repositories.MenuKey, 0, len(work))
		seenMenus := make(map[repositories.MenuKey]bool, len(work))
		for _, w := range work {
			key := repositories.MenuKey{RestaurantID: restaurantIDs[w.restaurantName], Name: w.menuName}
			if !seenMenus[key] {
				seenMenus[key] = true
				menuKeys = append(menuKeys, key)
			}
		}
		menus, err := s.menuRepo.UpsertMenus(ctx, tx, menuKeys)
		if err != nil {
			return err
		}
		menuIDs := make(map[repositories.MenuKey]uint64, len(menus))
		for _, menu := range menus {
			menuIDs[repositories.MenuKey{RestaurantID: menu.RestaurantID, Name: menu.Name}] = menu.ID
		}

		var itemNames []string
		seenItems := make(map[string]bool)
		for _, w := range work {
			for _, item := range w.items {
				if !seenItems[item.Name] {
					seenItems[item.Name] = true
					itemNames = append(itemNames, item.Name)
				}
			}
		}
		items, err := s.menuItemRepo.UpsertMenuItems(ctx, tx, itemNames)
		if err != nil {
			return err
		}
		itemIDs := make(map[string]uint64, len(items))
		for _, item := range items {
			itemIDs[item.Name] = item.ID
		}

		return s.upsertPlacements(ctx, tx, work, restaurantIDs, menuIDs, itemIDs, acc)
	})
	if err != nil {
		return err
	}

	acc.stats.RestaurantsProcessed += restaurantCount
	acc.stats.MenusProcessed += menuCount
	acc.stats.ItemsProcessed += itemCount
	acc.stats.BatchesProcessed++
	return nil
}

// placementKey идентифицирует связь меню-блюдо при дедупликации строк батча.
type placementKey struct {
	menuID uint64
	itemID uint64
}

type placementMeta struct {
	restaurantName string
	menuName       string
	itemName       string
}

func (s *RestaurantImportService) upsertPlacements(
	ctx context.Context,
	tx pgx.Tx,
	work []menuWork,
	restaurantIDs map[string]uint64,
	menuIDs map[repositories.MenuKey]uint64,
	itemIDs map[string]uint64,
	acc *importAccumulator,
) error {
	// Один и тот же ресторан (или меню) может встретиться в батче несколько
	// раз: строки связей дедуплицируются по (menu_id, item_id), цена - last wins.
	rows := make([]repositories.PlacementRow, 0)
	meta := make(map[placementKey]placementMeta)
	index := make(map[placementKey]int)

	for _, w := range work {
		menuID := menuIDs[repositories.MenuKey{RestaurantID: restaurantIDs[w.restaurantName], Name: w.menuName}]
		for _, item := range w.items {
			if item.Price <= 0 {
				acc.addError(fmt.Sprintf("Failed to save menu item '%s': Price must be greater than 0", item.Name))
				return apperrors.NewValidationError("Validation failed: Price must be greater than 0")
			}

			key := placementKey{menuID: menuID, itemID: itemIDs[item.Name]}
			meta[key] = placementMeta{
				restaurantName: w.restaurantName,
				menuName:       w.menuName,
				itemName:       item.Name,
			}
			if i, ok := index[key]; ok {
				rows[i].Price = item.Price
				continue
			}
			index[key] = len(rows)
			rows = append(rows, repositories.PlacementRow{MenuID: key.menuID, MenuItemID: key.itemID, Price: item.Price})
		}
	}

	results, err := s.placementRepo.UpsertPlacements(ctx, tx, rows)
	if err != nil {
		return err
	}

	for _, res := range results {
		m := meta[placementKey{menuID: res.MenuID, itemID: res.MenuItemID}]
		status := "updated"
		if res.Inserted {
			status = "created"
		}
		// Цена в журнале - та, что реально сохранена (из RETURNING).
		acc.addItemLog(m.restaurantName, m.menuName, m.itemName, res.Price, status,
			fmt.Sprintf("Menu item '%s' processed successfully in menu '%s'", m.itemName, m.menuName))
	}
	return nil
}

// consolidateItems убирает дубли блюд внутри одного меню по нормализованному
// имени. Побеждает последнее вхождение: поздние строки документа трактуются
// как исправления ранних. Блюда с пустым именем отбрасываются целиком.
// originalCount - количество вхождений до консолидации (для счетчика items_processed).
func consolidateItems(items []dto.ItemPayload) (consolidated []dto.ItemPayload, originalCount int, removed int) {
	consolidated = make([]dto.ItemPayload, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		originalCount++

		if i, ok := index[name]; ok {
			consolidated[i].Price = item.Price
			removed++
			continue
		}
		index[name] = len(consolidated)
		consolidated = append(consolidated, dto.ItemPayload{Name: name, Price: item.Price})
	}
	return consolidated, originalCount, removed
}
