package service

import (
	"context"
	"fmt"

	"github.com/hungrybyte/galley/internal/kitchen/entity"
	"github.com/hungrybyte/galley/internal/kitchen/repository"
)

// WeeklyMenuService 周菜单服务
type WeeklyMenuService struct {
	repo      *repository.WeeklyMenuRepository
	menuRepo  *repository.MenuRepository
	stockRepo *repository.StockRepository
	userRepo  *repository.UserRepository
}

// NewWeeklyMenuService 创建周菜单服务
func NewWeeklyMenuService(repo *repository.WeeklyMenuRepository, menuRepo *repository.MenuRepository, stockRepo *repository.StockRepository, userRepo *repository.UserRepository) *WeeklyMenuService {
	return &WeeklyMenuService{repo: repo, menuRepo: menuRepo, stockRepo: stockRepo, userRepo: userRepo}
}

// WeeklySlotInput 周菜单槽位输入：某天安排的一个菜单
type WeeklySlotInput struct {
	MenuID string `json:"menu"`
}

// CreateWeeklyMenuRequest 创建周菜单请求：七天槽位必须齐全
type CreateWeeklyMenuRequest struct {
	WeekNumber *int                         `json:"week_number"`
	Year       *int                         `json:"year"`
	Days       map[string][]WeeklySlotInput `json:"days"`
}

// UpdateWeeklyMenuRequest 更新周菜单请求：仅覆盖提供的字段
type UpdateWeeklyMenuRequest struct {
	WeekNumber *int                         `json:"week_number"`
	Year       *int                         `json:"year"`
	Days       map[string][]WeeklySlotInput `json:"days"`
}

// Create 创建周菜单：费用取每天第一个槽位菜单的menuCost合计，币种取周一第一个菜单
func (s *WeeklyMenuService) Create(ctx context.Context, userID string, req *CreateWeeklyMenuRequest) (*entity.WeeklyMenu, error) {
	if req.WeekNumber == nil {
		return nil, &RequiredFieldError{Field: "Week number"}
	}
	if req.Year == nil {
		return nil, &RequiredFieldError{Field: "Year"}
	}
	for _, day := range entity.WeekDays {
		if _, ok := req.Days[day]; !ok {
			return nil, &RequiredFieldError{Field: dayLabel(day)}
		}
	}

	existing, err := s.repo.FindByUserWeek(ctx, userID, *req.WeekNumber, *req.Year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrWeekTaken
	}

	wmID := generateID()
	slots, err := s.buildSlots(ctx, wmID, req.Days)
	if err != nil {
		return nil, err
	}

	cost, currency, err := s.sumFirstSlotCosts(ctx, req.Days)
	if err != nil {
		return nil, err
	}

	wm := &entity.WeeklyMenu{
		ID:             wmID,
		UserID:         userID,
		WeekNumber:     *req.WeekNumber,
		Year:           *req.Year,
		WeeklyMenuCost: cost,
		Currency:       currency,
		Slots:          slots,
	}

	if err := s.repo.Create(ctx, wm); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrWeekTaken
		}
		return nil, err
	}
	wm.GroupSlots()
	return wm, nil
}

// buildSlots 按周一到周日的固定顺序展开日别槽位，引用的菜单必须存在
func (s *WeeklyMenuService) buildSlots(ctx context.Context, wmID string, days map[string][]WeeklySlotInput) ([]entity.WeeklyMenuSlot, error) {
	var slots []entity.WeeklyMenuSlot
	order := 0
	for _, day := range entity.WeekDays {
		for _, in := range days[day] {
			if in.MenuID == "" {
				return nil, &RequiredFieldError{Field: "Menu"}
			}
			if _, err := s.menuRepo.FindByID(ctx, in.MenuID); err != nil {
				if err == repository.ErrNotFound {
					return nil, fmt.Errorf("menu %s: %w", in.MenuID, repository.ErrNotFound)
				}
				return nil, err
			}
			slots = append(slots, entity.WeeklyMenuSlot{
				ID:           generateID(),
				WeeklyMenuID: wmID,
				Day:          day,
				MenuID:       in.MenuID,
				SortOrder:    order,
			})
			order++
		}
	}
	return slots, nil
}

// sumFirstSlotCosts 合计每天第一个槽位菜单的menuCost，查不到的菜单跳过不计。
// 币种只取周一第一个菜单的币种，周一查不到时退回默认币种
func (s *WeeklyMenuService) sumFirstSlotCosts(ctx context.Context, days map[string][]WeeklySlotInput) (string, string, error) {
	var (
		total    float64
		currency string
	)
	for _, day := range entity.WeekDays {
		entries := days[day]
		if len(entries) == 0 {
			continue
		}
		menu, err := s.menuRepo.FindByID(ctx, entries[0].MenuID)
		if err != nil {
			if err == repository.ErrNotFound {
				continue
			}
			return "", "", err
		}
		total += menu.MenuCost
		if day == entity.WeekDays[0] {
			currency = menu.Currency
		}
	}
	return fmt.Sprintf("%.2f", total), defaultCurrency(currency), nil
}

// Get 获取单个周菜单
func (s *WeeklyMenuService) Get(ctx context.Context, id string) (*entity.WeeklyMenu, error) {
	return s.repo.FindByID(ctx, id)
}

// List 获取所有周菜单，附带创建者名称
func (s *WeeklyMenuService) List(ctx context.Context) ([]entity.WeeklyMenu, error) {
	wms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	for i := range wms {
		uid := wms[i].UserID
		if name, ok := names[uid]; ok {
			wms[i].Username = name
			continue
		}
		user, err := s.userRepo.FindByID(ctx, uid)
		if err != nil {
			continue
		}
		names[uid] = user.Name
		wms[i].Username = user.Name
	}
	return wms, nil
}

// Update 部分更新：仅提供的字段覆盖原值，要求请求者为属主
func (s *WeeklyMenuService) Update(ctx context.Context, id, userID string, req *UpdateWeeklyMenuRequest) (*entity.WeeklyMenu, error) {
	wm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wm.UserID != userID {
		return nil, ErrNotOwner
	}

	if req.WeekNumber != nil {
		wm.WeekNumber = *req.WeekNumber
	}
	if req.Year != nil {
		wm.Year = *req.Year
	}

	slots := wm.Slots
	if req.Days != nil {
		// 部分天数更新：未提供的天保留原槽位
		merged := make(map[string][]WeeklySlotInput, len(entity.WeekDays))
		for _, slot := range wm.Slots {
			merged[slot.Day] = append(merged[slot.Day], WeeklySlotInput{MenuID: slot.MenuID})
		}
		for day, entries := range req.Days {
			merged[day] = entries
		}
		slots, err = s.buildSlots(ctx, wm.ID, merged)
		if err != nil {
			return nil, err
		}
		cost, currency, err := s.sumFirstSlotCosts(ctx, merged)
		if err != nil {
			return nil, err
		}
		wm.WeeklyMenuCost = cost
		wm.Currency = currency
	}

	if err := s.repo.Update(ctx, wm, slots); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrWeekTaken
		}
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Delete 删除周菜单：要求请求者为属主
func (s *WeeklyMenuService) Delete(ctx context.Context, id, userID string) error {
	wm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if wm.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

// StockCheckResult 备货估算结果
type StockCheckResult struct {
	Baseline   float64 `json:"baseline"`
	TotalDraw  float64 `json:"total_draw"`
	ShortDay   string  `json:"short_day,omitempty"`
	Sufficient bool    `json:"sufficient"`
}

// CheckStockAvailability 备货估算：按天累计食材用量与在库基线比较，
// 在首个超出基线的那天的第一个槽位上写入短缺标记并持久化
func (s *WeeklyMenuService) CheckStockAvailability(ctx context.Context, id, userID string) (*StockCheckResult, error) {
	wm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wm.UserID != userID {
		return nil, ErrNotOwner
	}

	baseline, err := s.stockRepo.SumCurrentStock(ctx, userID)
	if err != nil {
		return nil, err
	}

	wm.GroupSlots()
	result := &StockCheckResult{Baseline: baseline, Sufficient: true}

	var cumulative float64
	for _, day := range entity.WeekDays {
		daySlots := wm.Days[day]
		cumulative += s.dayDraw(daySlots)
		if cumulative > baseline && result.Sufficient {
			result.Sufficient = false
			result.ShortDay = day
			if len(daySlots) > 0 {
				if err := s.repo.UpdateSlotStatus(ctx, daySlots[0].ID, entity.StockShortWarning); err != nil {
					return nil, err
				}
			}
		}
	}
	result.TotalDraw = cumulative
	return result, nil
}

// dayDraw 合计某天所有槽位菜单下全部菜谱的食材用量（折算到基本单位）
func (s *WeeklyMenuService) dayDraw(slots []entity.WeeklyMenuSlot) float64 {
	var draw float64
	for _, slot := range slots {
		if slot.Menu == nil {
			continue
		}
		for _, ms := range slot.Menu.Slots {
			if ms.Recipe == nil {
				continue
			}
			for _, ing := range ms.Recipe.Ingredients {
				draw += convertUnit(ing.Amount, ing.Unit)
			}
		}
	}
	return draw
}

// convertUnit 把食材用量折算为基本单位（克/毫升/个）
func convertUnit(amount float64, unit string) float64 {
	switch unit {
	case "kg":
		return amount * 1000
	case "lb":
		return amount * 453.592
	case "oz":
		return amount * 28.3495
	case "pinch":
		return amount * 0.36
	case "l":
		return amount * 1000
	case "tray":
		return amount
	default:
		return amount
	}
}

func dayLabel(day string) string {
	if day == "" {
		return day
	}
	return string(day[0]-'a'+'A') + day[1:]
}
