package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hungrybyte/galley/internal/kitchen/entity"
	"github.com/hungrybyte/galley/internal/kitchen/repository"
)

// MenuService 菜单服务
type MenuService struct {
	repo       *repository.MenuRepository
	recipeRepo *repository.RecipeRepository
	weeklyRepo *repository.WeeklyMenuRepository
	userRepo   *repository.UserRepository
}

// NewMenuService 创建菜单服务
func NewMenuService(repo *repository.MenuRepository, recipeRepo *repository.RecipeRepository, weeklyRepo *repository.WeeklyMenuRepository, userRepo *repository.UserRepository) *MenuService {
	return &MenuService{repo: repo, recipeRepo: recipeRepo, weeklyRepo: weeklyRepo, userRepo: userRepo}
}

// MenuSlotInput 菜单槽位输入：某餐段下的一道菜谱
type MenuSlotInput struct {
	RecipeID string `json:"recipe"`
}

// CreateMenuRequest 创建菜单请求
type CreateMenuRequest struct {
	Name       string          `json:"name"`
	Breakfasts []MenuSlotInput `json:"breakfasts"`
	Lunches    []MenuSlotInput `json:"lunches"`
	Dinners    []MenuSlotInput `json:"dinners"`
}

// UpdateMenuRequest 更新菜单请求：全量替换，币种与menuCost由调用方直接提供，不重算
type UpdateMenuRequest struct {
	Name       string          `json:"name"`
	Currency   string          `json:"currency"`
	MenuCost   *float64        `json:"menu_cost"`
	Breakfasts []MenuSlotInput `json:"breakfasts"`
	Lunches    []MenuSlotInput `json:"lunches"`
	Dinners    []MenuSlotInput `json:"dinners"`
}

// 三个餐段的槽位列表均不可为空
func validateMealLists(breakfasts, lunches, dinners []MenuSlotInput) error {
	if len(breakfasts) == 0 {
		return &RequiredFieldError{Field: "Breakfast"}
	}
	if len(lunches) == 0 {
		return &RequiredFieldError{Field: "Lunch"}
	}
	if len(dinners) == 0 {
		return &RequiredFieldError{Field: "Dinner"}
	}
	return nil
}

// buildSlots 展开各餐段为槽位行项，并合计菜谱成本；菜谱缺失时整体失败
func (s *MenuService) buildSlots(ctx context.Context, menuID string, req *CreateMenuRequest) ([]entity.MenuSlot, float64, string, error) {
	var (
		slots    []entity.MenuSlot
		total    float64
		currency string
		order    int
	)

	add := func(meal string, inputs []MenuSlotInput) error {
		for _, in := range inputs {
			if in.RecipeID == "" {
				return &RequiredFieldError{Field: "Recipe"}
			}
			recipe, err := s.recipeRepo.FindByID(ctx, in.RecipeID)
			if err != nil {
				if err == repository.ErrNotFound {
					return fmt.Errorf("recipe %s: %w", in.RecipeID, repository.ErrNotFound)
				}
				return err
			}
			total += recipe.TotalCost
			// 币种取第一个早餐菜谱的币种
			if currency == "" && meal == entity.MealBreakfast {
				currency = recipe.Currency
			}
			slots = append(slots, entity.MenuSlot{
				ID:        generateID(),
				MenuID:    menuID,
				Meal:      meal,
				RecipeID:  in.RecipeID,
				SortOrder: order,
			})
			order++
		}
		return nil
	}

	if err := add(entity.MealBreakfast, req.Breakfasts); err != nil {
		return nil, 0, "", err
	}
	if err := add(entity.MealLunch, req.Lunches); err != nil {
		return nil, 0, "", err
	}
	if err := add(entity.MealDinner, req.Dinners); err != nil {
		return nil, 0, "", err
	}

	return slots, total, defaultCurrency(currency), nil
}

// Create 创建菜单：menuCost取各餐段菜谱成本合计，同用户重名拒绝
func (s *MenuService) Create(ctx context.Context, userID string, req *CreateMenuRequest) (*entity.Menu, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &RequiredFieldError{Field: "Name"}
	}
	if err := validateMealLists(req.Breakfasts, req.Lunches, req.Dinners); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUserAndName(ctx, userID, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateError{Message: "Duplicate menu name detected"}
	}

	menuID := generateID()
	slots, total, currency, err := s.buildSlots(ctx, menuID, req)
	if err != nil {
		return nil, err
	}

	menu := &entity.Menu{
		ID:       menuID,
		UserID:   userID,
		Name:     req.Name,
		MenuCost: total,
		Currency: currency,
		Slots:    slots,
	}

	if err := s.repo.Create(ctx, menu); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, &DuplicateError{Message: "Duplicate menu name detected"}
		}
		return nil, err
	}
	menu.GroupSlots()
	return menu, nil
}

// Get 获取单个菜单
func (s *MenuService) Get(ctx context.Context, id string) (*entity.Menu, error) {
	return s.repo.FindByID(ctx, id)
}

// List 获取所有菜单，附带创建者名称
func (s *MenuService) List(ctx context.Context) ([]entity.Menu, error) {
	menus, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	for i := range menus {
		uid := menus[i].UserID
		if name, ok := names[uid]; ok {
			menus[i].Username = name
			continue
		}
		user, err := s.userRepo.FindByID(ctx, uid)
		if err != nil {
			continue
		}
		names[uid] = user.Name
		menus[i].Username = user.Name
	}
	return menus, nil
}

// Update 全量替换：槽位整体重建，费用与币种按调用方提供值写入，不重算
func (s *MenuService) Update(ctx context.Context, id string, req *UpdateMenuRequest) (*entity.Menu, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &RequiredFieldError{Field: "Name"}
	}
	if req.Currency == "" {
		return nil, &RequiredFieldError{Field: "Currency"}
	}
	if req.MenuCost == nil {
		return nil, &RequiredFieldError{Field: "Menu Cost"}
	}
	if err := validateMealLists(req.Breakfasts, req.Lunches, req.Dinners); err != nil {
		return nil, err
	}

	menu, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != menu.Name {
		existing, err := s.repo.FindByUserAndName(ctx, menu.UserID, req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &DuplicateError{Message: "Duplicate menu name detected"}
		}
	}

	slots, _, _, err := s.buildSlots(ctx, menu.ID, &CreateMenuRequest{
		Breakfasts: req.Breakfasts,
		Lunches:    req.Lunches,
		Dinners:    req.Dinners,
	})
	if err != nil {
		return nil, err
	}

	menu.Name = req.Name
	menu.MenuCost = *req.MenuCost
	menu.Currency = req.Currency

	if err := s.repo.Update(ctx, menu, slots); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, &DuplicateError{Message: "Duplicate menu name detected"}
		}
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Delete 删除菜单：被周菜单引用时拒绝，返回被删实体供确认信息使用
func (s *MenuService) Delete(ctx context.Context, id string) (*entity.Menu, error) {
	menu, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.weeklyRepo.CountByMenu(ctx, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &DependencyError{Message: "Menu has assigned weekly menu, please delete the weekly menu first"}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return menu, nil
}
