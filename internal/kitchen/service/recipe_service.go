package service

import (
	"context"
	"strings"

	"github.com/hungrybyte/galley/internal/kitchen/entity"
	"github.com/hungrybyte/galley/internal/kitchen/repository"
)

// RecipeService 菜谱服务
type RecipeService struct {
	repo      *repository.RecipeRepository
	stockRepo *repository.StockRepository
	menuRepo  *repository.MenuRepository
	userRepo  *repository.UserRepository
}

// NewRecipeService 创建菜谱服务
func NewRecipeService(repo *repository.RecipeRepository, stockRepo *repository.StockRepository, menuRepo *repository.MenuRepository, userRepo *repository.UserRepository) *RecipeService {
	return &RecipeService{repo: repo, stockRepo: stockRepo, menuRepo: menuRepo, userRepo: userRepo}
}

// IngredientInput 菜谱配料输入
type IngredientInput struct {
	StockID  string   `json:"stock"`
	Amount   *float64 `json:"amount"`
	Unit     string   `json:"unit"`
	Cost     *float64 `json:"cost"`
	Currency string   `json:"currency"`
}

// CreateRecipeRequest 创建菜谱请求
type CreateRecipeRequest struct {
	Name        string            `json:"name"`
	Categories  []string          `json:"categories"`
	TotalCost   *float64          `json:"total_cost"`
	Currency    string            `json:"currency"`
	Servings    *int              `json:"servings"`
	Ingredients []IngredientInput `json:"ingredients"`
}

// UpdateRecipeRequest 更新为全量替换，必填字段与创建一致
type UpdateRecipeRequest = CreateRecipeRequest

func (s *RecipeService) validateFields(req *CreateRecipeRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &RequiredFieldError{Field: "Name"}
	}
	if req.Categories == nil {
		return &RequiredFieldError{Field: "Category"}
	}
	if req.Ingredients == nil {
		return &RequiredFieldError{Field: "Ingredients"}
	}
	if req.TotalCost == nil {
		return &RequiredFieldError{Field: "Total Cost"}
	}
	if req.Currency == "" {
		return &RequiredFieldError{Field: "Currency"}
	}
	if req.Servings == nil {
		return &RequiredFieldError{Field: "Servings"}
	}
	return nil
}

func (s *RecipeService) buildIngredients(ctx context.Context, recipeID string, inputs []IngredientInput) ([]entity.RecipeIngredient, error) {
	rows := make([]entity.RecipeIngredient, 0, len(inputs))
	for i, in := range inputs {
		if in.StockID == "" {
			return nil, &RequiredFieldError{Field: "Stock"}
		}
		if in.Amount == nil {
			return nil, &RequiredFieldError{Field: "Amount"}
		}
		if in.Unit == "" {
			return nil, &RequiredFieldError{Field: "Unit"}
		}
		if _, err := s.stockRepo.FindByID(ctx, in.StockID); err != nil {
			return nil, err
		}
		row := entity.RecipeIngredient{
			ID:        generateID(),
			RecipeID:  recipeID,
			StockID:   in.StockID,
			Amount:    *in.Amount,
			Unit:      in.Unit,
			Currency:  defaultCurrency(in.Currency),
			SortOrder: i,
		}
		if in.Cost != nil {
			row.Cost = *in.Cost
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Create 创建菜谱：配料引用的库存项必须存在，同用户重名拒绝
func (s *RecipeService) Create(ctx context.Context, userID string, req *CreateRecipeRequest) (*entity.Recipe, error) {
	if err := s.validateFields(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUserAndName(ctx, userID, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateError{Message: "Duplicate recipe name detected"}
	}

	recipe := &entity.Recipe{
		ID:         generateID(),
		UserID:     userID,
		Name:       req.Name,
		Categories: req.Categories,
		TotalCost:  *req.TotalCost,
		Currency:   req.Currency,
		Servings:   *req.Servings,
	}

	ingredients, err := s.buildIngredients(ctx, recipe.ID, req.Ingredients)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = ingredients

	if err := s.repo.Create(ctx, recipe); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, &DuplicateError{Message: "Duplicate recipe name detected"}
		}
		return nil, err
	}
	return recipe, nil
}

// Get 获取单个菜谱
func (s *RecipeService) Get(ctx context.Context, id string) (*entity.Recipe, error) {
	return s.repo.FindByID(ctx, id)
}

// List 获取所有菜谱，附带创建者名称
func (s *RecipeService) List(ctx context.Context) ([]entity.Recipe, error) {
	recipes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.fillUsernames(ctx, recipes)
	return recipes, nil
}

func (s *RecipeService) fillUsernames(ctx context.Context, recipes []entity.Recipe) {
	names := make(map[string]string)
	for i := range recipes {
		uid := recipes[i].UserID
		if name, ok := names[uid]; ok {
			recipes[i].Username = name
			continue
		}
		user, err := s.userRepo.FindByID(ctx, uid)
		if err != nil {
			continue
		}
		names[uid] = user.Name
		recipes[i].Username = user.Name
	}
}

// Update 全量替换：重新校验必填字段并整体替换配料
func (s *RecipeService) Update(ctx context.Context, id string, req *UpdateRecipeRequest) (*entity.Recipe, error) {
	if err := s.validateFields(req); err != nil {
		return nil, err
	}

	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != recipe.Name {
		existing, err := s.repo.FindByUserAndName(ctx, recipe.UserID, req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &DuplicateError{Message: "Duplicate recipe name detected"}
		}
	}

	ingredients, err := s.buildIngredients(ctx, recipe.ID, req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe.Name = req.Name
	recipe.Categories = req.Categories
	recipe.TotalCost = *req.TotalCost
	recipe.Currency = req.Currency
	recipe.Servings = *req.Servings

	if err := s.repo.Update(ctx, recipe, ingredients); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, &DuplicateError{Message: "Duplicate recipe name detected"}
		}
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Delete 删除菜谱：被菜单引用时拒绝，返回被删实体供确认信息使用
func (s *RecipeService) Delete(ctx context.Context, id string) (*entity.Recipe, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.menuRepo.CountByRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &DependencyError{Message: "Recipe has assigned menu, please delete the menu first"}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return recipe, nil
}
