package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hungrybyte/galley/internal/kitchen/entity"
	"github.com/hungrybyte/galley/internal/kitchen/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// StockService 库存服务
type StockService struct {
	repo       *repository.StockRepository
	recipeRepo *repository.RecipeRepository
	logger     *zap.Logger
}

// NewStockService 创建库存服务
func NewStockService(repo *repository.StockRepository, recipeRepo *repository.RecipeRepository) *StockService {
	return &StockService{repo: repo, recipeRepo: recipeRepo, logger: zap.NewNop()}
}

// SetLogger 注入日志器
func (s *StockService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// CreateStockRequest 创建库存请求
type CreateStockRequest struct {
	Name         string   `json:"name"`
	Categories   []string `json:"categories"`
	Cost         *float64 `json:"cost"`
	Currency     string   `json:"currency"`
	CurrentStock *float64 `json:"current_stock"`
	MinStock     *float64 `json:"min_stock"`
	MaxStock     *float64 `json:"max_stock"`
	Unit         string   `json:"unit"`
	PerUnit      string   `json:"per_unit"`
	PerStock     *float64 `json:"per_stock"`
	PerCost      *float64 `json:"per_cost"`
}

// UpdateStockRequest 更新为全量替换，必填字段与创建一致
type UpdateStockRequest = CreateStockRequest

// StockStatus 按当前量与上下限推导库存状态，当前量先向下取整
func StockStatus(current, min, max float64) string {
	floored := math.Floor(current)
	switch {
	case floored >= max:
		return entity.StockStatusFull
	case floored >= min:
		return entity.StockStatusGood
	default:
		return entity.StockStatusLow
	}
}

func (s *StockService) validateFields(req *CreateStockRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &RequiredFieldError{Field: "Name"}
	}
	if req.Categories == nil {
		return &RequiredFieldError{Field: "Category"}
	}
	if req.Cost == nil {
		return &RequiredFieldError{Field: "Cost"}
	}
	if req.CurrentStock == nil {
		return &RequiredFieldError{Field: "Current stock"}
	}
	if req.MinStock == nil {
		return &RequiredFieldError{Field: "Min stock"}
	}
	if req.MaxStock == nil {
		return &RequiredFieldError{Field: "Max stock"}
	}
	if req.Unit == "" {
		return &RequiredFieldError{Field: "Unit"}
	}
	if req.Currency == "" {
		return &RequiredFieldError{Field: "Currency"}
	}
	if req.PerUnit == "" {
		return &RequiredFieldError{Field: "Per Unit"}
	}
	if req.PerStock == nil {
		return &RequiredFieldError{Field: "Per Stock"}
	}
	if req.PerCost == nil {
		return &RequiredFieldError{Field: "Per Stock Cost"}
	}
	return nil
}

// Create 创建库存项：当前量钳制非负，状态按规则推导，同用户重名拒绝
func (s *StockService) Create(ctx context.Context, userID string, req *CreateStockRequest) (*entity.Stock, error) {
	if err := s.validateFields(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUserAndName(ctx, userID, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateError{Message: "Duplicate stock name detected"}
	}

	current := math.Max(*req.CurrentStock, 0)
	stock := &entity.Stock{
		ID:           generateID(),
		UserID:       userID,
		Name:         req.Name,
		Categories:   req.Categories,
		Cost:         *req.Cost,
		Currency:     req.Currency,
		CurrentStock: current,
		MinStock:     *req.MinStock,
		MaxStock:     *req.MaxStock,
		Unit:         req.Unit,
		PerUnit:      req.PerUnit,
		PerStock:     *req.PerStock,
		PerCost:      *req.PerCost,
		StockStatus:  StockStatus(current, *req.MinStock, *req.MaxStock),
	}

	if err := s.repo.Create(ctx, stock); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, &DuplicateError{Message: "Duplicate stock name detected"}
		}
		return nil, err
	}
	return stock, nil
}

// Get 获取单个库存项
func (s *StockService) Get(ctx context.Context, id string) (*entity.Stock, error) {
	return s.repo.FindByID(ctx, id)
}

// List 获取所有库存项
func (s *StockService) List(ctx context.Context) ([]entity.Stock, error) {
	return s.repo.List(ctx)
}

// Update 全量替换：重新校验必填字段，钳制当前量并重算状态
func (s *StockService) Update(ctx context.Context, id string, req *UpdateStockRequest) (*entity.Stock, error) {
	if err := s.validateFields(req); err != nil {
		return nil, err
	}

	stock, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != stock.Name {
		existing, err := s.repo.FindByUserAndName(ctx, stock.UserID, req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &DuplicateError{Message: "Duplicate stock name detected"}
		}
	}

	current := math.Max(*req.CurrentStock, 0)
	stock.Name = req.Name
	stock.Categories = req.Categories
	stock.Cost = *req.Cost
	stock.Currency = req.Currency
	stock.CurrentStock = current
	stock.MinStock = *req.MinStock
	stock.MaxStock = *req.MaxStock
	stock.Unit = req.Unit
	stock.PerUnit = req.PerUnit
	stock.PerStock = *req.PerStock
	stock.PerCost = *req.PerCost
	stock.StockStatus = StockStatus(current, stock.MinStock, stock.MaxStock)

	if err := s.repo.Update(ctx, stock); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, &DuplicateError{Message: "Duplicate stock name detected"}
		}
		return nil, err
	}
	return stock, nil
}

// Delete 删除库存项：被菜谱引用时拒绝，返回被删实体供确认信息使用
func (s *StockService) Delete(ctx context.Context, id string) (*entity.Stock, error) {
	stock, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.recipeRepo.CountByStock(ctx, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &DependencyError{Message: "Stock has assigned recipe, please delete the recipe first"}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return stock, nil
}

// CheckOff 盘点勾选：置位is_checked，等待盘点重置任务统一清除
func (s *StockService) CheckOff(ctx context.Context, id string) (*entity.Stock, error) {
	stock, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stock.IsChecked = true
	if err := s.repo.Update(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// ResetCheckedItems 重置所有已勾选的盘点项，单项失败不影响其余
func (s *StockService) ResetCheckedItems(ctx context.Context) (int, error) {
	checked, err := s.repo.ListChecked(ctx)
	if err != nil {
		return 0, err
	}

	reset := 0
	for i := range checked {
		checked[i].IsChecked = false
		if err := s.repo.Update(ctx, &checked[i]); err != nil {
			s.logger.Warn("reset checked stock failed",
				zap.String("stock_id", checked[i].ID),
				zap.Error(err))
			continue
		}
		reset++
	}
	return reset, nil
}

// RunAuditResetLoop 盘点重置循环，按配置的间隔运行直到ctx取消
func (s *StockService) RunAuditResetLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.ResetCheckedItems(ctx)
			if err != nil {
				s.logger.Error("audit reset run failed", zap.Error(err))
				continue
			}
			s.logger.Info("audit reset completed", zap.Int("reset_count", n))
		}
	}
}

var stockExportHeaders = []string{
	"Name", "Categories", "Cost", "Currency", "Current Stock",
	"Min Stock", "Max Stock", "Unit", "Status", "Checked",
}

// Export 导出库存清单为xlsx
func (s *StockService) Export(ctx context.Context) (*excelize.File, string, error) {
	stocks, err := s.repo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list stocks: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Stocks"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range stockExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, stock := range stocks {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), stock.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), strings.Join(stock.Categories, ", "))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), stock.Cost)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), stock.Currency)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), stock.CurrentStock)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), stock.MinStock)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), stock.MaxStock)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), stock.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), stock.StockStatus)
		checked := "No"
		if stock.IsChecked {
			checked = "Yes"
		}
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), checked)
	}

	var totalValue float64
	for _, stock := range stocks {
		totalValue += stock.Cost * stock.CurrentStock
	}
	sumRow := len(stocks) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", sumRow), fmt.Sprintf("Total: %d items", len(stocks)))
	f.SetCellValue(sheet, fmt.Sprintf("C%d", sumRow), totalValue)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", sumRow), fmt.Sprintf("C%d", sumRow), boldStyle)

	colWidths := []float64{20, 24, 10, 8, 12, 10, 10, 8, 8, 8}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("Stocks_%s.xlsx", time.Now().Format("2006-01-02"))
	return f, filename, nil
}

func defaultCurrency(currency string) string {
	if currency == "" {
		return "GBP"
	}
	return currency
}
