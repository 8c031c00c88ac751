package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/hungrybyte/galley/internal/kitchen/entity"
	"github.com/hungrybyte/galley/internal/kitchen/testutil"
)

func TestMenuCreateAggregatesCost(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)
	testutil.SeedTestRecipe(t, env.DB, "recipe-001", "test-user-001", "Porridge", "stock-001", 1.5)
	testutil.SeedTestRecipe(t, env.DB, "recipe-002", "test-user-001", "Soup", "stock-001", 2.0)
	testutil.SeedTestRecipe(t, env.DB, "recipe-003", "test-user-001", "Stew", "stock-001", 3.0)

	w := testutil.DoRequest(env.Router, "POST", "/menus", map[string]interface{}{
		"name":       "Day One",
		"breakfasts": []map[string]interface{}{{"recipe": "recipe-001"}},
		"lunches":    []map[string]interface{}{{"recipe": "recipe-002"}},
		"dinners":    []map[string]interface{}{{"recipe": "recipe-003"}},
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["menu_cost"].(float64) != 6.5 {
		t.Errorf("Expected menu_cost 6.5, got %v", data["menu_cost"])
	}
	if data["currency"] != "GBP" {
		t.Errorf("Expected currency GBP from first breakfast recipe, got %v", data["currency"])
	}
}

func TestMenuCreateMissingRecipeAborts(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)
	testutil.SeedTestRecipe(t, env.DB, "recipe-001", "test-user-001", "Porridge", "stock-001", 1.5)

	w := testutil.DoRequest(env.Router, "POST", "/menus", map[string]interface{}{
		"name":       "Broken Menu",
		"breakfasts": []map[string]interface{}{{"recipe": "recipe-001"}},
		"lunches":    []map[string]interface{}{{"recipe": "no-such-recipe"}},
		"dinners":    []map[string]interface{}{{"recipe": "recipe-001"}},
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["message"] != "Recipe not found" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}

	// no partial persistence
	var count int64
	env.DB.Model(&entity.Menu{}).Where("name = ?", "Broken Menu").Count(&count)
	if count != 0 {
		t.Errorf("Expected no menu persisted, found %d", count)
	}
}

func TestMenuCreateEmptyMealList(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)
	testutil.SeedTestRecipe(t, env.DB, "recipe-001", "test-user-001", "Porridge", "stock-001", 1.5)

	w := testutil.DoRequest(env.Router, "POST", "/menus", map[string]interface{}{
		"name":       "No Lunch",
		"breakfasts": []map[string]interface{}{{"recipe": "recipe-001"}},
		"dinners":    []map[string]interface{}{{"recipe": "recipe-001"}},
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["message"] != "Lunch field is required" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}
}

func TestMenuUpdateStrictReplace(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)
	testutil.SeedTestRecipe(t, env.DB, "recipe-001", "test-user-001", "Porridge", "stock-001", 1.5)
	testutil.SeedTestRecipe(t, env.DB, "recipe-002", "test-user-001", "Soup", "stock-001", 2.0)
	testutil.SeedTestMenu(t, env.DB, "menu-001", "test-user-001", "Day One", "recipe-001", 1.5)

	// all fields supplied; cost and currency are taken as given, not recomputed
	w := testutil.DoRequest(env.Router, "PATCH", "/menus", map[string]interface{}{
		"id":         "menu-001",
		"name":       "Day One",
		"currency":   "EUR",
		"menu_cost":  9.99,
		"breakfasts": []map[string]interface{}{{"recipe": "recipe-002"}},
		"lunches":    []map[string]interface{}{{"recipe": "recipe-002"}},
		"dinners":    []map[string]interface{}{{"recipe": "recipe-002"}},
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["menu_cost"].(float64) != 9.99 {
		t.Errorf("Expected caller-supplied menu_cost 9.99, got %v", data["menu_cost"])
	}
	if data["currency"] != "EUR" {
		t.Errorf("Expected caller-supplied currency EUR, got %v", data["currency"])
	}
	breakfasts := data["breakfasts"].([]interface{})
	if len(breakfasts) != 1 {
		t.Fatalf("Expected 1 breakfast slot, got %d", len(breakfasts))
	}
	if breakfasts[0].(map[string]interface{})["recipe"] != "recipe-002" {
		t.Errorf("Expected breakfast slot replaced with recipe-002, got %v", breakfasts[0])
	}
	lunches := data["lunches"].([]interface{})
	if len(lunches) != 1 {
		t.Errorf("Expected 1 lunch slot, got %d", len(lunches))
	}
}

func TestMenuUpdateRequiresAllFields(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)
	testutil.SeedTestRecipe(t, env.DB, "recipe-001", "test-user-001", "Porridge", "stock-001", 1.5)
	testutil.SeedTestMenu(t, env.DB, "menu-001", "test-user-001", "Day One", "recipe-001", 1.5)

	// supplying only one meal list must not silently drop the others
	w := testutil.DoRequest(env.Router, "PATCH", "/menus", map[string]interface{}{
		"id":      "menu-001",
		"name":    "Day One",
		"lunches": []map[string]interface{}{{"recipe": "recipe-001"}},
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["message"] != "Currency field is required" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}

	var count int64
	env.DB.Model(&entity.MenuSlot{}).Where("menu_id = ?", "menu-001").Count(&count)
	if count != 1 {
		t.Errorf("Expected original slot untouched, found %d", count)
	}
}

func TestMenuDeleteGuardedByWeeklyMenu(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)
	testutil.SeedTestRecipe(t, env.DB, "recipe-001", "test-user-001", "Porridge", "stock-001", 1.5)
	testutil.SeedTestMenu(t, env.DB, "menu-001", "test-user-001", "Day One", "recipe-001", 1.5)

	wm := &entity.WeeklyMenu{
		ID:             "wm-001",
		UserID:         "test-user-001",
		WeekNumber:     10,
		Year:           2026,
		WeeklyMenuCost: "1.50",
		Currency:       "GBP",
		Slots: []entity.WeeklyMenuSlot{
			{ID: "wms-001", WeeklyMenuID: "wm-001", Day: "monday", MenuID: "menu-001"},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := env.DB.Create(wm).Error; err != nil {
		t.Fatalf("Failed to seed weekly menu: %v", err)
	}

	w := testutil.DoRequest(env.Router, "DELETE", "/menus", map[string]interface{}{
		"id": "menu-001",
	}, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["message"] != "Menu has assigned weekly menu, please delete the weekly menu first" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}
}

func TestMenuDuplicateName(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)
	testutil.SeedTestRecipe(t, env.DB, "recipe-001", "test-user-001", "Porridge", "stock-001", 1.5)
	testutil.SeedTestMenu(t, env.DB, "menu-001", "test-user-001", "Day One", "recipe-001", 1.5)

	w := testutil.DoRequest(env.Router, "POST", "/menus", map[string]interface{}{
		"name":       "Day One",
		"breakfasts": []map[string]interface{}{{"recipe": "recipe-001"}},
		"lunches":    []map[string]interface{}{{"recipe": "recipe-001"}},
		"dinners":    []map[string]interface{}{{"recipe": "recipe-001"}},
	}, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}
}
