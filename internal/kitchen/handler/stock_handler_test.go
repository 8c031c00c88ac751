package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/hungrybyte/galley/internal/config"
	"github.com/hungrybyte/galley/internal/kitchen/repository"
	"github.com/hungrybyte/galley/internal/kitchen/service"
	"github.com/hungrybyte/galley/internal/kitchen/testutil"
)

// setupTest wires the full router against an isolated test schema.
func setupTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             testutil.JWTSecret,
			AccessTokenExpire:  30 * time.Minute,
			RefreshTokenExpire: 168 * time.Hour,
			Issuer:             "galley",
		},
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, nil, cfg)
	handlers := NewHandlers(services, cfg)

	router.POST("/auth", handlers.Auth.Login)

	api := testutil.AuthGroup(router, "")
	api.GET("/stocks", handlers.Stock.List)
	api.POST("/stocks", handlers.Stock.Create)
	api.PATCH("/stocks/:id", handlers.Stock.Update)
	api.DELETE("/stocks", handlers.Stock.Delete)
	api.PATCH("/stocks/check/:id", handlers.Stock.CheckOff)
	api.GET("/recipes", handlers.Recipe.List)
	api.POST("/recipes", handlers.Recipe.Create)
	api.PATCH("/recipes", handlers.Recipe.Update)
	api.DELETE("/recipes", handlers.Recipe.Delete)
	api.GET("/menus", handlers.Menu.List)
	api.POST("/menus", handlers.Menu.Create)
	api.PATCH("/menus", handlers.Menu.Update)
	api.DELETE("/menus", handlers.Menu.Delete)
	api.GET("/weeklymenus", handlers.WeeklyMenu.List)
	api.POST("/weeklymenus", handlers.WeeklyMenu.Create)
	api.PATCH("/weeklymenus/:id", handlers.WeeklyMenu.Update)
	api.DELETE("/weeklymenus/:id", handlers.WeeklyMenu.Delete)
	api.POST("/weeklymenus/:id/stock-check", handlers.WeeklyMenu.StockCheck)
	api.GET("/users", handlers.User.List)
	api.POST("/users", handlers.User.Create)
	api.DELETE("/users", handlers.User.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// stockBody returns a complete create/update payload; tests override or delete keys.
func stockBody(name string, current float64) map[string]interface{} {
	return map[string]interface{}{
		"name":          name,
		"categories":    []string{"baking"},
		"cost":          1.2,
		"currency":      "GBP",
		"current_stock": current,
		"min_stock":     20,
		"max_stock":     100,
		"unit":          "kg",
		"per_unit":      "g",
		"per_stock":     1000,
		"per_cost":      0.0012,
	}
}

func TestStockCreate(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")

	w := testutil.DoRequest(env.Router, "POST", "/stocks", stockBody("Flour", 50), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["stock_status"] != "Good" {
		t.Errorf("Expected status Good, got %v", data["stock_status"])
	}
}

func TestStockCreateMissingField(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")

	// current_stock omitted
	body := stockBody("Flour", 0)
	delete(body, "current_stock")
	w := testutil.DoRequest(env.Router, "POST", "/stocks", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["message"] != "Current stock field is required" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}
}

func TestStockCreateZeroIsValid(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")

	body := stockBody("Salt", 0)
	body["cost"] = 0
	body["min_stock"] = 5
	body["max_stock"] = 50
	body["per_stock"] = 0
	body["per_cost"] = 0
	w := testutil.DoRequest(env.Router, "POST", "/stocks", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["stock_status"] != "Low" {
		t.Errorf("Expected status Low, got %v", data["stock_status"])
	}
}

func TestStockCreateDuplicateName(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)

	w := testutil.DoRequest(env.Router, "POST", "/stocks", stockBody("Flour", 10), token)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["message"] != "Duplicate stock name detected" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}
}

func TestStockUpdateClampsNegative(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)

	w := testutil.DoRequest(env.Router, "PATCH", "/stocks/stock-001", stockBody("Flour", -10), token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["current_stock"].(float64) != 0 {
		t.Errorf("Expected current_stock 0, got %v", data["current_stock"])
	}
	if data["stock_status"] != "Low" {
		t.Errorf("Expected status Low after clamp, got %v", data["stock_status"])
	}
}

func TestStockUpdateRequiresAllFields(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)

	// update is a full replace, a partial body is rejected
	w := testutil.DoRequest(env.Router, "PATCH", "/stocks/stock-001", map[string]interface{}{
		"current_stock": 10,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["message"] != "Name field is required" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}

	body := stockBody("Flour", 10)
	delete(body, "currency")
	w = testutil.DoRequest(env.Router, "PATCH", "/stocks/stock-001", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	if resp["message"] != "Currency field is required" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}
}

func TestStockListEmpty(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")

	w := testutil.DoRequest(env.Router, "GET", "/stocks", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["message"] != "No stocks found" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}
}

func TestStockDeleteGuardedByRecipe(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)
	testutil.SeedTestRecipe(t, env.DB, "recipe-001", "test-user-001", "Bread", "stock-001", 3.5)

	w := testutil.DoRequest(env.Router, "DELETE", "/stocks", map[string]interface{}{
		"id": "stock-001",
	}, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["message"] != "Stock has assigned recipe, please delete the recipe first" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}
}

func TestStockDelete(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)

	w := testutil.DoRequest(env.Router, "DELETE", "/stocks", map[string]interface{}{
		"id": "stock-001",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["message"] != "Stock Flour (stock-001) deleted" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}
}

func TestStockCheckOff(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestStock(t, env.DB, "stock-001", "test-user-001", "Flour", 50, 20, 100)

	w := testutil.DoRequest(env.Router, "PATCH", "/stocks/check/stock-001", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["is_checked"] != true {
		t.Errorf("Expected is_checked true, got %v", data["is_checked"])
	}

	// idempotent on repeat
	w2 := testutil.DoRequest(env.Router, "PATCH", "/stocks/check/stock-001", nil, token)
	resp2 := testutil.ParseResponse(w2)
	data2 := resp2["data"].(map[string]interface{})
	if data2["is_checked"] != true {
		t.Errorf("Expected is_checked to stay true, got %v", data2["is_checked"])
	}
}

func TestStockRequiresAuth(t *testing.T) {
	env := setupTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/stocks", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d: %s", w.Code, w.Body.String())
	}
}
