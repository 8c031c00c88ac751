package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/hungrybyte/galley/internal/kitchen/entity"
	"github.com/hungrybyte/galley/internal/kitchen/testutil"
)

func seedMenuChain(t *testing.T, env *testutil.TestEnv, userID string) {
	t.Helper()
	testutil.SeedTestStock(t, env.DB, "stock-001", userID, "Flour", 50, 20, 100)
	testutil.SeedTestRecipe(t, env.DB, "recipe-001", userID, "Porridge", "stock-001", 1.5)
	testutil.SeedTestMenu(t, env.DB, "menu-001", userID, "Day One", "recipe-001", 1.5)
	testutil.SeedTestMenu(t, env.DB, "menu-002", userID, "Day Two", "recipe-001", 2.25)
}

func allDays(menuID string) map[string]interface{} {
	days := make(map[string]interface{}, len(entity.WeekDays))
	for _, day := range entity.WeekDays {
		days[day] = []map[string]interface{}{{"menu": menuID}}
	}
	return days
}

func TestWeeklyMenuCreate(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	seedMenuChain(t, env, "test-user-001")

	days := allDays("menu-001")
	days["sunday"] = []map[string]interface{}{{"menu": "menu-002"}}

	w := testutil.DoRequest(env.Router, "POST", "/weeklymenus", map[string]interface{}{
		"week_number": 10,
		"year":        2026,
		"days":        days,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})

	// 6 days at 1.50 plus sunday at 2.25
	if data["weekly_menu_cost"] != "11.25" {
		t.Errorf("Expected weekly_menu_cost 11.25, got %v", data["weekly_menu_cost"])
	}
	if data["currency"] != "GBP" {
		t.Errorf("Expected currency GBP, got %v", data["currency"])
	}
	if !strings.HasPrefix(data["start_date"].(string), "2026-03-02") {
		t.Errorf("Expected start_date 2026-03-02, got %v", data["start_date"])
	}
	if !strings.HasPrefix(data["end_date"].(string), "2026-03-08") {
		t.Errorf("Expected end_date 2026-03-08, got %v", data["end_date"])
	}
}

func TestWeeklyMenuCreateMissingDay(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	seedMenuChain(t, env, "test-user-001")

	days := allDays("menu-001")
	delete(days, "tuesday")

	w := testutil.DoRequest(env.Router, "POST", "/weeklymenus", map[string]interface{}{
		"week_number": 10,
		"year":        2026,
		"days":        days,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["message"] != "Tuesday field is required" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}
}

func TestWeeklyMenuDuplicateWeek(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	seedMenuChain(t, env, "test-user-001")

	body := map[string]interface{}{
		"week_number": 10,
		"year":        2026,
		"days":        allDays("menu-001"),
	}
	w := testutil.DoRequest(env.Router, "POST", "/weeklymenus", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, "POST", "/weeklymenus", body, token)
	if w2.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestWeeklyMenuUpdateOwnerCheck(t *testing.T) {
	env := setupTest(t)
	ownerToken := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestUser(t, env.DB, "test-user-002", "Other Chef", "chef@test.com")
	seedMenuChain(t, env, "test-user-001")

	w := testutil.DoRequest(env.Router, "POST", "/weeklymenus", map[string]interface{}{
		"week_number": 10,
		"year":        2026,
		"days":        allDays("menu-001"),
	}, ownerToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	wmID := resp["data"].(map[string]interface{})["id"].(string)

	otherToken := testutil.GenerateTestToken("test-user-002", "Other Chef", "chef@test.com", []string{"Chef"})
	w2 := testutil.DoRequest(env.Router, "PATCH", "/weeklymenus/"+wmID, map[string]interface{}{
		"week_number": 11,
	}, otherToken)
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for non-owner, got %d: %s", w2.Code, w2.Body.String())
	}

	// owner partial update succeeds, untouched fields survive
	w3 := testutil.DoRequest(env.Router, "PATCH", "/weeklymenus/"+wmID, map[string]interface{}{
		"week_number": 11,
	}, ownerToken)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	resp3 := testutil.ParseResponse(w3)
	data3 := resp3["data"].(map[string]interface{})
	if data3["week_number"].(float64) != 11 {
		t.Errorf("Expected week_number 11, got %v", data3["week_number"])
	}
	if data3["year"].(float64) != 2026 {
		t.Errorf("Expected year preserved as 2026, got %v", data3["year"])
	}
}

func TestWeeklyMenuDeleteOwnerCheck(t *testing.T) {
	env := setupTest(t)
	ownerToken := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	testutil.SeedTestUser(t, env.DB, "test-user-002", "Other Chef", "chef@test.com")
	seedMenuChain(t, env, "test-user-001")

	w := testutil.DoRequest(env.Router, "POST", "/weeklymenus", map[string]interface{}{
		"week_number": 12,
		"year":        2026,
		"days":        allDays("menu-001"),
	}, ownerToken)
	resp := testutil.ParseResponse(w)
	wmID := resp["data"].(map[string]interface{})["id"].(string)

	otherToken := testutil.GenerateTestToken("test-user-002", "Other Chef", "chef@test.com", []string{"Chef"})
	w2 := testutil.DoRequest(env.Router, "DELETE", "/weeklymenus/"+wmID, nil, otherToken)
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for non-owner, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(env.Router, "DELETE", "/weeklymenus/"+wmID, nil, ownerToken)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200 for owner, got %d: %s", w3.Code, w3.Body.String())
	}
}

func TestWeeklyMenuStockCheck(t *testing.T) {
	env := setupTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test-user-001", "Test Manager", "manager@test.com")
	// baseline is 50 units; each day draws 1kg → 1000 base units, short on day one
	seedMenuChain(t, env, "test-user-001")

	w := testutil.DoRequest(env.Router, "POST", "/weeklymenus", map[string]interface{}{
		"week_number": 14,
		"year":        2026,
		"days":        allDays("menu-001"),
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	wmID := resp["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(env.Router, "POST", "/weeklymenus/"+wmID+"/stock-check", nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	resp2 := testutil.ParseResponse(w2)
	data := resp2["data"].(map[string]interface{})
	if data["sufficient"] != false {
		t.Errorf("Expected sufficient false, got %v", data["sufficient"])
	}
	if data["short_day"] != "monday" {
		t.Errorf("Expected short_day monday, got %v", data["short_day"])
	}

	// warning flag persisted onto the shortage day's first slot
	var slot entity.WeeklyMenuSlot
	if err := env.DB.Where("weekly_menu_id = ? AND day = ?", wmID, "monday").
		Order("sort_order ASC").First(&slot).Error; err != nil {
		t.Fatalf("Failed to load slot: %v", err)
	}
	if slot.StockWkStatus != entity.StockShortWarning {
		t.Errorf("Expected slot status %q, got %q", entity.StockShortWarning, slot.StockWkStatus)
	}
}
