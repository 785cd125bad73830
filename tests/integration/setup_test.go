package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"expensetracker/internal/handlers"
	"expensetracker/internal/logger"
	"expensetracker/internal/middleware"
	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
	"expensetracker/internal/services"
	"expensetracker/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Expense{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	expenseService := services.NewExpenseService(db, pagination.DefaultLimits())
	summaryService := services.NewSummaryService(db)
	categoryService := services.NewCategoryService(db)

	// Handlers
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")

	expenses := api.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/summary", summaryHandler.GetSummary)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	categories := api.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createExpense creates an expense from a raw JSON body and returns its ID.
func (app *testApp) createExpense(t *testing.T, body string) float64 {
	t.Helper()
	rec := app.request("POST", "/api/expenses", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["id"].(float64)
}

// errorCode extracts the machine-readable code from an error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}
