// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/application/usecase/export"
	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	"github.com/expense-tracker/backend/internal/application/usecase/stats"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/persistence"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken string
	tokens      map[string]string

	// Created resources, keyed by the name used in the feature file
	categoryIDs  map[string]string
	recurringIDs map[string]string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		// Disable login rate limiting between scenarios
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := &TestContext{
			requestHeaders: make(map[string]string),
			tokens:         make(map[string]string),
			categoryIDs:    make(map[string]string),
			recurringIDs:   make(map[string]string),
		}

		engine, err := buildApp()
		if err != nil {
			return ctx, err
		}
		tc.engine = engine
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerDomainSteps(ctx)
	registerResponseSteps(ctx)
}

// buildApp wires the full application against the in-memory database
// and the embedded Redis, exactly as cmd/api does against real backends.
func buildApp() (*gin.Engine, error) {
	database := mock.NewDb(
		&model.UserModel{},
		&model.CategoryModel{},
		&model.ExpenseModel{},
		&model.RecurringExpenseModel{},
		&model.EmailJobModel{},
	)
	if err := database.Reset(); err != nil {
		return nil, fmt.Errorf("failed to reset database: %w", err)
	}

	redisClient := mock.NewRedis()
	if err := mock.ClearRedis(redisClient); err != nil {
		return nil, fmt.Errorf("failed to clear redis: %w", err)
	}
	statsCache := cache.NewStatsCache(redisClient)

	userRepo := persistence.NewUserRepository(database.DbConn)
	categoryRepo := persistence.NewCategoryRepository(database.DbConn)
	expenseRepo := persistence.NewExpenseRepository(database.DbConn)
	recurringRepo := persistence.NewRecurringRepository(database.DbConn)

	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService("integration-test-secret", time.Hour)

	healthController := controller.NewHealthController(
		func() bool { return true },
		func() bool { return redisClient.Ping(context.Background()).Err() == nil },
	)
	authController := controller.NewAuthController(
		auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService),
		auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
	)
	categoryController := controller.NewCategoryController(
		category.NewCreateCategoryUseCase(categoryRepo),
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewUpdateCategoryUseCase(categoryRepo),
		category.NewDeleteCategoryUseCase(categoryRepo, statsCache),
	)
	expenseController := controller.NewExpenseController(
		expense.NewCreateExpenseUseCase(expenseRepo, categoryRepo, statsCache),
		expense.NewListExpensesUseCase(expenseRepo),
		expense.NewUpdateExpenseUseCase(expenseRepo, categoryRepo, statsCache),
		expense.NewDeleteExpenseUseCase(expenseRepo, statsCache),
	)
	recurringController := controller.NewRecurringController(
		recurring.NewCreateRecurringUseCase(recurringRepo, categoryRepo),
		recurring.NewListRecurringUseCase(recurringRepo),
		recurring.NewUpdateRecurringUseCase(recurringRepo, categoryRepo),
		recurring.NewDeleteRecurringUseCase(recurringRepo),
		recurring.NewToggleActiveUseCase(recurringRepo),
		recurring.NewProcessPaymentUseCase(recurringRepo, statsCache),
	)
	statsController := controller.NewStatsController(
		stats.NewGetSummaryUseCase(expenseRepo, categoryRepo, statsCache),
		stats.NewGetCategoryStatsUseCase(expenseRepo, categoryRepo, statsCache),
		stats.NewGetTrendsUseCase(expenseRepo, categoryRepo, statsCache),
	)
	exportController := controller.NewExportController(
		export.NewExportExpensesUseCase(expenseRepo, categoryRepo),
	)

	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		expenseController,
		recurringController,
		statsController,
		exportController,
		middleware.NewRateLimiter(),
		middleware.NewAuthMiddleware(tokenService),
	)
	return r.Setup("test"), nil
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I am not authenticated$`, iAmNotAuthenticated)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response list "([^"]*)" should have (\d+) items$`, theResponseListShouldHaveItems)
}

// do sends a request through the test server, attaching the current
// access token and any headers set by previous steps.
func (tc *TestContext) do(method, endpoint string, payload interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, tc.server.URL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// responseField decodes the response body and resolves a dot-separated
// path, with numeric segments indexing into arrays.
func (tc *TestContext) responseField(path string) (interface{}, error) {
	var data interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, segment := range strings.Split(path, ".") {
		switch value := current.(type) {
		case map[string]interface{}:
			next, ok := value[segment]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response. Body: %s", path, string(tc.responseBody))
			}
			current = next
		case []interface{}:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(value) {
				return nil, fmt.Errorf("invalid array index '%s' in path '%s'", segment, path)
			}
			current = value[index]
		default:
			return nil, fmt.Errorf("cannot descend into '%s' at path '%s'", segment, path)
		}
	}
	return current, nil
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.do(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	req, err := http.NewRequest(method, tc.server.URL+endpoint, bytes.NewBufferString(body.Content))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func iSetHeaderTo(ctx context.Context, header, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return nil
}

func iAmNotAuthenticated(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.accessToken = ""
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := tc.responseField(field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, err := tc.responseField(field)
	return err
}

func theResponseListShouldHaveItems(ctx context.Context, field string, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := tc.responseField(field)
	if err != nil {
		return err
	}

	list, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("field '%s' is not a list. Body: %s", field, string(tc.responseBody))
	}
	if len(list) != expected {
		return fmt.Errorf("list '%s' expected %d items, got %d. Body: %s", field, expected, len(list), string(tc.responseBody))
	}
	return nil
}
