package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// registerDomainSteps registers steps that drive the API through the
// expense tracking flows: accounts, categories, ledger entries,
// recurring expenses and analytics.
func registerDomainSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a registered user "([^"]*)" with password "([^"]*)"$`, aRegisteredUser)
	ctx.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, iAmLoggedInAs)
	ctx.Step(`^I have a category named "([^"]*)"$`, iHaveACategoryNamed)
	ctx.Step(`^I have an expense "([^"]*)" of ([0-9.]+) ([A-Z]{3}) in "([^"]*)" on "([^"]*)"$`, iHaveAnExpenseOn)
	ctx.Step(`^I have an expense "([^"]*)" of ([0-9.]+) ([A-Z]{3}) in "([^"]*)" dated today$`, iHaveAnExpenseToday)
	ctx.Step(`^I have a (daily|weekly|monthly|annual) recurring expense "([^"]*)" of ([0-9.]+) ([A-Z]{3}) in "([^"]*)" starting today$`, iHaveARecurringExpense)
	ctx.Step(`^I process the recurring expense "([^"]*)"$`, iProcessTheRecurringExpense)
	ctx.Step(`^I toggle the recurring expense "([^"]*)"$`, iToggleTheRecurringExpense)
	ctx.Step(`^I delete the recurring expense "([^"]*)"$`, iDeleteTheRecurringExpense)
	ctx.Step(`^I list my recurring expenses$`, iListMyRecurringExpenses)
	ctx.Step(`^I list my expenses$`, iListMyExpenses)
	ctx.Step(`^I request the spending summary$`, iRequestTheSpendingSummary)
	ctx.Step(`^I request the spending summary in ([A-Z]{3})$`, iRequestTheSpendingSummaryIn)
	ctx.Step(`^I request the category stats$`, iRequestTheCategoryStats)
	ctx.Step(`^I request trends for the last (\d+) months$`, iRequestTrends)
	ctx.Step(`^I export my expenses$`, iExportMyExpenses)
	ctx.Step(`^the exported CSV should have (\d+) data rows$`, theExportedCSVShouldHaveDataRows)
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func aRegisteredUser(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	name := strings.Split(email, "@")[0]
	err := tc.do(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"email":    email,
		"name":     name,
		"password": password,
	})
	if err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d. Body: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(tc.responseBody, &auth); err != nil {
		return fmt.Errorf("failed to parse registration response: %w", err)
	}

	tc.tokens[email] = auth.AccessToken
	tc.accessToken = auth.AccessToken
	return nil
}

func iAmLoggedInAs(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	err := tc.do(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status %d. Body: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(tc.responseBody, &auth); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}

	tc.tokens[email] = auth.AccessToken
	tc.accessToken = auth.AccessToken
	return nil
}

func iHaveACategoryNamed(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	err := tc.do(http.MethodPost, "/api/v1/categories", map[string]interface{}{
		"name": name,
	})
	if err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("category creation failed with status %d. Body: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(tc.responseBody, &created); err != nil {
		return fmt.Errorf("failed to parse category response: %w", err)
	}

	tc.categoryIDs[name] = created.ID
	return nil
}

func iHaveAnExpenseOn(ctx context.Context, description string, amount float64, currency, categoryName, date string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	categoryID, ok := tc.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("unknown category %q, create it first", categoryName)
	}

	err := tc.do(http.MethodPost, "/api/v1/expenses", map[string]interface{}{
		"description": description,
		"amount":      amount,
		"currency":    currency,
		"category_id": categoryID,
		"date":        date,
	})
	if err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("expense creation failed with status %d. Body: %s", tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func iHaveAnExpenseToday(ctx context.Context, description string, amount float64, currency, categoryName string) error {
	return iHaveAnExpenseOn(ctx, description, amount, currency, categoryName, today())
}

func iHaveARecurringExpense(ctx context.Context, frequency, description string, amount float64, currency, categoryName string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	categoryID, ok := tc.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("unknown category %q, create it first", categoryName)
	}

	err := tc.do(http.MethodPost, "/api/v1/recurring-expenses", map[string]interface{}{
		"description": description,
		"amount":      amount,
		"currency":    currency,
		"category_id": categoryID,
		"frequency":   frequency,
		"start_date":  today(),
	})
	if err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("recurring expense creation failed with status %d. Body: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(tc.responseBody, &created); err != nil {
		return fmt.Errorf("failed to parse recurring expense response: %w", err)
	}

	tc.recurringIDs[description] = created.ID
	return nil
}

func (tc *TestContext) recurringAction(method, description, suffix string) error {
	id, ok := tc.recurringIDs[description]
	if !ok {
		return fmt.Errorf("unknown recurring expense %q, create it first", description)
	}
	return tc.do(method, "/api/v1/recurring-expenses/"+id+suffix, nil)
}

func iProcessTheRecurringExpense(ctx context.Context, description string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.recurringAction(http.MethodPost, description, "/process")
}

func iToggleTheRecurringExpense(ctx context.Context, description string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.recurringAction(http.MethodPost, description, "/toggle")
}

func iDeleteTheRecurringExpense(ctx context.Context, description string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.recurringAction(http.MethodDelete, description, "")
}

func iListMyRecurringExpenses(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.do(http.MethodGet, "/api/v1/recurring-expenses", nil)
}

func iListMyExpenses(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.do(http.MethodGet, "/api/v1/expenses", nil)
}

func iRequestTheSpendingSummary(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.do(http.MethodGet, "/api/v1/stats/summary", nil)
}

func iRequestTheSpendingSummaryIn(ctx context.Context, currency string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.do(http.MethodGet, "/api/v1/stats/summary?currency="+currency, nil)
}

func iRequestTheCategoryStats(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.do(http.MethodGet, "/api/v1/stats/categories", nil)
}

func iRequestTrends(ctx context.Context, months int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.do(http.MethodGet, fmt.Sprintf("/api/v1/stats/trends?months=%d", months), nil)
}

func iExportMyExpenses(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.do(http.MethodGet, "/api/v1/expenses/export", nil)
}

func theExportedCSVShouldHaveDataRows(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	lines := strings.Split(strings.TrimSpace(string(tc.responseBody)), "\n")
	if len(lines) == 0 {
		return fmt.Errorf("export is empty")
	}

	// First line is the header
	dataRows := len(lines) - 1
	if dataRows != expected {
		return fmt.Errorf("expected %d data rows, got %d. Export:\n%s", expected, dataRows, string(tc.responseBody))
	}
	return nil
}
