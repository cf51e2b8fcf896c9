//go:build integration

// Package integration provides BDD integration tests using Godog/Cucumber.
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/expense-tracker/backend/test/integration/steps"
)

// TestFeatures runs all feature files against a fully wired API.
func TestFeatures(t *testing.T) {
	format := "pretty"
	if f := os.Getenv("GODOG_FORMAT"); f != "" {
		format = f
	}

	suite := godog.TestSuite{
		Name:                 "expense-tracker-api",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options: &godog.Options{
			Format:      format,
			Paths:       []string{"features"},
			Output:      colors.Colored(os.Stdout),
			Concurrency: 1, // Scenarios share the in-memory database
			Strict:      true,
			Tags:        os.Getenv("GODOG_TAGS"),
			TestingT:    t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
