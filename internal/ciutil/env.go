// Package ciutil detects the execution environment for tests. Integration
// tests that need a real database skip locally when none is configured but
// must fail loudly in CI, where the database is provisioned by the pipeline.
package ciutil

import (
	"os"
)

// Environment variable names recognized by the test tooling.
const (
	// CI environment detection variables
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	// Database connection variables, in order of precedence
	EnvPurchaseTestDBURL = "PURCHASE_TEST_DB_URL"
	EnvDatabaseURL       = "DATABASE_URL"
)

// IsCI reports whether the process is running in a CI environment.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != "" ||
		os.Getenv(EnvJenkinsURL) != "" ||
		os.Getenv(EnvCircleCI) != ""
}

// TestDatabaseURL returns the connection string integration tests should
// use, preferring the test-specific variable over the general one. Returns
// the empty string when neither is set.
func TestDatabaseURL() string {
	if url := os.Getenv(EnvPurchaseTestDBURL); url != "" {
		return url
	}
	return os.Getenv(EnvDatabaseURL)
}
