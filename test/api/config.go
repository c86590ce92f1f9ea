/*
Copyright 2026 the Petstore QA Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrConfiguration is raised when the test configuration is inconsistent.
var ErrConfiguration = errors.New("invalid test configuration")

type TestConfig struct {
	// BaseURL is the API root, when empty the suites run against an
	// in-process twin.
	BaseURL           string
	RequestTimeout    time.Duration
	TestTimeout       time.Duration
	DefaultUsername   string
	DefaultPassword   string
	SkipIntegration   bool
	DebugLogging      bool
	LogRequests       bool
	LogResponses      bool
	ValidateResponses bool
	PrintExchanges    bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if configuration values are malformed.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	requestTimeout := getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second)
	testTimeout := getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute)
	baseURL := os.Getenv("API_BASE_URL")

	// The API document describes the twin exactly, a remote service is
	// only validated on request.
	config := &TestConfig{
		BaseURL:           baseURL,
		RequestTimeout:    requestTimeout,
		TestTimeout:       testTimeout,
		DefaultUsername:   os.Getenv("DEFAULT_USERNAME"),
		DefaultPassword:   os.Getenv("DEFAULT_PASSWORD"),
		SkipIntegration:   getBoolWithDefault("SKIP_INTEGRATION", false),
		DebugLogging:      getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:       getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:      getBoolWithDefault("LOG_RESPONSES", false),
		ValidateResponses: getBoolWithDefault("VALIDATE_RESPONSES", baseURL == ""),
		PrintExchanges:    getBoolWithDefault("PRINT_EXCHANGES", true),
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// UseTwin reports whether the suites need to start a local twin.
func (c *TestConfig) UseTwin() bool {
	return c.BaseURL == ""
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		os.Getenv("TEST_ENV_FILE"),
		"../../../test/.env", // From test/api/suites directory
		"../../test/.env",    // From test/api directory
	}

	var envPath string

	for _, path := range envPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence over the file.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateConfig checks that configuration values are usable.
func validateConfig(config *TestConfig) error {
	if config.BaseURL != "" {
		u, err := url.Parse(config.BaseURL)
		if err != nil {
			return fmt.Errorf("%w: API_BASE_URL: %w", ErrConfiguration, err)
		}

		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%w: API_BASE_URL must be an http or https URL, got %q", ErrConfiguration, config.BaseURL)
		}
	}

	if (config.DefaultUsername == "") != (config.DefaultPassword == "") {
		return fmt.Errorf("%w: DEFAULT_USERNAME and DEFAULT_PASSWORD must be set together", ErrConfiguration)
	}

	return nil
}
