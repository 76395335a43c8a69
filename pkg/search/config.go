// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"os"
	"sync"
)

// APIKeyEnv is the environment variable NewConfiguration reads when no key is
// given.
const APIKeyEnv = "PIPL_API_KEY"

// Configuration carries the API key and the flags that change how the API
// answers. Nil pointers and empty strings mean "not set" and are left out of
// the request.
type Configuration struct {
	APIKey string
	// ShowSources is "matching", "all" or "true".
	ShowSources        string
	MinimumProbability *float64
	MinimumMatch       *float64
	LiveFeeds          *bool
	HideSponsored      *bool
	// MatchRequirements is a criteria expression such as "name and phone".
	MatchRequirements          string
	SourceCategoryRequirements string
	InferPersons               *bool
	TopMatch                   *bool
	UseHTTPS                   bool
	// Endpoint overrides the API URL, scheme included. Empty means the
	// public endpoint with the scheme chosen by UseHTTPS.
	Endpoint string
}

// NewConfiguration returns a configuration using apiKey, or the value of
// PIPL_API_KEY when apiKey is empty. HTTPS is on.
func NewConfiguration(apiKey string) *Configuration {
	if apiKey == "" {
		apiKey = os.Getenv(APIKeyEnv)
	}
	return &Configuration{APIKey: apiKey, UseHTTPS: true}
}

var (
	defaultOnce   sync.Once
	defaultMu     sync.RWMutex
	defaultConfig *Configuration
)

// DefaultConfiguration returns the process-wide configuration used by
// requests that carry none. It is created from the environment on first use
// unless SetDefaultConfiguration ran earlier.
func DefaultConfiguration() *Configuration {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		if defaultConfig == nil {
			defaultConfig = NewConfiguration("")
		}
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultConfig
}

// SetDefaultConfiguration replaces the process-wide configuration.
func SetDefaultConfiguration(c *Configuration) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultConfig = c
}
