// Package config provides centralized configuration management for the feedback
// reporter. It loads configuration from multiple sources, validates it, and exposes
// a type-safe API to the rest of the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values from struct tags (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern FEEDBACK_* for namespacing:
//
//	FEEDBACK_SERVER_PORT=8080
//	FEEDBACK_LOGGING_LEVEL=debug
//	FEEDBACK_SESSION_TTL=30m
//	FEEDBACK_REPORT_FORMAT=pdf
//	FEEDBACK_CONFIG_FILE=/etc/feedback/config.yaml
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Tests that must not depend on the environment use config.Default().
package config
