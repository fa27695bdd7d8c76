// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Zero-valued pipeline limits are replaced with the matching service's
// documented defaults.
package config
