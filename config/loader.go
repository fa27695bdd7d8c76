package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the corresponding config key is absent or zero.
const (
	DefaultBaseURL            = "https://api.mapbox.com"
	DefaultProfile            = "driving"
	DefaultTimeoutMS          = 10000
	DefaultPort               = 16181
	DefaultMaxTracePoints     = 100
	DefaultMaxRequestPoints   = 100
	DefaultSearchRadiusMeters = 25
	DefaultMaxRouteWaypoints  = 25
	DefaultMaxSimplePoints    = 50
)

// Load reads and validates an application configuration file. The access
// token may alternatively come from the MAPBOX_ACCESS_TOKEN environment
// variable so it can be kept out of checked-in config files.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig

	paths := []string{path, "config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if cfg.Mapbox.AccessToken == "" {
		cfg.Mapbox.AccessToken = os.Getenv("MAPBOX_ACCESS_TOKEN")
	}
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Mapbox.BaseURL == "" {
		cfg.Mapbox.BaseURL = DefaultBaseURL
	}
	if cfg.Mapbox.Profile == "" {
		cfg.Mapbox.Profile = DefaultProfile
	}
	if cfg.Mapbox.TimeoutMS == 0 {
		cfg.Mapbox.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.Pipeline.MaxTracePoints == 0 {
		cfg.Pipeline.MaxTracePoints = DefaultMaxTracePoints
	}
	if cfg.Pipeline.MaxRequestPoints == 0 {
		cfg.Pipeline.MaxRequestPoints = DefaultMaxRequestPoints
	}
	if cfg.Pipeline.SearchRadiusMeters == 0 {
		cfg.Pipeline.SearchRadiusMeters = DefaultSearchRadiusMeters
	}
	if cfg.Pipeline.MaxRouteWaypoints == 0 {
		cfg.Pipeline.MaxRouteWaypoints = DefaultMaxRouteWaypoints
	}
	if cfg.Pipeline.MaxSimplePoints == 0 {
		cfg.Pipeline.MaxSimplePoints = DefaultMaxSimplePoints
	}
}
