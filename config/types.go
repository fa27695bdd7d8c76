package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// MapboxConfig contains the external routing service configuration.
// AccessToken is required before any matching request can be made.
type MapboxConfig struct {
	BaseURL     string `yaml:"baseURL" validate:"omitempty,url"`
	AccessToken string `yaml:"accessToken"`
	Profile     string `yaml:"profile" validate:"omitempty,oneof=driving walking cycling driving-traffic"`
	TimeoutMS   int    `yaml:"timeoutMS" validate:"gte=0"`
}

// PipelineConfig contains the request-size limits of the matching pipeline.
// MaxTracePoints caps how many fixes survive temporal down-sampling;
// MaxRequestPoints is the matching service's per-request limit. Raising
// MaxTracePoints above MaxRequestPoints makes the pipeline split the trace
// into several concurrent matching requests.
type PipelineConfig struct {
	MaxTracePoints     int `yaml:"maxTracePoints" validate:"omitempty,gte=2"`
	MaxRequestPoints   int `yaml:"maxRequestPoints" validate:"omitempty,gte=2"`
	SearchRadiusMeters int `yaml:"searchRadiusMeters" validate:"omitempty,gt=0"`
	MaxRouteWaypoints  int `yaml:"maxRouteWaypoints" validate:"omitempty,gte=2"`
	MaxSimplePoints    int `yaml:"maxSimplePoints" validate:"omitempty,gte=2"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Mapbox   MapboxConfig   `yaml:"mapbox"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}
