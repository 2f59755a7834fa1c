package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/annel0/mmo-globe/internal/globe"
	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.

type Config struct {
	Globe     GlobeConfig     `yaml:"globe"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GlobeConfig параметры глобуса; нулевые поля берутся из ExampleSpec
type GlobeConfig struct {
	Seed            *int64  `yaml:"seed"`
	Radius          float64 `yaml:"radius"`
	RootResolution  uint64  `yaml:"root_resolution"`
	ChunkResolution uint64  `yaml:"chunk_resolution"`
	BuildOnStart    *bool   `yaml:"build_on_start"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
}

// ToSpec собирает и проверяет параметры глобуса
func (g GlobeConfig) ToSpec() (globe.Spec, error) {
	spec := globe.ExampleSpec()
	if g.Seed != nil {
		spec.Seed = *g.Seed
	}
	if g.Radius != 0 {
		spec.Radius = g.Radius
	}
	if g.RootResolution != 0 {
		spec.RootResolution = globe.GridCoord(g.RootResolution)
	}
	if g.ChunkResolution != 0 {
		spec.ChunkResolution = globe.GridCoord(g.ChunkResolution)
	}

	if err := spec.Validate(); err != nil {
		return globe.Spec{}, fmt.Errorf("globe config: %w", err)
	}
	return spec, nil
}

// ShouldBuildOnStart строить ли все чанки при запуске (по умолчанию да)
func (g GlobeConfig) ShouldBuildOnStart() bool {
	return g.BuildOnStart == nil || *g.BuildOnStart
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "GLOBE_REST_PORT", 8090)
}

// GetServiceName имя сервиса для трассировки
func (t *TelemetryConfig) GetServiceName() string {
	if t.ServiceName == "" {
		return "globe_server"
	}
	return t.ServiceName
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{}
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV GLOBE_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("GLOBE_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}
