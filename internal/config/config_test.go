package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/mmo-globe/internal/globe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
globe:
  seed: 0
  radius: 6371
  root_resolution: 32
  chunk_resolution: 8
  build_on_start: false
server:
  rest_port: 9100
logging:
  level: debug
  dir: ""
telemetry:
  enabled: true
  endpoint: "collector:4318"
  insecure: true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "globe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	spec, err := cfg.Globe.ToSpec()
	require.NoError(t, err)
	assert.Equal(t, int64(0), spec.Seed, "явный нулевой сид не заменяется дефолтом")
	assert.Equal(t, 6371.0, spec.Radius)
	assert.Equal(t, globe.GridCoord(32), spec.RootResolution)
	assert.Equal(t, globe.GridCoord(8), spec.ChunkResolution)
	assert.False(t, cfg.Globe.ShouldBuildOnStart())

	assert.Equal(t, 9100, cfg.Server.GetRESTPort())
	assert.Equal(t, "debug", cfg.Logging.Level)

	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "collector:4318", cfg.Telemetry.Endpoint)
	assert.Equal(t, "globe_server", cfg.Telemetry.GetServiceName())
}

func TestLoad_EmptyPath(t *testing.T) {
	t.Setenv("GLOBE_CONFIG", "")

	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Nil(t, cfg, "без пути и ENV конфиг не загружается")
}

func TestLoad_EnvPath(t *testing.T) {
	t.Setenv("GLOBE_CONFIG", writeConfig(t, "server:\n  rest_port: 9200\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9200, cfg.Server.GetRESTPort())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "globe: [not, a, map"))
	assert.Error(t, err)
}

func TestGlobeConfig_Defaults(t *testing.T) {
	spec, err := Default().Globe.ToSpec()
	require.NoError(t, err)
	assert.Equal(t, globe.ExampleSpec(), spec)
	assert.True(t, Default().Globe.ShouldBuildOnStart())
}

func TestGlobeConfig_Invalid(t *testing.T) {
	cfg := GlobeConfig{RootResolution: 16, ChunkResolution: 5}
	_, err := cfg.ToSpec()
	assert.ErrorIs(t, err, globe.ErrInvalidSpec)
}

func TestGlobeConfig_OverflowingResolution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.yaml")
	yml := "globe:\n  root_resolution: 9223372036854775808\n  chunk_resolution: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(1<<63), cfg.Globe.RootResolution)

	_, err = cfg.Globe.ToSpec()
	assert.ErrorIs(t, err, globe.ErrInvalidSpec)
}

func TestServerConfig_PortFallback(t *testing.T) {
	var s ServerConfig

	t.Setenv("GLOBE_REST_PORT", "")
	assert.Equal(t, 8090, s.GetRESTPort())

	t.Setenv("GLOBE_REST_PORT", "9300")
	assert.Equal(t, 9300, s.GetRESTPort())

	t.Setenv("GLOBE_REST_PORT", "not-a-port")
	assert.Equal(t, 8090, s.GetRESTPort())

	s.RESTPort = 9400
	assert.Equal(t, 9400, s.GetRESTPort(), "значение из конфига приоритетнее ENV")
}
