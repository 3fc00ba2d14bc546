package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Вспомогательные хелперы.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

const sampleYAML = `
env: "prod"
api:
  base_url: "https://nutricare.example/api"
  refresh_path: "/auth/refresh/"
  user_agent: "nutricare-test"
session:
  backend: "redis"
  redis_url: "redis://cache:6379/2"
  redis_prefix: "nc:"
gateway:
  host: "0.0.0.0"
  port: "9000"
  allowed_origins: ["http://localhost:5173", "https://app.nutricare.example"]
timeouts:
  request: "3s"
  gateway: "5s"
`

const minimalYAML = `
session:
  backend: "memory"
`

const brokenYAML = `
api:
  base_url: [unclosed
`

// Тесты этого файла трогают ENV и cwd, поэтому t.Parallel() не используется.

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "https://nutricare.example/api", cfg.API.BaseURL)
	require.Equal(t, "/auth/refresh/", cfg.API.RefreshPath)
	require.Equal(t, "nutricare-test", cfg.API.UserAgent)
	require.Equal(t, SessionRedis, cfg.Session.Backend)
	require.Equal(t, "redis://cache:6379/2", cfg.Session.RedisURL)
	require.Equal(t, "nc:", cfg.Session.RedisPrefix)
	require.Equal(t, "0.0.0.0:9000", cfg.Gateway.Addr())
	require.Equal(t, []string{"http://localhost:5173", "https://app.nutricare.example"}, cfg.Gateway.AllowedOrigins)
	require.Equal(t, 3*time.Second, cfg.Timeouts.Request)
	require.Equal(t, 5*time.Second, cfg.Timeouts.Gateway)
}

func TestLoad_Defaults(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "min.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	require.Equal(t, "/users/token/refresh/", cfg.API.RefreshPath)
	require.Equal(t, SessionMemory, cfg.Session.Backend)
	require.Equal(t, 15*time.Second, cfg.Timeouts.Request)
	require.Equal(t, "127.0.0.1:8090", cfg.Gateway.Addr())
	require.Equal(t, []string{"http://localhost:3000"}, cfg.Gateway.AllowedOrigins)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "config.yaml", sampleYAML)
	t.Setenv("API_URL", "http://10.0.0.5:8000/api")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.5:8000/api", cfg.API.BaseURL)
}

func TestLoad_WithExplicitPath_FileDoesNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat failed")
}

func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_UnknownSessionBackend(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "bad.yaml", "session:\n  backend: \"sqlite\"\n")

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown session backend")
}

func TestLoad_WithCONFIG_PATH_OK(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "from_env_path.yaml", minimalYAML)
	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, SessionMemory, cfg.Session.Backend)
}

func TestLoad_WithLocalYAML_OK(t *testing.T) {
	chdir(t, t.TempDir())
	writeFile(t, ".", "local.yaml", sampleYAML)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
}

func TestLoad_EnvOnly(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("API_URL", "http://backend:8000/api")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, SessionMemory, cfg.Session.Backend)
	require.Equal(t, "http://backend:8000/api", cfg.API.BaseURL)
}

func TestSessionPath(t *testing.T) {
	cfg := &Config{Session: SessionConfig{Path: "/tmp/s.json"}}
	p, err := cfg.SessionPath()
	require.NoError(t, err)
	require.Equal(t, "/tmp/s.json", p)

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")
	cfg.Session.Path = ""
	p, err = cfg.SessionPath()
	require.NoError(t, err)
	require.Equal(t, "session.json", filepath.Base(p))
	require.Equal(t, "nutricare", filepath.Base(filepath.Dir(p)))
}
