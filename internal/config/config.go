// config — источник загрузки конфигурации клиента NutriCare (CLI и локальный gateway).
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Бэкенды хранения сессии.
const (
	SessionMemory = "memory"
	SessionFile   = "file"
	SessionRedis  = "redis"
)

type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	API      APIConfig     `yaml:"api"`
	Session  SessionConfig `yaml:"session"`
	Gateway  GatewayConfig `yaml:"gateway"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// APIConfig — REST-бэкенд и его refresh-эндпойнт.
type APIConfig struct {
	BaseURL     string `yaml:"base_url"     env:"API_URL"          env-default:"http://localhost:8000/api"`
	RefreshPath string `yaml:"refresh_path" env:"API_REFRESH_PATH" env-default:"/users/token/refresh/"`
	UserAgent   string `yaml:"user_agent"   env:"API_USER_AGENT"   env-default:"nutricare-client"`
}

// SessionConfig — где живёт пара access/refresh.
type SessionConfig struct {
	Backend string `yaml:"backend" env:"SESSION_BACKEND" env-default:"file"`
	// Path — файл сессии; пустой путь означает <UserConfigDir>/nutricare/session.json.
	Path string `yaml:"path" env:"SESSION_PATH"`
	// Secret — если задан, файл сессии шифруется.
	Secret      string `yaml:"secret"       env:"SESSION_SECRET"`
	RedisURL    string `yaml:"redis_url"    env:"SESSION_REDIS_URL"    env-default:"redis://localhost:6379/0"`
	RedisPrefix string `yaml:"redis_prefix" env:"SESSION_REDIS_PREFIX" env-default:"nutricare:session:"`
}

// GatewayConfig — локальный HTTP для SPA.
type GatewayConfig struct {
	Host string `yaml:"host" env:"GATEWAY_HOST" env-default:"127.0.0.1"`
	Port string `yaml:"port" env:"GATEWAY_PORT" env-default:"8090"`
	// AllowedOrigins — origin'ы SPA для CORS; пустой список отключает CORS.
	AllowedOrigins []string `yaml:"allowed_origins" env:"GATEWAY_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

func (g GatewayConfig) Addr() string { return net.JoinHostPort(g.Host, g.Port) }

// TimeoutConfig — таймауты исходящих запросов и входящих запросов gateway.
type TimeoutConfig struct {
	Request  time.Duration `yaml:"request"  env:"TIMEOUT_REQUEST"  env-default:"15s"`
	Gateway  time.Duration `yaml:"gateway"  env:"TIMEOUT_GATEWAY"  env-default:"30s"`
	Shutdown time.Duration `yaml:"shutdown" env:"TIMEOUT_SHUTDOWN" env-default:"10s"`
}

// SessionPath возвращает путь файла сессии с учётом значения по умолчанию.
func (c *Config) SessionPath() (string, error) {
	if c.Session.Path != "" {
		return c.Session.Path, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config/SessionPath: %w", err)
	}

	return filepath.Join(dir, "nutricare", "session.json"), nil
}

func (c *Config) validate() error {
	switch c.Session.Backend {
	case SessionMemory, SessionFile, SessionRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}

	if c.API.BaseURL == "" {
		return fmt.Errorf("api base_url is empty")
	}

	return nil
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
