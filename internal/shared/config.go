// Package shared holds process-wide configuration.
//
// Values come from the environment (a .env file in the working directory is
// loaded first when present), are decoded over the defaults below and then
// validated, so a bad deployment fails at startup instead of on first request.
package shared

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	AppEnv      string `koanf:"app_env" validate:"required"`
	LogLevel    string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
	HTTPAddr    string `koanf:"http_addr" validate:"required"`
	MetricsAddr string `koanf:"metrics_addr"`

	DBDriver     string `koanf:"db_driver" validate:"oneof=postgres mysql memory"`
	DBHost       string `koanf:"db_host" validate:"required_unless=DBDriver memory"`
	DBPort       int    `koanf:"db_port" validate:"min=1,max=65535"`
	DBUser       string `koanf:"db_user" validate:"required_unless=DBDriver memory"`
	DBPassword   string `koanf:"db_password"`
	DBName       string `koanf:"db_name" validate:"required_unless=DBDriver memory"`
	DBSSLMode    string `koanf:"db_sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	DBMaxConns   int    `koanf:"db_max_conns" validate:"min=1"`
	DBLogQueries bool   `koanf:"db_log_queries"`

	// JSON fixture loaded into the store when DBDriver is memory
	MemorySeedFile string `koanf:"memory_seed_file"`

	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	RateLimitRPS    float64       `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst  int           `koanf:"rate_limit_burst" validate:"gte=0"`
	CORSOrigins     string        `koanf:"cors_allowed_origins" validate:"required"`

	OTLPEndpoint string `koanf:"otel_exporter_otlp_endpoint"`
}

const mysqlDefaultPort = 3306

// Defaults mirrors the values a local developer database uses.
func Defaults() Config {
	return Config{
		AppEnv:          "prod",
		LogLevel:        "info",
		HTTPAddr:        ":8000",
		DBDriver:        "postgres",
		DBHost:          "localhost",
		DBPort:          5432,
		DBUser:          "postgres",
		DBPassword:      "1234",
		DBName:          "polimanage",
		DBSSLMode:       "disable",
		DBMaxConns:      10,
		RequestTimeout:  15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RateLimitRPS:    50,
		RateLimitBurst:  100,
		CORSOrigins:     "*",
	}
}

// Load reads APP_ENV, DB_HOST, ... (upper-case env names of the koanf tags).
// DB_PORT defaults to the driver's standard port when unset.
func Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DBDriver == "mysql" && !k.Exists("db_port") {
		cfg.DBPort = mysqlDefaultPort
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) IsDev() bool {
	switch c.AppEnv {
	case "dev", "development", "local":
		return true
	}
	return false
}
