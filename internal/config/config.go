package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    int    `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	DBDriver    string `mapstructure:"DB_DRIVER"`
	PostgresURL string `mapstructure:"POSTGRES_URL"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`

	JWTSecret          string        `mapstructure:"JWT_SECRET"`
	JWTTTL             time.Duration `mapstructure:"JWT_TTL"`
	FieldEncryptionKey string        `mapstructure:"FIELD_ENCRYPTION_KEY"`

	AIProvider   string `mapstructure:"AI_PROVIDER"`
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`
	LogFile       string `mapstructure:"LOG_FILE"`
	LogMaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var defaults = map[string]any{
	"PORT":                 8080,
	"GIN_MODE":             "release",
	"DB_DRIVER":            "postgres",
	"POSTGRES_URL":         "",
	"SQLITE_PATH":          "studiocrm.db",
	"JWT_SECRET":           "",
	"JWT_TTL":              "24h",
	"FIELD_ENCRYPTION_KEY": "",
	"AI_PROVIDER":          "none",
	"OPENAI_API_KEY":       "",
	"OPENAI_MODEL":         "gpt-4o-mini",
	"GEMINI_API_KEY":       "",
	"GEMINI_MODEL":         "gemini-1.5-flash",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "console",
	"LOG_FILE":             "",
	"LOG_MAX_SIZE_MB":      100,
	"LOG_MAX_BACKUPS":      5,
	"LOG_MAX_AGE_DAYS":     30,
	"CORS_ALLOWED_ORIGINS": "*",
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres":
		if c.PostgresURL == "" {
			return errors.New("POSTGRES_URL is required when DB_DRIVER=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q, use postgres or sqlite", c.DBDriver)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
