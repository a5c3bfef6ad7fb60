package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	AppEnv   string `mapstructure:"APP_ENV"`
	Port     string `mapstructure:"PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	StoreBackend string `mapstructure:"STORE_BACKEND"`
	DataPath     string `mapstructure:"DATA_PATH"`
	ScriptPath   string `mapstructure:"SCRIPT_PATH"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`

	// JWT_SECRET is read from the environment by utils when tokens are signed.
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	FirebaseBucket      string `mapstructure:"FIREBASE_STORAGE_BUCKET"`
	FirebaseCredentials string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FrontendURL         string `mapstructure:"FRONTEND_URL"`
	AdminURL            string `mapstructure:"ADMIN_URL"`
	PageTemplate        string `mapstructure:"PAGE_TEMPLATE"`
	SelectorsPath       string `mapstructure:"SELECTORS_PATH"`

	SyncSourceURL  string        `mapstructure:"SYNC_SOURCE_URL"`
	SyncCachePath  string        `mapstructure:"SYNC_CACHE_PATH"`
	SyncOutputPath string        `mapstructure:"SYNC_OUTPUT_PATH"`
	SyncInterval   time.Duration `mapstructure:"SYNC_INTERVAL"`
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// CORSOrigins lists the configured site and admin origins, skipping blanks.
func (c *Config) CORSOrigins() []string {
	var origins []string
	for _, o := range []string{c.FrontendURL, c.AdminURL} {
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func LoadEnv() error {
	// A missing .env is fine; in production the variables are set directly.
	_ = godotenv.Load()
	return nil
}

// Load reads configuration from the environment on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_BACKEND", "file")
	v.SetDefault("DATA_PATH", "data/restaurant-data.json")
	v.SetDefault("SCRIPT_PATH", "js/restaurant-data.js")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("FIREBASE_STORAGE_BUCKET", "")
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("ADMIN_URL", "")
	v.SetDefault("PAGE_TEMPLATE", "")
	v.SetDefault("SELECTORS_PATH", "")
	v.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "")
	v.SetDefault("SYNC_SOURCE_URL", "")
	v.SetDefault("SYNC_CACHE_PATH", "")
	v.SetDefault("SYNC_OUTPUT_PATH", "public/index.html")
	v.SetDefault("SYNC_INTERVAL", "30s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(cfg.StoreBackend)
	return &cfg, nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv(logger *zap.Logger) error {
	var missing []string

	if os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if os.Getenv("ADMIN_PASSWORD") == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}
	if strings.EqualFold(GetEnv("STORE_BACKEND", "file"), "postgres") && os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	if os.Getenv("FIREBASE_STORAGE_BUCKET") == "" {
		logger.Warn("FIREBASE_STORAGE_BUCKET not set - image uploads and projection mirroring are disabled")
	}
	if os.Getenv("FRONTEND_URL") == "" {
		logger.Warn("FRONTEND_URL not set - CORS may not work correctly")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
