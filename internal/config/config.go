package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/straye-as/offer-tracker/internal/secrets"
	"go.uber.org/zap"
)

// Storage modes understood by storage.NewKV
const (
	StorageModeMemory   = "memory"
	StorageModeLocal    = "local"
	StorageModeSQLite   = "sqlite"
	StorageModePostgres = "postgres"
	StorageModeAzure    = "azure"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Storage   StorageConfig
	Backup    BackupConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
	// Locale selects user-facing messages and formatting ("es" or "en")
	Locale string
}

// StorageConfig selects where the state and preference blobs live
type StorageConfig struct {
	// Mode is one of memory, local, sqlite, postgres or azure
	Mode string
	// LocalBasePath is the directory used by the local mode
	LocalBasePath string
	// SQLitePath is the database file used by the sqlite mode
	SQLitePath string
	// Database is used by the postgres mode
	Database DatabaseConfig
	// CloudConnectionString and CloudContainer are used by the azure mode
	CloudConnectionString string
	CloudContainer        string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// BackupConfig controls the periodic snapshot job
type BackupConfig struct {
	Enabled bool
	// Cron is a robfig/cron expression with an optional seconds field
	Cron string
	// Timeout bounds a single backup run (seconds)
	Timeout int
	// Target is a storage configuration for the backup destination
	Target StorageConfig
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout   int
	WriteTimeout  int
	EnableSwagger bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	// AllowedOrigins is a list of allowed origins for CORS requests
	// Use "*" to allow all origins (not recommended for production)
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	// MaxAge is the max age (in seconds) for preflight cache
	MaxAge int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	// WhitelistIPs is a list of IPs that bypass rate limiting
	WhitelistIPs []string
	// WhitelistPaths is a list of paths that bypass rate limiting (e.g., /health)
	WhitelistPaths []string
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// TimeoutDuration returns the backup run timeout as duration
func (b *BackupConfig) TimeoutDuration() time.Duration {
	return time.Duration(b.Timeout) * time.Second
}

// Load loads configuration from file and environment variables.
// Secrets are not resolved here; use LoadWithSecrets for that.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values that would otherwise fail late at startup
func (c *Config) Validate() error {
	if !isKnownStorageMode(c.Storage.Mode) {
		return fmt.Errorf("unsupported storage mode: %s", c.Storage.Mode)
	}
	if c.Backup.Enabled {
		if c.Backup.Cron == "" {
			return fmt.Errorf("backup.cron is required when backup is enabled")
		}
		if !isKnownStorageMode(c.Backup.Target.Mode) {
			return fmt.Errorf("unsupported backup target mode: %s", c.Backup.Target.Mode)
		}
	}
	switch c.App.Locale {
	case "es", "en":
	default:
		return fmt.Errorf("unsupported locale: %s", c.App.Locale)
	}
	return nil
}

func isKnownStorageMode(mode string) bool {
	switch mode {
	case StorageModeMemory, StorageModeLocal, StorageModeSQLite, StorageModePostgres, StorageModeAzure:
		return true
	}
	return false
}

// LoadWithSecrets loads configuration and resolves the storage credentials
// from the configured secret source. Environment variables always win over
// Key Vault values.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if !cfg.needsSecrets() {
		return cfg, nil
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SecretSource(cfg.Secrets.Source),
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	resolveStorageSecrets(ctx, provider, &cfg.Storage, "STORAGE")
	if cfg.Backup.Enabled {
		resolveStorageSecrets(ctx, provider, &cfg.Backup.Target, "BACKUP_TARGET")
	}

	return cfg, nil
}

func (c *Config) needsSecrets() bool {
	remote := func(mode string) bool {
		return mode == StorageModeAzure || mode == StorageModePostgres
	}
	return remote(c.Storage.Mode) || (c.Backup.Enabled && remote(c.Backup.Target.Mode))
}

func resolveStorageSecrets(ctx context.Context, provider *secrets.Provider, sc *StorageConfig, envPrefix string) {
	switch sc.Mode {
	case StorageModeAzure:
		if connStr, err := provider.GetSecretOrEnv(ctx, "storage-connection-string", envPrefix+"_CLOUDCONNECTIONSTRING"); err == nil && connStr != "" {
			sc.CloudConnectionString = connStr
		}
	case StorageModePostgres:
		if password, err := provider.GetSecretOrEnv(ctx, "postgres-password", envPrefix+"_DATABASE_PASSWORD"); err == nil && password != "" {
			sc.Database.Password = password
		}
	}
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Offer Tracker")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.locale", "es")

	// Storage defaults
	v.SetDefault("storage.mode", StorageModeLocal)
	v.SetDefault("storage.localBasePath", "./data")
	v.SetDefault("storage.sqlitePath", "./data/offers.db")
	v.SetDefault("storage.cloudContainer", "offer-tracker")
	v.SetDefault("storage.database.host", "localhost")
	v.SetDefault("storage.database.port", 5432)
	v.SetDefault("storage.database.name", "offers")
	v.SetDefault("storage.database.user", "offers_user")
	v.SetDefault("storage.database.password", "")
	v.SetDefault("storage.database.sslMode", "disable")
	v.SetDefault("storage.database.maxOpenConns", 5)
	v.SetDefault("storage.database.maxIdleConns", 2)
	v.SetDefault("storage.database.connMaxLifetime", 300)

	// Backup defaults
	v.SetDefault("backup.enabled", false)
	v.SetDefault("backup.cron", "0 0 3 * * *") // 03:00 every day
	v.SetDefault("backup.timeout", 60)
	v.SetDefault("backup.target.mode", StorageModeLocal)
	v.SetDefault("backup.target.localBasePath", "./backups")
	v.SetDefault("backup.target.cloudContainer", "offer-tracker-backups")

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", false)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults
	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 120)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/ready"})
}
