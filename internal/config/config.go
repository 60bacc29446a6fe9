package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration required by the API process.
// Values come from env, optionally layered over config.yaml.
// No business logic should depend on raw environment variables.
type Config struct {
	App    AppConfig
	Data   DataConfig
	DB     DBConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Audit  AuditConfig
	Export ExportConfig
}

type AppConfig struct {
	Env  string
	Port int
}

// DataConfig selects where partners, policies and payouts are read from.
// Accepts: fixture, postgres
type DataConfig struct {
	Source string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// SSLMode is kept explicit for AWS-ready posture.
	// Accepts: disable, require, verify-ca, verify-full
	SSLMode string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

type AuthConfig struct {
	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// AdminEmail and AdminPasswordHash (bcrypt) seed the single static admin login.
	AdminEmail        string
	AdminPasswordHash string

	LoginFailureThreshold int
	LoginFailureWindow    time.Duration
}

// AuditConfig controls where audit entries are persisted.
// Sink accepts: log, memory, postgres, redis
type AuditConfig struct {
	Sink           string
	RetentionDays  int
	PersistTimeout time.Duration
	Stream         string
	StreamMaxLen   int64
}

type ExportConfig struct {
	MaxConcurrent int
	CapTTL        time.Duration
}

var envBindings = []struct {
	key     string
	envName string
}{
	{"app.env", "APP_ENV"},
	{"app.port", "APP_PORT"},
	{"data.source", "DATA_SOURCE"},
	{"db.host", "DB_HOST"},
	{"db.port", "DB_PORT"},
	{"db.user", "DB_USER"},
	{"db.password", "DB_PASSWORD"},
	{"db.name", "DB_NAME"},
	{"db.sslmode", "DB_SSLMODE"},
	{"redis.host", "REDIS_HOST"},
	{"redis.port", "REDIS_PORT"},
	{"redis.password", "REDIS_PASSWORD"},
	{"auth.jwt_secret", "JWT_SECRET"},
	{"auth.jwt_issuer", "JWT_ISSUER"},
	{"auth.jwt_audience", "JWT_AUDIENCE"},
	{"auth.access_ttl", "JWT_ACCESS_TTL"},
	{"auth.refresh_ttl", "JWT_REFRESH_TTL"},
	{"auth.admin_email", "ADMIN_EMAIL"},
	{"auth.admin_password_hash", "ADMIN_PASSWORD_HASH"},
	{"auth.login_failure_threshold", "LOGIN_FAILURE_THRESHOLD"},
	{"auth.login_failure_window", "LOGIN_FAILURE_WINDOW"},
	{"audit.sink", "AUDIT_SINK"},
	{"audit.retention_days", "AUDIT_RETENTION_DAYS"},
	{"audit.persist_timeout", "AUDIT_PERSIST_TIMEOUT"},
	{"audit.stream", "AUDIT_STREAM"},
	{"audit.stream_max_len", "AUDIT_STREAM_MAX_LEN"},
	{"export.max_concurrent", "EXPORT_MAX_CONCURRENT"},
	{"export.cap_ttl", "EXPORT_CAP_TTL"},
}

// Load reads config.yaml (optional) and the environment, then validates.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.envName); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", b.envName, err)
		}
	}

	c := FromViper(v)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// FromViper copies settings out of v without validating them.
func FromViper(v *viper.Viper) Config {
	c := Config{}

	c.App.Env = strings.TrimSpace(v.GetString("app.env"))
	c.App.Port = v.GetInt("app.port")

	c.Data.Source = strings.ToLower(strings.TrimSpace(v.GetString("data.source")))

	c.DB.Host = strings.TrimSpace(v.GetString("db.host"))
	c.DB.Port = v.GetInt("db.port")
	c.DB.User = strings.TrimSpace(v.GetString("db.user"))
	c.DB.Password = v.GetString("db.password")
	c.DB.Name = strings.TrimSpace(v.GetString("db.name"))
	c.DB.SSLMode = strings.TrimSpace(v.GetString("db.sslmode"))

	c.Redis.Host = strings.TrimSpace(v.GetString("redis.host"))
	c.Redis.Port = v.GetInt("redis.port")
	c.Redis.Password = v.GetString("redis.password")

	c.Auth.JWTSecret = v.GetString("auth.jwt_secret")
	c.Auth.JWTIssuer = strings.TrimSpace(v.GetString("auth.jwt_issuer"))
	c.Auth.JWTAudience = strings.TrimSpace(v.GetString("auth.jwt_audience"))
	// Duration settings are optional; defaults applied in Validate() based on env.
	c.Auth.AccessTokenTTL = v.GetDuration("auth.access_ttl")
	c.Auth.RefreshTokenTTL = v.GetDuration("auth.refresh_ttl")
	c.Auth.AdminEmail = strings.ToLower(strings.TrimSpace(v.GetString("auth.admin_email")))
	c.Auth.AdminPasswordHash = strings.TrimSpace(v.GetString("auth.admin_password_hash"))
	c.Auth.LoginFailureThreshold = v.GetInt("auth.login_failure_threshold")
	c.Auth.LoginFailureWindow = v.GetDuration("auth.login_failure_window")

	c.Audit.Sink = strings.ToLower(strings.TrimSpace(v.GetString("audit.sink")))
	c.Audit.RetentionDays = v.GetInt("audit.retention_days")
	c.Audit.PersistTimeout = v.GetDuration("audit.persist_timeout")
	c.Audit.Stream = strings.TrimSpace(v.GetString("audit.stream"))
	c.Audit.StreamMaxLen = v.GetInt64("audit.stream_max_len")

	c.Export.MaxConcurrent = v.GetInt("export.max_concurrent")
	c.Export.CapTTL = v.GetDuration("export.cap_ttl")

	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 8080)
	v.SetDefault("data.source", "fixture")

	v.SetDefault("db.port", 5432)

	v.SetDefault("redis.port", 6379)

	v.SetDefault("auth.login_failure_threshold", 5)
	v.SetDefault("auth.login_failure_window", 15*time.Minute)

	v.SetDefault("audit.sink", "log")
	v.SetDefault("audit.retention_days", 2555)
	v.SetDefault("audit.persist_timeout", 5*time.Second)
	v.SetDefault("audit.stream", "audit:log")
	v.SetDefault("audit.stream_max_len", 100000)

	v.SetDefault("export.max_concurrent", 2)
	v.SetDefault("export.cap_ttl", 2*time.Minute)
}

// Validate reports every problem at once and fills env-dependent defaults.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if !isValidPort(c.App.Port) {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Data.Source == "" {
		c.Data.Source = "fixture"
	}
	if !isValidSource(c.Data.Source) {
		errs = append(errs, fmt.Errorf("DATA_SOURCE must be one of fixture, postgres, got %q", c.Data.Source))
	}
	if c.Data.Source == "fixture" && c.IsProduction() {
		errs = append(errs, errors.New("DATA_SOURCE=fixture is not allowed in production"))
	}

	if c.Audit.Sink == "" {
		c.Audit.Sink = "log"
	}
	if !isValidSink(c.Audit.Sink) {
		errs = append(errs, fmt.Errorf("AUDIT_SINK must be one of log, memory, postgres, redis, got %q", c.Audit.Sink))
	}
	if c.IsProduction() && c.Audit.Sink == "memory" {
		errs = append(errs, errors.New("AUDIT_SINK=memory is not allowed in production"))
	}
	if c.Audit.RetentionDays <= 0 {
		errs = append(errs, fmt.Errorf("AUDIT_RETENTION_DAYS must be positive, got %d", c.Audit.RetentionDays))
	}
	if c.Audit.PersistTimeout <= 0 {
		c.Audit.PersistTimeout = 5 * time.Second
	}
	if c.Audit.Sink == "redis" && c.Audit.Stream == "" {
		errs = append(errs, errors.New("AUDIT_STREAM is required when AUDIT_SINK=redis"))
	}

	if c.NeedsPostgres() {
		errs = append(errs, c.validateDB()...)
	}

	if c.Redis.Host == "" {
		errs = append(errs, errors.New("REDIS_HOST is required"))
	}
	if !isValidPort(c.Redis.Port) {
		errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() {
		if c.Auth.JWTIssuer == "" {
			errs = append(errs, errors.New("JWT_ISSUER is required in production"))
		}
		if c.Auth.JWTAudience == "" {
			errs = append(errs, errors.New("JWT_AUDIENCE is required in production"))
		}
	}
	if c.Auth.AccessTokenTTL <= 0 {
		c.Auth.AccessTokenTTL = 15 * time.Minute
	}
	if c.Auth.RefreshTokenTTL <= 0 {
		c.Auth.RefreshTokenTTL = 30 * 24 * time.Hour
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		errs = append(errs, errors.New("JWT_REFRESH_TTL must be greater than JWT_ACCESS_TTL"))
	}
	if c.Auth.AdminEmail != "" && c.Auth.AdminPasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD_HASH is required when ADMIN_EMAIL is set"))
	}
	if c.Auth.LoginFailureThreshold <= 0 {
		c.Auth.LoginFailureThreshold = 5
	}
	if c.Auth.LoginFailureWindow <= 0 {
		c.Auth.LoginFailureWindow = 15 * time.Minute
	}

	if c.Export.MaxConcurrent <= 0 {
		errs = append(errs, fmt.Errorf("EXPORT_MAX_CONCURRENT must be positive, got %d", c.Export.MaxConcurrent))
	}
	if c.Export.CapTTL <= 0 {
		c.Export.CapTTL = 2 * time.Minute
	}

	return joinErrors(errs)
}

func (c *Config) validateDB() []error {
	var errs []error
	if c.DB.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if !isValidPort(c.DB.Port) {
		errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
	}
	if c.DB.User == "" {
		errs = append(errs, errors.New("DB_USER is required"))
	}
	if c.DB.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.DB.SSLMode == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_SSLMODE is required in production"))
		} else {
			// Local-friendly default; production must be explicit.
			c.DB.SSLMode = "disable"
		}
	}
	if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
		errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
	}
	return errs
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

// NeedsPostgres is true when either the data source or the audit sink is postgres.
func (c Config) NeedsPostgres() bool {
	return c.Data.Source == "postgres" || c.Audit.Sink == "postgres"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) PostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func isValidPort(p int) bool {
	return p > 0 && p <= 65535
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSource(v string) bool {
	return v == "fixture" || v == "postgres"
}

func isValidSink(v string) bool {
	switch v {
	case "log", "memory", "postgres", "redis":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
