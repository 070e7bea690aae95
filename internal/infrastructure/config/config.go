package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// development-only signing secrets; validate rejects them in production
const (
	devRappiSecret     = "dev-rappi-token-secret-change-me"
	devDashboardSecret = "dev-dashboard-session-secret-change-me"
)

// Email transports
const (
	EmailProviderResend = "resend"
	EmailProviderSMTP   = "smtp"
	EmailProviderLog    = "log"
)

// Storage backends
const (
	StorageProviderS3   = "s3"
	StorageProviderStub = "stub"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Log       LogConfig
	Rappi     RappiConfig
	Dashboard DashboardConfig
	Email     EmailConfig
	Storage   StorageConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxBodySize      int64
	CORSAllowOrigins []string
	TrustedProxies   []string
	// Token exchange rate limit, per client IP
	AuthRateLimitRequests int
	AuthRateLimitWindow   time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// RappiConfig holds the marketplace integration settings
type RappiConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
	TokenIssuer string
	APIBaseURL  string
	APIToken    string
	APITimeout  time.Duration
}

// DashboardConfig holds the settings used to verify identity provider sessions
type DashboardConfig struct {
	SessionSecret string
	Issuer        string
}

// EmailConfig selects and configures the email transport
type EmailConfig struct {
	Provider     string // resend, smtp, log
	From         string
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPTLS      string // ssl, starttls, none
	Timeout      time.Duration
	SendWelcome  bool
	CompanyName  string
	ContactEmail string
	ContactPhone string
}

// StorageConfig configures the ticket archive
type StorageConfig struct {
	Provider        string // s3, stub
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	TicketPrefix    string
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
	DBTraceEnabled    bool
	DBSlowQueryThresh time.Duration
	LogExportEnabled  bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with POD_ prefix (e.g., POD_RAPPI_TOKEN_SECRET)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("POD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:           v.GetDuration("http.read_timeout"),
			WriteTimeout:          v.GetDuration("http.write_timeout"),
			IdleTimeout:           v.GetDuration("http.idle_timeout"),
			MaxBodySize:           v.GetInt64("http.max_body_size"),
			CORSAllowOrigins:      v.GetStringSlice("http.cors_allow_origins"),
			TrustedProxies:        v.GetStringSlice("http.trusted_proxies"),
			AuthRateLimitRequests: v.GetInt("http.auth_rate_limit_requests"),
			AuthRateLimitWindow:   v.GetDuration("http.auth_rate_limit_window"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Rappi: RappiConfig{
			TokenSecret: v.GetString("rappi.token_secret"),
			TokenExpiry: v.GetDuration("rappi.token_expiry"),
			TokenIssuer: v.GetString("rappi.token_issuer"),
			APIBaseURL:  v.GetString("rappi.api_base_url"),
			APIToken:    v.GetString("rappi.api_token"),
			APITimeout:  v.GetDuration("rappi.api_timeout"),
		},
		Dashboard: DashboardConfig{
			SessionSecret: v.GetString("dashboard.session_secret"),
			Issuer:        v.GetString("dashboard.issuer"),
		},
		Email: EmailConfig{
			Provider:     v.GetString("email.provider"),
			From:         v.GetString("email.from"),
			ResendAPIKey: v.GetString("email.resend_api_key"),
			SMTPHost:     v.GetString("email.smtp_host"),
			SMTPPort:     v.GetInt("email.smtp_port"),
			SMTPUsername: v.GetString("email.smtp_username"),
			SMTPPassword: v.GetString("email.smtp_password"),
			SMTPTLS:      v.GetString("email.smtp_tls"),
			Timeout:      v.GetDuration("email.timeout"),
			SendWelcome:  v.GetBool("email.send_welcome"),
			CompanyName:  v.GetString("email.company_name"),
			ContactEmail: v.GetString("email.contact_email"),
			ContactPhone: v.GetString("email.contact_phone"),
		},
		Storage: StorageConfig{
			Provider:        v.GetString("storage.provider"),
			Bucket:          v.GetString("storage.bucket"),
			Region:          v.GetString("storage.region"),
			Endpoint:        v.GetString("storage.endpoint"),
			AccessKeyID:     v.GetString("storage.access_key_id"),
			SecretAccessKey: v.GetString("storage.secret_access_key"),
			UsePathStyle:    v.GetBool("storage.use_path_style"),
			TicketPrefix:    v.GetString("storage.ticket_prefix"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
			LogExportEnabled:  v.GetBool("telemetry.log_export_enabled"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "pod-backoffice"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 2 << 20 // 2MB
	}
	if cfg.HTTP.AuthRateLimitRequests == 0 {
		cfg.HTTP.AuthRateLimitRequests = 10
	}
	if cfg.HTTP.AuthRateLimitWindow == 0 {
		cfg.HTTP.AuthRateLimitWindow = time.Minute
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "podstore"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 20
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	if cfg.Rappi.TokenExpiry == 0 {
		cfg.Rappi.TokenExpiry = time.Hour
	}
	if cfg.Rappi.TokenIssuer == "" {
		cfg.Rappi.TokenIssuer = "pod-backoffice"
	}
	if cfg.Rappi.APIBaseURL == "" {
		cfg.Rappi.APIBaseURL = "https://api.rappi.com"
	}
	if cfg.Rappi.APITimeout == 0 {
		cfg.Rappi.APITimeout = 15 * time.Second
	}

	if cfg.Email.Provider == "" {
		cfg.Email.Provider = EmailProviderLog
	}
	if cfg.Email.From == "" {
		cfg.Email.From = "Soluciones Innovadoras GDC <tickets@solucionesinnovadorasgdc.com>"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 465
	}
	if cfg.Email.SMTPTLS == "" {
		cfg.Email.SMTPTLS = "ssl"
	}
	if cfg.Email.Timeout == 0 {
		cfg.Email.Timeout = 10 * time.Second
	}
	if cfg.Email.CompanyName == "" {
		cfg.Email.CompanyName = "Soluciones Innovadoras GDC"
	}
	if cfg.Email.ContactEmail == "" {
		cfg.Email.ContactEmail = "tickets@solucionesinnovadorasgdc.com"
	}
	if cfg.Email.ContactPhone == "" {
		cfg.Email.ContactPhone = "+52 81 1038 6975"
	}

	if cfg.Storage.Provider == "" {
		cfg.Storage.Provider = StorageProviderStub
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.TicketPrefix == "" {
		cfg.Storage.TicketPrefix = "tickets"
	}

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}

	// Signing secrets only get a fallback outside production
	if cfg.App.Env != "production" {
		if cfg.Rappi.TokenSecret == "" {
			cfg.Rappi.TokenSecret = devRappiSecret
		}
		if cfg.Dashboard.SessionSecret == "" {
			cfg.Dashboard.SessionSecret = devDashboardSecret
		}
	}
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Rappi.TokenSecret == "" {
		return fmt.Errorf("rappi.token_secret is required")
	}
	if c.Rappi.TokenExpiry < 0 {
		return fmt.Errorf("rappi.token_expiry must be positive")
	}
	if c.Dashboard.SessionSecret == "" {
		return fmt.Errorf("dashboard.session_secret is required")
	}

	switch c.Email.Provider {
	case EmailProviderLog:
	case EmailProviderResend:
		if c.Email.ResendAPIKey == "" {
			return fmt.Errorf("email.resend_api_key is required for the resend provider")
		}
	case EmailProviderSMTP:
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("email.smtp_host is required for the smtp provider")
		}
		switch c.Email.SMTPTLS {
		case "ssl", "starttls", "none":
		default:
			return fmt.Errorf("email.smtp_tls must be one of ssl, starttls, none; got %q", c.Email.SMTPTLS)
		}
	default:
		return fmt.Errorf("email.provider must be one of resend, smtp, log; got %q", c.Email.Provider)
	}

	switch c.Storage.Provider {
	case StorageProviderStub:
	case StorageProviderS3:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for the s3 provider")
		}
	default:
		return fmt.Errorf("storage.provider must be s3 or stub; got %q", c.Storage.Provider)
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	if c.App.Env == "production" {
		if len(c.Rappi.TokenSecret) < 32 || c.Rappi.TokenSecret == devRappiSecret {
			return fmt.Errorf("rappi.token_secret must be at least 32 characters in production")
		}
		if len(c.Dashboard.SessionSecret) < 32 || c.Dashboard.SessionSecret == devDashboardSecret {
			return fmt.Errorf("dashboard.session_secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		if c.Email.Provider == EmailProviderLog {
			return fmt.Errorf("email.provider cannot be 'log' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("http.cors_allow_origins cannot be '*' in production")
			}
		}
	}

	return nil
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
