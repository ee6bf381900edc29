// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for OrgHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: ORGHUB_MONGO_URI, ORGHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "orghub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "orghub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks"},

	// Email/SMTP configuration (email notification channel)
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@orghub.local", Desc: "From email address"},
	{Name: "mail_from_name", Default: "OrgHub", Desc: "From display name"},

	// SMS gateway (SMS notification channel; blank disables delivery)
	{Name: "sms_gateway_url", Default: "", Desc: "HTTP SMS gateway endpoint"},
	{Name: "sms_token", Default: "", Desc: "Bearer token for the SMS gateway"},

	// Telegram (Telegram notification channel; blank disables delivery)
	{Name: "telegram_bot_token", Default: "", Desc: "Telegram bot API token"},

	// NATS message bus
	{Name: "nats_url", Default: "nats://localhost:4222", Desc: "NATS server URL (ignored when nats_embedded is true)"},
	{Name: "nats_embedded", Default: true, Desc: "Run an embedded nats-server instead of dialing an external one"},
	{Name: "nats_port", Default: -1, Desc: "Embedded nats-server port (-1 picks a free port)"},

	// Dashboard notification retention
	{Name: "retention_interval", Default: "1h", Desc: "How often the notification retention sweep runs"},
	{Name: "retention_max_age", Default: "720h", Desc: "Read notifications older than this are purged"},

	// API tokens for non-browser clients
	{Name: "api_token_secret", Default: "dev-only-token-secret-change-me", Desc: "HMAC secret for API bearer tokens"},
	{Name: "api_token_ttl", Default: "24h", Desc: "API bearer token lifetime"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, ORGHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ORGHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		BaseURL: appValues.String("base_url"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		SMSGatewayURL: appValues.String("sms_gateway_url"),
		SMSToken:      appValues.String("sms_token"),

		TelegramBotToken: appValues.String("telegram_bot_token"),

		NATSURL:      appValues.String("nats_url"),
		NATSEmbedded: appValues.Bool("nats_embedded"),
		NATSPort:     appValues.Int("nats_port"),

		RetentionInterval: appValues.Duration("retention_interval", time.Hour),
		RetentionMaxAge:   appValues.Duration("retention_max_age", 30*24*time.Hour),

		APITokenSecret: appValues.String("api_token_secret"),
		APITokenTTL:    appValues.Duration("api_token_ttl", 24*time.Hour),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters")
	}

	if !appCfg.NATSEmbedded && appCfg.NATSURL == "" {
		return fmt.Errorf("nats_url is required when nats_embedded is false")
	}

	if appCfg.RetentionInterval <= 0 || appCfg.RetentionMaxAge <= 0 {
		return fmt.Errorf("retention_interval and retention_max_age must be positive")
	}

	// Google login is optional, but a half-configured pair is a mistake.
	if (appCfg.GoogleClientID == "") != (appCfg.GoogleClientSecret == "") {
		return fmt.Errorf("google_client_id and google_client_secret must be set together")
	}

	return nil
}
