// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, CORS, and request body size limits.
// AppConfig is where everything specific to OrgHub lives: the MongoDB
// connection, session keys, delivery-channel credentials, and the
// message bus setup.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: orghub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Base URL for OAuth callbacks and links in outbound email
	BaseURL string // e.g., "https://orghub.example.com" or "http://localhost:3000"

	// Email/SMTP configuration for the email notification channel
	MailSMTPHost string // SMTP server host (localhost for Mailpit, SES endpoint in prod)
	MailSMTPPort int    // SMTP server port (1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty disables auth)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	MailFromName string // From display name, also used as the site name in notification bodies

	// SMS gateway configuration for the SMS notification channel
	SMSGatewayURL string // HTTP gateway endpoint; empty disables SMS delivery
	SMSToken      string // Bearer token for the gateway

	// Telegram bot configuration for the Telegram notification channel
	TelegramBotToken string // Bot API token; empty disables Telegram delivery

	// NATS message bus configuration
	NATSURL      string // External NATS server URL (ignored when embedded)
	NATSEmbedded bool   // Run an in-process nats-server instead of dialing out
	NATSPort     int    // Port for the embedded server (-1 picks a free port)

	// Dashboard notification retention
	RetentionInterval time.Duration // How often the retention sweep runs
	RetentionMaxAge   time.Duration // Read notifications older than this are purged

	// API token configuration (bearer tokens for non-browser clients)
	APITokenSecret string        // HMAC signing secret
	APITokenTTL    time.Duration // Token lifetime

	// Google OAuth configuration
	GoogleClientID     string // Google OAuth2 client ID (empty disables Google login)
	GoogleClientSecret string // Google OAuth2 client secret
}
