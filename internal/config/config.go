package config

import (
	"os"
	"strconv"
	"time"
)

// Auth contains configuration related to authentication and JWTs.
type Auth struct {
	AccessKey     string        // JWT signing key for access tokens
	RefreshKey    string        // JWT signing key for refresh tokens
	AccessKeyTTL  time.Duration // Time-to-live for access tokens
	RefreshKeyTTL time.Duration // Time-to-live for refresh tokens
}

// Mongo contains configuration for the MongoDB connection.
type Mongo struct {
	URL          string // MongoDB connection URI
	Database     string // Database holding the folders, users and photo bucket
	CABundlePath string // Path to a CA bundle for TLS connections. Empty means plain connection.
}

// Email contains configuration for share-notification emails.
type Email struct {
	NotificationsEnabled bool
	APIKey               string // Password / API key for the SMTP account
	Host                 string // SMTP host
	Port                 int    // SMTP port
	Address              string // The "From" email address
}

// HTTP contains configuration for the HTTP server.
type HTTP struct {
	Port          string // Address for the server to listen on
	URL           string // Public-facing URL, used to build photo locators
	SecureCookies bool   // Whether to set the "Secure" flag on cookies
	KeyPath       string // Path to SSL key file for HTTPS
	CertPath      string // Path to SSL certificate file for HTTPS
}

// Config is the top-level struct holding all application configuration.
type Config struct {
	Auth                 Auth
	Mongo                Mongo
	Email                Email
	HTTP                 HTTP
	CreateAccountBlocked bool // If true, disables new account creation
}

// Load reads configuration from environment variables and returns a populated
// Config struct. It uses helper functions to read specific types and provide
// default values.
func Load() (*Config, error) {
	emailPort, err := getenvInt("EMAIL_PORT", 587)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		CreateAccountBlocked: getenvBool("BLOCK_CREATE_ACCOUNT", false),

		Auth: Auth{
			AccessKey:     getenvStr("PASSWORD_ACCESS", ""),
			RefreshKey:    getenvStr("PASSWORD_REFRESH", ""),
			AccessKeyTTL:  20 * time.Minute,
			RefreshKeyTTL: 30 * 24 * time.Hour,
		},
		Mongo: Mongo{
			URL:          getenvStr("MONGODB_URL", "mongodb://localhost:27017"),
			Database:     getenvStr("MONGODB_DATABASE", "photodrive"),
			CABundlePath: getenvStr("MONGODB_CA_BUNDLE_PATH", ""),
		},
		Email: Email{
			NotificationsEnabled: getenvBool("EMAIL_NOTIFICATIONS", false),
			APIKey:               getenvStr("EMAIL_API_KEY", ""),
			Host:                 getenvStr("EMAIL_HOST", ""),
			Port:                 emailPort,
			Address:              getenvStr("EMAIL_ADDRESS", ""),
		},
		HTTP: HTTP{
			Port:          getenvStr("PORT", ":8080"),
			URL:           getenvStr("URL", "http://localhost:8080"),
			SecureCookies: getenvBool("SECURE_COOKIES", false),
			KeyPath:       getenvStr("HTTPS_KEY_PATH", ""),
			CertPath:      getenvStr("HTTPS_CRT_PATH", ""),
		},
	}
	return cfg, nil
}

// -------Helper Functions----------

// getenvStr retrieves a string environment variable or returns a default.
func getenvStr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getenvBool retrieves a boolean environment variable or returns a default value.
func getenvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getenvInt retrieves an integer environment variable or returns a default value.
func getenvInt(key string, fallback int) (int, error) {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i, nil
		} else {
			return 0, err
		}
	}
	return fallback, nil
}
