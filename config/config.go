package config

import (
	"time"

	"mavryck/utils"
)

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	// CORSOrigin is the front-end origin allowed to call the API with
	// credentials. Wildcards do not work with credentialed requests.
	CORSOrigin string
}

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
}

type RedisConfig struct {
	// URL is optional; without it session state falls back to an
	// in-memory store and does not survive restarts.
	URL string
}

// AuthConfig carries the single static admin principal and the
// throttling/session policy. The admin secret is sourced from the
// environment at startup and must never be logged.
type AuthConfig struct {
	AdminEmail string
	// AdminPassword is the plaintext secret. Ignored when
	// AdminPasswordHash is set.
	AdminPassword string
	// AdminPasswordHash is an argon2id "salt$hash" string, preferred
	// over a plaintext secret.
	AdminPasswordHash string
	// AdminTOTPSecret enables a TOTP second factor when non-empty.
	AdminTOTPSecret string

	MaxLoginAttempts      int
	LockoutWindow         time.Duration
	SessionTimeout        time.Duration
	ActivityCheckInterval time.Duration
}

// RemoteConfig points at the GoTrue-style identity provider. The remote
// leg is advisory; the service runs fine with it disabled.
type RemoteConfig struct {
	Enabled bool
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            utils.GetEnvAsString("PORT", "8080"),
		ShutdownTimeout: utils.GetEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigin:      utils.GetEnvAsString("CORS_ORIGIN", "http://localhost:3000"),
	}
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "mavryck"),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		URL: utils.GetEnvAsString("REDIS_URL", ""),
	}
}

func LoadAuthConfig() AuthConfig {
	return AuthConfig{
		AdminEmail:            utils.GetEnvAsString("ADMIN_EMAIL", ""),
		AdminPassword:         utils.GetEnvAsString("ADMIN_PASSWORD", ""),
		AdminPasswordHash:     utils.GetEnvAsString("ADMIN_PASSWORD_HASH", ""),
		AdminTOTPSecret:       utils.GetEnvAsString("ADMIN_TOTP_SECRET", ""),
		MaxLoginAttempts:      utils.GetEnvAsInt("MAX_LOGIN_ATTEMPTS", 5),
		LockoutWindow:         utils.GetEnvAsDuration("LOCKOUT_WINDOW", 15*time.Minute),
		SessionTimeout:        utils.GetEnvAsDuration("SESSION_TIMEOUT", 30*time.Minute),
		ActivityCheckInterval: utils.GetEnvAsDuration("ACTIVITY_CHECK_INTERVAL", 60*time.Second),
	}
}

func LoadRemoteConfig() RemoteConfig {
	return RemoteConfig{
		Enabled: utils.GetEnvAsBool("REMOTE_AUTH_ENABLED", false),
		BaseURL: utils.GetEnvAsString("REMOTE_AUTH_URL", ""),
		APIKey:  utils.GetEnvAsString("REMOTE_AUTH_API_KEY", ""),
		Timeout: utils.GetEnvAsDuration("REMOTE_AUTH_TIMEOUT", 10*time.Second),
	}
}
