package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds everything the process needs, loaded once at startup and
// passed down explicitly. There are no package-level mutable globals; the
// admin credentials and upload directories live here and nowhere else.
type Config struct {
	// Server
	BindAddr            string `env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port                string `env:"PORT" env-default:"8080"`
	ReadTimeoutSeconds  int    `env:"READ_TIMEOUT_SECONDS" env-default:"60"`
	WriteTimeoutSeconds int    `env:"WRITE_TIMEOUT_SECONDS" env-default:"60"`
	IdleTimeoutSeconds  int    `env:"IDLE_TIMEOUT_SECONDS" env-default:"120"`
	AcceptedOrigins     string `env:"ACCEPTED_ORIGINS" env-default:"*"`

	// Database
	DBType      string `env:"DB_TYPE" env-default:"sqlite"`
	SQLitePath  string `env:"SQLITE_PATH" env-default:"portfolio.db"`
	PostgresDSN string `env:"POSTGRES_DSN" env-default:""`

	// Admin authentication. A bcrypt hash is preferred; the plaintext
	// fallback exists for local development and is hashed at load time so
	// the rest of the process only ever sees the hash.
	AdminUsername     string `env:"ADMIN_USERNAME" env-default:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH" env-default:""`
	AdminPassword     string `env:"ADMIN_PASSWORD" env-default:""`
	SessionSecret     string `env:"SESSION_SECRET" env-default:"dev-secret-change-in-production"`

	// Uploads
	UploadDir      string `env:"UPLOAD_DIR" env-default:"static/images"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" env-default:"16777216"`

	// SeedDefaults inserts the default category set into an empty database.
	SeedDefaults bool `env:"SEED_DEFAULT_CATEGORIES" env-default:"false"`
}

// Load reads the configuration from the environment and normalizes it.
func Load() (Config, error) {
	var c Config
	if err := cleanenv.ReadEnv(&c); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	switch c.DBType {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported DB_TYPE %q (want sqlite or postgres)", c.DBType)
	}
	if c.DBType == "postgres" && c.PostgresDSN == "" {
		return Config{}, fmt.Errorf("POSTGRES_DSN is required when DB_TYPE=postgres")
	}

	if c.AdminPasswordHash == "" {
		if c.AdminPassword == "" {
			return Config{}, fmt.Errorf("set ADMIN_PASSWORD_HASH or ADMIN_PASSWORD")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(c.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return Config{}, fmt.Errorf("failed to hash admin password: %w", err)
		}
		c.AdminPasswordHash = string(hash)
	}
	c.AdminPassword = ""

	return c, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.BindAddr, c.Port)
}

// Origins returns the accepted CORS origins as a slice.
func (c Config) Origins() []string {
	parts := strings.Split(c.AcceptedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
