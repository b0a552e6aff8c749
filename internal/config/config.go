// Package config provides functionality for managing configuration
// options for the application using command-line flags, an optional
// JSON config file, and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"port"`

	// DatabaseDSN, when set, loads the login allow-list from
	// PostgreSQL instead of the CSV file.
	DatabaseDSN string `json:"database_dsn"`

	// AllowedUsersFile is the CSV allow-list of login phone numbers.
	AllowedUsersFile string `json:"allowed_users_file"`

	// RegistrationsFile is the registration store file.
	RegistrationsFile string `json:"registrations_file"`

	// NoticesFile is the announcement store file.
	NoticesFile string `json:"notices_file"`

	// GalleryDir is the directory holding gallery images.
	GalleryDir string `json:"gallery_dir"`

	// AdminPassword is the shared admin secret, compared verbatim.
	AdminPassword string `json:"admin_password"`

	// EventName is the event's display name.
	EventName string `json:"event_name"`

	// EventTime is the event start in RFC3339.
	EventTime string `json:"event_time"`

	// SessionTTLMinutes is the idle expiry for sessions.
	SessionTTLMinutes int `json:"session_ttl_minutes"`

	// LogLevel is the zap log level.
	LogLevel string `json:"log_level"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address for the allow-list (optional)")
	flag.StringVar(&options.AllowedUsersFile, "allowed", "allowed_users.csv", "allow-list CSV file")
	flag.StringVar(&options.RegistrationsFile, "registrations", "registrations.csv", "registration store file")
	flag.StringVar(&options.NoticesFile, "notices", "notices.csv", "announcement store file")
	flag.StringVar(&options.GalleryDir, "gallery", "gallery", "gallery image directory")
	flag.StringVar(&options.AdminPassword, "admin-password", "", "admin shared secret")
	flag.StringVar(&options.EventName, "event-name", "Annual Function", "event display name")
	flag.StringVar(&options.EventTime, "event-time", "2025-12-20T00:00:00Z", "event start (RFC3339)")
	flag.IntVar(&options.SessionTTLMinutes, "session-ttl", 120, "session idle expiry in minutes")
	flag.StringVar(&options.LogLevel, "log-level", "info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional config file, and
// environment variables to set configuration values. It returns a
// pointer to the Options struct containing the parsed values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if pw := os.Getenv("ADMIN_PASSWORD"); pw != "" {
		options.AdminPassword = pw
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		options.LogLevel = lvl
	}

	return options
}

// EventStart parses EventTime, falling back to the given default when
// unset or malformed.
func (o *Options) EventStart(fallback time.Time) time.Time {
	t, err := time.Parse(time.RFC3339, o.EventTime)
	if err != nil {
		return fallback
	}
	return t
}

// SessionTTL returns the session idle expiry as a duration.
func (o *Options) SessionTTL() time.Duration {
	if o.SessionTTLMinutes <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(o.SessionTTLMinutes) * time.Minute
}
