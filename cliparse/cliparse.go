package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Supported values for DatabaseType
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	OrganizerID   string
	CallerKeySalt string
	RosterPath    string

	// ShowOrganizerKey prints the organizer's caller key to stdout at startup
	ShowOrganizerKey bool
}

// ParseFlags reads flags first, then the environment (including an optional
// .env file) for anything left unset.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("ballot-box", flag.ContinueOnError)

	fs.StringVar(&envFile, "env", ".env", "Optional dotenv file")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Ballot setup
	fs.StringVar(&cfg.OrganizerID, "organizer", "", "Organizer identity")
	fs.StringVar(&cfg.RosterPath, "roster", "", "YAML voter roster registered at startup")
	fs.BoolVar(&cfg.ShowOrganizerKey, "show-organizer-key", false, "Print the organizer caller key to stdout at startup")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CallerKeySalt, "key-salt", "", "Caller key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.OrganizerID == "" {
		cfg.OrganizerID = os.Getenv("ORGANIZER_ID")
	}
	if cfg.OrganizerID == "" {
		return Config{}, errors.New("organizer identity required (use -organizer or ORGANIZER_ID env)")
	}

	if cfg.RosterPath == "" {
		cfg.RosterPath = os.Getenv("VOTER_ROSTER")
	}

	// Secrets - MUST be provided
	if cfg.CallerKeySalt == "" {
		cfg.CallerKeySalt = os.Getenv("CALLER_KEY_SALT")
	}
	if cfg.CallerKeySalt == "" {
		return Config{}, errors.New("CALLER_KEY_SALT required")
	}

	return cfg, nil
}

// DriverName maps the configured database type to its database/sql driver.
func (c Config) DriverName() string {
	if c.DatabaseType == DatabasePostgres {
		return "postgres"
	}
	return "sqlite"
}
