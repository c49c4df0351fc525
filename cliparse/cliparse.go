package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	JWTSecret    string

	// Email domains considered compliant for license subjects and
	// valid as staff usernames.
	AllowedDomains []string

	// Refresh job settings.
	SchoolsCSVPath string
	SnapshotPath   string
	SyncInterval   time.Duration
	CollectorURL   string
}

// ParseFlags validates flags and fills defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var domains string
	var interval string

	fs := flag.NewFlagSet("saf-server", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")

	fs.StringVar(&domains, "domains", "", "Comma-separated allowed email domains")
	fs.StringVar(&cfg.SchoolsCSVPath, "schools-csv", "", "Path to the schools reference CSV")
	fs.StringVar(&cfg.SnapshotPath, "snapshot", "", "Path for the latest allocation snapshot")
	fs.StringVar(&interval, "sync-interval", "", "Refresh job interval (e.g. 24h)")
	fs.StringVar(&cfg.CollectorURL, "collector-url", "", "Base URL of the external scraper service")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
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
			cfg.Port = 3340 // default
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
			cfg.DatabaseType = "postgres"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if domains == "" {
		domains = os.Getenv("ALLOWED_DOMAINS")
	}
	if domains == "" {
		// Organizational domains of the franchise network.
		domains = "maplebear.com.br,mbcentral.com.br,seb.com.br,sebsa.com.br"
	}
	for _, d := range strings.Split(domains, ",") {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			cfg.AllowedDomains = append(cfg.AllowedDomains, d)
		}
	}

	if cfg.SchoolsCSVPath == "" {
		cfg.SchoolsCSVPath = os.Getenv("SCHOOLS_CSV_PATH")
	}
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = os.Getenv("SNAPSHOT_PATH")
		if cfg.SnapshotPath == "" {
			cfg.SnapshotPath = "canva_data_integrated_latest.json"
		}
	}

	if interval == "" {
		interval = os.Getenv("SYNC_INTERVAL")
	}
	if interval == "" {
		cfg.SyncInterval = 24 * time.Hour
	} else {
		d, err := time.ParseDuration(interval)
		if err != nil || d <= 0 {
			return Config{}, errors.New("invalid SYNC_INTERVAL (expect a Go duration like 24h)")
		}
		cfg.SyncInterval = d
	}

	if cfg.CollectorURL == "" {
		cfg.CollectorURL = os.Getenv("COLLECTOR_URL")
	}

	return cfg, nil
}
