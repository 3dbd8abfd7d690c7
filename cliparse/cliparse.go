package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-rate/auth"
)

// Sample source strategies
const (
	StrategyRemote = "remote"
	StrategyLocal  = "local"
)

const (
	DefaultTimeout = 15 * time.Second
	DefaultLogFile = "quickly-rate.log"
	DefaultCommand = "rate"
)

type Config struct {
	ServerURL string
	ProjectID string
	Strategy  string
	Timeout   time.Duration
	Seed      int64
	LogFile   string
	Debug     bool

	AdminSecret string
	AdminToken  string

	DatabaseURL  string
	DatabaseType string

	Command string
	Args    []string
}

// LoadEnvFile loads a .env file into the environment if one exists.
// Variables already set in the environment win.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// ParseFlags validates flags and fills in environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var studyURL string
	var timeout string

	fs := flag.NewFlagSet("quickly-rate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Study selection (can be CLI args or env)
	fs.StringVar(&studyURL, "u", "", "Study URL (http://host/#project_id)")
	fs.StringVar(&cfg.ServerURL, "s", "", "Service base URL")
	fs.StringVar(&cfg.ProjectID, "project", "", "Project id")
	fs.StringVar(&cfg.Strategy, "strategy", "", "Sample source: remote or local")
	fs.StringVar(&timeout, "timeout", "", "Per-request timeout, e.g. 15s")
	fs.Int64Var(&cfg.Seed, "seed", 0, "Random seed (0 = time based)")
	fs.StringVar(&cfg.LogFile, "log", "", "Log file path")
	fs.BoolVar(&cfg.Debug, "debug", false, "Debug logging")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminSecret, "admin-secret", "", "Service admin secret (prefer env)")
	fs.StringVar(&cfg.AdminToken, "admin-token", "", "Project admin token (prefer env)")

	// Export target
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Export database URL or file")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Export database type (sqlite or postgres)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if studyURL == "" {
		studyURL = os.Getenv("STUDY_URL")
	}
	if studyURL != "" {
		server, project, err := auth.ParseStudyURL(studyURL)
		if err != nil {
			return Config{}, err
		}
		if cfg.ServerURL == "" {
			cfg.ServerURL = server
		}
		if cfg.ProjectID == "" {
			cfg.ProjectID = project
		}
	}

	// Fall back to environment variables
	if cfg.ServerURL == "" {
		cfg.ServerURL = os.Getenv("SERVER_URL")
	}
	if cfg.ServerURL == "" {
		return Config{}, errors.New("server URL required (use -u, -s, STUDY_URL or SERVER_URL env)")
	}

	if cfg.ProjectID == "" {
		cfg.ProjectID = os.Getenv("PROJECT_ID")
	}
	cfg.ProjectID = auth.NormalizeProjectID(cfg.ProjectID)

	if cfg.Strategy == "" {
		cfg.Strategy = os.Getenv("SAMPLE_STRATEGY")
		if cfg.Strategy == "" {
			cfg.Strategy = StrategyRemote
		}
	}
	if cfg.Strategy != StrategyRemote && cfg.Strategy != StrategyLocal {
		return Config{}, fmt.Errorf("unknown strategy %q (want remote or local)", cfg.Strategy)
	}

	if timeout == "" {
		timeout = os.Getenv("REQUEST_TIMEOUT")
	}
	cfg.Timeout = DefaultTimeout
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return Config{}, errors.New("invalid request timeout")
		}
		cfg.Timeout = d
	}

	if cfg.Seed == 0 {
		if seedStr := os.Getenv("RATE_SEED"); seedStr != "" {
			seed, err := strconv.ParseInt(seedStr, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid RATE_SEED env variable")
			}
			cfg.Seed = seed
		}
	}

	if cfg.LogFile == "" {
		cfg.LogFile = os.Getenv("LOG_FILE")
		if cfg.LogFile == "" {
			cfg.LogFile = DefaultLogFile
		}
	}
	if !cfg.Debug {
		cfg.Debug = os.Getenv("DEBUG") == "true"
	}

	if cfg.AdminSecret == "" {
		cfg.AdminSecret = os.Getenv("ADMIN_SECRET")
	}
	if cfg.AdminToken == "" {
		cfg.AdminToken = os.Getenv("PROJECT_ADMIN_TOKEN")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "quickly-rate.db"
		}
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unknown database type %q (want sqlite or postgres)", cfg.DatabaseType)
	}

	cfg.Command = DefaultCommand
	if rest := fs.Args(); len(rest) > 0 {
		cfg.Command = rest[0]
		cfg.Args = rest[1:]
	}

	return cfg, nil
}
