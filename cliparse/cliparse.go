package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Port         int    `validate:"min=1,max=65535"`
	DatabaseURL  string `validate:"required"`
	DatabaseType string `validate:"oneof=sqlite postgres"`

	AdminKey      string        `validate:"required"`
	SessionSecret string        `validate:"required,min=16"`
	SessionTTL    time.Duration `validate:"gt=0"`

	DefaultFinalists int     `validate:"min=0"`
	SignInRPS        float64 `validate:"gt=0"`
}

var validate = validator.New()

// ParseFlags parses args, falls back to env variables and validates the result
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-judge", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Organizer admin key (prefer env)")
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Judge session signing secret (prefer env)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Judge session lifetime")

	// Judging
	fs.IntVar(&cfg.DefaultFinalists, "finalists", -1, "Default finalist count")
	fs.Float64Var(&cfg.SignInRPS, "signin-rps", 0, "Sign-in requests per second per client")

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
			cfg.DatabaseType = "sqlite"
		}
	}

	// Secrets - MUST be provided
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	if cfg.SessionTTL == 0 {
		if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = ttl
		} else {
			cfg.SessionTTL = 12 * time.Hour
		}
	}

	if cfg.DefaultFinalists < 0 {
		if nStr := os.Getenv("DEFAULT_FINALISTS"); nStr != "" {
			n, err := strconv.Atoi(nStr)
			if err != nil {
				return Config{}, errors.New("invalid DEFAULT_FINALISTS env variable")
			}
			cfg.DefaultFinalists = n
		} else {
			cfg.DefaultFinalists = 5
		}
	}

	if cfg.SignInRPS == 0 {
		if rpsStr := os.Getenv("SIGNIN_RPS"); rpsStr != "" {
			rps, err := strconv.ParseFloat(rpsStr, 64)
			if err != nil {
				return Config{}, errors.New("invalid SIGNIN_RPS env variable")
			}
			cfg.SignInRPS = rps
		} else {
			cfg.SignInRPS = 5
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SignInBurst is the limiter burst for sign-in requests
func (c Config) SignInBurst() int {
	burst := int(c.SignInRPS * 2)
	if burst < 1 {
		burst = 1
	}
	return burst
}
