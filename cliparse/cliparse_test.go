// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("ADMIN_KEY", "organizer-key")
	t.Setenv("SESSION_SECRET", "a-long-session-secret")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("DEFAULT_FINALISTS", "8")
	t.Setenv("SIGNIN_RPS", "0.5")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h session ttl, got %s", cfg.SessionTTL)
	}
	if cfg.DefaultFinalists != 8 {
		t.Errorf("expected 8 finalists, got %d", cfg.DefaultFinalists)
	}
	if cfg.SignInBurst() != 1 {
		t.Errorf("expected burst floor of 1, got %d", cfg.SignInBurst())
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("expected default 12h ttl, got %s", cfg.SessionTTL)
	}
	if cfg.DefaultFinalists != 5 {
		t.Errorf("expected default 5 finalists, got %d", cfg.DefaultFinalists)
	}
	if cfg.SignInRPS != 5 || cfg.SignInBurst() != 10 {
		t.Errorf("expected 5 rps burst 10, got %v burst %d", cfg.SignInRPS, cfg.SignInBurst())
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{
		"-p", "8080",
		"-d", "postgres://cli",
		"-admin-key", "cli-key",
		"-session-secret", "cli-session-secret",
		"-finalists", "0",
	})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://cli" {
		t.Errorf("CLI should override env: got %s", cfg.DatabaseURL)
	}
	if cfg.AdminKey != "cli-key" {
		t.Errorf("CLI should override env: got %s", cfg.AdminKey)
	}
	if cfg.DefaultFinalists != 0 {
		t.Errorf("explicit zero finalists should be kept, got %d", cfg.DefaultFinalists)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{
			name: "missing database url",
			env:  map[string]string{"DATABASE_URL": ""},
		},
		{
			name: "missing admin key",
			env:  map[string]string{"ADMIN_KEY": ""},
		},
		{
			name: "missing session secret",
			env:  map[string]string{"SESSION_SECRET": ""},
		},
		{
			name: "short session secret",
			env:  map[string]string{"SESSION_SECRET": "short"},
		},
		{
			name: "bad port env",
			env:  map[string]string{"PORT": "eighty"},
		},
		{
			name: "unknown database type",
			args: []string{"-t", "mysql"},
		},
		{
			name: "port out of range",
			args: []string{"-p", "70000"},
		},
		{
			name: "bad session ttl",
			env:  map[string]string{"SESSION_TTL": "forever"},
		},
		{
			name: "unknown flag",
			args: []string{"-x"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tc.args); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func TestMain(m *testing.M) {
	for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "ADMIN_KEY", "SESSION_SECRET", "SESSION_TTL", "DEFAULT_FINALISTS", "SIGNIN_RPS"} {
		os.Unsetenv(k)
	}
	os.Exit(m.Run())
}
