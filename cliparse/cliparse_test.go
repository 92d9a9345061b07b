// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("ORGANIZER_ID", "organizer")
	os.Setenv("CALLER_KEY_SALT", "test-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.OrganizerID != "organizer" {
		t.Errorf("expected organizer from env, got %q", cfg.OrganizerID)
	}
	if cfg.DriverName() != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.DriverName())
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ORGANIZER_ID", "env-organizer")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-organizer", "cli-organizer", "-key-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.OrganizerID != "cli-organizer" {
		t.Errorf("CLI should override env: expected cli-organizer, got %q", cfg.OrganizerID)
	}
	if cfg.DatabaseType != DatabaseSQLite || cfg.DriverName() != "sqlite" {
		t.Errorf("expected sqlite default, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_Required(t *testing.T) {
	defer os.Clearenv()

	tests := []struct {
		name string
		args []string
	}{
		{"missing database", []string{"-organizer", "o", "-key-salt", "s"}},
		{"missing organizer", []string{"-d", "file:test.db", "-key-salt", "s"}},
		{"missing salt", []string{"-d", "file:test.db", "-organizer", "o"}},
		{"bad database type", []string{"-d", "x", "-t", "mysql", "-organizer", "o", "-key-salt", "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFlags_DotEnv(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	path := filepath.Join(t.TempDir(), "ballot.env")
	content := "DATABASE_URL=file:ballot.db\nORGANIZER_ID=dotenv-organizer\nCALLER_KEY_SALT=dotenv-salt\nVOTER_ROSTER=voters.yaml\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-env", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.OrganizerID != "dotenv-organizer" || cfg.CallerKeySalt != "dotenv-salt" {
		t.Errorf("dotenv values not applied: %+v", cfg)
	}
	if cfg.RosterPath != "voters.yaml" {
		t.Errorf("expected roster from dotenv, got %q", cfg.RosterPath)
	}
	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
}

func TestParseFlags_ShowOrganizerKey(t *testing.T) {
	defer os.Clearenv()
	os.Clearenv()

	base := []string{"-d", "file:test.db", "-organizer", "o", "-key-salt", "s"}

	cfg, err := ParseFlags(base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ShowOrganizerKey {
		t.Error("organizer key should stay hidden by default")
	}

	cfg, err = ParseFlags(append(base, "-show-organizer-key"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.ShowOrganizerKey {
		t.Error("expected -show-organizer-key to be honored")
	}
}
