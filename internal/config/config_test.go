package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestGetConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
database:
  user: www-data
  password: www-data
  db: awesome
`)

	cfg, err := GetConfig(path)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}

	db := cfg.Database
	if db.Driver != "mysql" || db.Host != "localhost" || db.Charset != "utf8" {
		t.Errorf("unexpected string defaults: %+v", db)
	}
	if db.MaxSize != 10 || db.MinSize != 1 {
		t.Errorf("unexpected pool bounds: max=%d min=%d", db.MaxSize, db.MinSize)
	}
	if !db.AutocommitEnabled() {
		t.Error("autocommit must default to true")
	}
	if cfg.Logger.Level != "info" || cfg.Logger.Target != "stdout" {
		t.Errorf("unexpected logger defaults: %+v", cfg.Logger)
	}
	if cfg.HTTP.ShutdownTimeout != 30*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.HTTP.ShutdownTimeout)
	}
}

func TestGetConfigKeepsExplicitFalse(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
database:
  autocommit: false
  maxsize: 3
`)

	cfg, err := GetConfig(path)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if cfg.Database.AutocommitEnabled() {
		t.Error("explicit autocommit=false was overwritten by default")
	}
	if cfg.Database.MaxSize != 3 {
		t.Errorf("maxsize = %d, want 3", cfg.Database.MaxSize)
	}
}

func TestGetConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
database:
  host: db.internal
  user: from-yaml
`)
	writeFile(t, dir, ".env", "DB_NAME=from-dotenv\n")
	t.Setenv("DB_USER", "from-env")
	t.Setenv("DB_PORT", "3307")
	t.Cleanup(func() { os.Unsetenv("DB_NAME") })

	cfg, err := GetConfig(path)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if cfg.Database.User != "from-env" {
		t.Errorf("user = %q, want env override", cfg.Database.User)
	}
	if cfg.Database.Port != 3307 {
		t.Errorf("port = %d, want 3307", cfg.Database.Port)
	}
	if cfg.Database.DBName != "from-dotenv" {
		t.Errorf("db = %q, want value from .env", cfg.Database.DBName)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("host = %q, yaml value lost", cfg.Database.Host)
	}
}

func TestGetConfigValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
logger:
  target: file
`)
	if _, err := GetConfig(path); err == nil {
		t.Fatal("expected error for file target without filename")
	}

	path = writeFile(t, dir, "bounds.yml", `
database:
  maxsize: 2
  minsize: 5
`)
	if _, err := GetConfig(path); err == nil {
		t.Fatal("expected error for minsize > maxsize")
	}
}

func TestApplyEnvRejectsBadValue(t *testing.T) {
	t.Setenv("DB_MAXSIZE", "many")
	var cfg DatabaseConfig
	if err := ApplyEnv(&cfg); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyDefaultsOnlyFillsZeroFields(t *testing.T) {
	t.Setenv("DB_HOST", "from-env")
	off := false
	cfg := DatabaseConfig{Charset: "latin1", Autocommit: &off}

	if err := ApplyDefaults(&cfg); err != nil {
		t.Fatalf("ApplyDefaults failed: %v", err)
	}
	if cfg.Host != "localhost" {
		t.Errorf("host = %q, environment must be ignored", cfg.Host)
	}
	if cfg.Charset != "latin1" {
		t.Errorf("charset = %q, preset value overwritten", cfg.Charset)
	}
	if cfg.AutocommitEnabled() {
		t.Error("explicit autocommit=false overwritten by default")
	}
	if cfg.MaxSize != 10 || cfg.Port != 0 {
		t.Errorf("maxsize = %d, port = %d", cfg.MaxSize, cfg.Port)
	}
}

func TestApplyEnvKeepsFileValuesWhenUnset(t *testing.T) {
	os.Unsetenv("DB_CHARSET")
	t.Setenv("DB_TIMEOUT", "9")
	cfg := DatabaseConfig{Charset: "utf8mb4", Timeout: 2}

	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.Charset != "utf8mb4" {
		t.Errorf("charset = %q, default must not replace set value", cfg.Charset)
	}
	if cfg.Timeout != 9 {
		t.Errorf("timeout = %d, want env value", cfg.Timeout)
	}
	if cfg.SSLMode != "disable" {
		t.Errorf("sslmode = %q, want default", cfg.SSLMode)
	}
}
