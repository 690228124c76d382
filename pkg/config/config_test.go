package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EnvOverridesYAML(t *testing.T) {
	// Create a temp directory with a config.yaml
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
env: "test"
database:
  host: "db.example.com"
  port: 5432
  user: "testuser"
  database: "testdb"
labeling:
  fetch_page_size: 50
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Change to temp directory so Load() finds config.yaml
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})

	os.Unsetenv("PGHOST")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PGUSER", "envuser")

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("expected Env=production (from env), got %s", cfg.Env)
	}
	if cfg.Database.User != "envuser" {
		t.Errorf("expected Database.User=envuser (from env), got %s", cfg.Database.User)
	}
	if cfg.Database.Host != "db.example.com" {
		t.Errorf("expected Database.Host=db.example.com (from yaml), got %s", cfg.Database.Host)
	}
	if cfg.Labeling.FetchPageSize != 50 {
		t.Errorf("expected Labeling.FetchPageSize=50 (from yaml), got %d", cfg.Labeling.FetchPageSize)
	}
	if cfg.Version != "test-version" {
		t.Errorf("expected Version=test-version, got %s", cfg.Version)
	}
}

func TestLoad_DefaultsWithoutYAML(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})

	for _, key := range []string{"ENVIRONMENT", "PGHOST", "PGUSER", "GEMINI_MODEL",
		"LABELING_FETCH_PAGE_SIZE", "LABELING_WRITE_BATCH_SIZE"} {
		os.Unsetenv(key)
	}

	cfg, err := Load("dev")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "local" {
		t.Errorf("expected default Env=local, got %s", cfg.Env)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("expected default Database.Host=localhost, got %s", cfg.Database.Host)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash-lite" {
		t.Errorf("expected default Gemini.Model=gemini-2.5-flash-lite, got %s", cfg.Gemini.Model)
	}
	if cfg.Labeling.FetchPageSize != 100 {
		t.Errorf("expected default FetchPageSize=100, got %d", cfg.Labeling.FetchPageSize)
	}
	if cfg.Labeling.WriteBatchSize != 20 {
		t.Errorf("expected default WriteBatchSize=20, got %d", cfg.Labeling.WriteBatchSize)
	}
	if cfg.Labeling.InputTokenBudget != 1000000 {
		t.Errorf("expected default InputTokenBudget=1000000, got %d", cfg.Labeling.InputTokenBudget)
	}
}

func TestDatabaseConfig_URL(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "u",
		Password: "p",
		Database: "d",
		SSLMode:  "disable",
	}
	expected := "postgres://u:p@localhost:5432/d?sslmode=disable"
	if got := cfg.URL(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestSQLServerConfig_URL(t *testing.T) {
	cfg := SQLServerConfig{
		Host:     "localhost",
		Port:     1433,
		User:     "sa",
		Password: "p",
		Database: "d",
		Encrypt:  false,
	}
	expected := "sqlserver://sa:p@localhost:1433?database=d&encrypt=disable"
	if got := cfg.URL(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
