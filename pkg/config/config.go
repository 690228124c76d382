package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the labeling engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, API keys) must only come from environment variables.
type Config struct {
	Env     string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL, the default storage kind)
	Database DatabaseConfig `yaml:"database"`

	// SQLServer configuration (alternative storage kind)
	SQLServer SQLServerConfig `yaml:"sqlserver"`

	// Provider credentials and endpoints
	Gemini    GeminiConfig    `yaml:"gemini"`
	Anthropic AnthropicConfig `yaml:"anthropic"`

	// Labeling run defaults
	Labeling LabelingConfig `yaml:"labeling"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"reviewradar"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"reviewradar"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
}

// URL builds a connection URL for pgx.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// SQLServerConfig holds SQL Server configuration for the mssql storage kind.
type SQLServerConfig struct {
	Host     string `yaml:"host" env:"MSSQL_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"MSSQL_PORT" env-default:"1433"`
	User     string `yaml:"user" env:"MSSQL_USER" env-default:"sa"`
	Password string `yaml:"-" env:"MSSQL_PASSWORD"` // Secret - not in YAML
	Database string `yaml:"database" env:"MSSQL_DATABASE" env-default:"reviewradar"`
	Encrypt  bool   `yaml:"encrypt" env:"MSSQL_ENCRYPT" env-default:"true"`
}

// URL builds a connection URL for go-mssqldb.
func (c *SQLServerConfig) URL() string {
	encrypt := "true"
	if !c.Encrypt {
		encrypt = "disable"
	}
	return fmt.Sprintf("sqlserver://%s:%s@%s:%d?database=%s&encrypt=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, encrypt)
}

// GeminiConfig holds the Gemini endpoint and credentials.
// The engine talks to Gemini through its OpenAI-compatible endpoint.
type GeminiConfig struct {
	BaseURL string `yaml:"base_url" env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta/openai"`
	Model   string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash-lite"`
	APIKey  string `yaml:"-" env:"GEMINI_API_KEY"` // Secret - not in YAML
}

// AnthropicConfig holds Anthropic credentials.
type AnthropicConfig struct {
	Model  string `yaml:"model" env:"ANTHROPIC_MODEL" env-default:"claude-3-5-haiku-20241022"`
	APIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"` // Secret - not in YAML
}

// LabelingConfig holds defaults for labeling runs.
type LabelingConfig struct {
	FetchPageSize     int `yaml:"fetch_page_size" env:"LABELING_FETCH_PAGE_SIZE" env-default:"100"`
	WriteBatchSize    int `yaml:"write_batch_size" env:"LABELING_WRITE_BATCH_SIZE" env-default:"20"`
	InputTokenBudget  int `yaml:"input_token_budget" env:"LABELING_INPUT_TOKEN_BUDGET" env-default:"1000000"`
	OutputTokenBudget int `yaml:"output_token_budget" env:"LABELING_OUTPUT_TOKEN_BUDGET" env-default:"1000000"`
}

// Load reads configuration from config.yaml (if present) and environment variables.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	return cfg, nil
}
