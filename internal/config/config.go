// Package config loads the YAML configuration and environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// GitConfig locates the working copy and the push credentials.
type GitConfig struct {
	RepoPath    string `yaml:"repo_path"`
	Token       string `yaml:"token"`
	BaseBranch  string `yaml:"base_branch"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
	Push        bool   `yaml:"push"`
}

// LLMConfig configures the comment-text generator.
type LLMConfig struct {
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	BaseURL        string  `yaml:"base_url"`
	Temperature    float32 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	Workers        int     `yaml:"workers"`
}

// ProcessingConfig bounds what a run touches.
type ProcessingConfig struct {
	ExcludePatterns    []string `yaml:"exclude_patterns"`
	MaxFiles           int      `yaml:"max_files"`
	MaxElementsPerFile int      `yaml:"max_elements_per_file"`
}

// StateConfig locates the ledger and progress files.
type StateConfig struct {
	Dir string `yaml:"dir"`
}

// EmailConfig configures the SMTP report sink.
type EmailConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Host       string   `yaml:"host"`
	Port       int      `yaml:"port"`
	From       string   `yaml:"from"`
	Password   string   `yaml:"password"`
	Recipients []string `yaml:"recipients"`
	Subject    string   `yaml:"subject"`
}

// TeamsConfig configures the Teams webhook sink.
type TeamsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Config is the root of config.yaml.
type Config struct {
	Git        GitConfig        `yaml:"git"`
	LLM        LLMConfig        `yaml:"llm"`
	Processing ProcessingConfig `yaml:"processing"`
	State      StateConfig      `yaml:"state"`
	Email      EmailConfig      `yaml:"email"`
	Teams      TeamsConfig      `yaml:"teams"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Load reads the config file, applies .env and environment overrides, and
// fills defaults. Secrets are taken from GIT_TOKEN and OPENAI_API_KEY when
// set, so config files can be committed without them.
func Load(path string) (*Config, error) {
	// A missing .env is fine; it only exists in developer setups.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if token := os.Getenv("GIT_TOKEN"); token != "" {
		cfg.Git.Token = token
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Git.RepoPath == "" {
		c.Git.RepoPath = "."
	}
	if c.Git.BaseBranch == "" {
		c.Git.BaseBranch = "main"
	}
	if c.Git.AuthorName == "" {
		c.Git.AuthorName = "javadoc-ai"
	}
	if c.Git.AuthorEmail == "" {
		c.Git.AuthorEmail = "javadoc-ai@localhost"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1000
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 60
	}
	if c.LLM.Workers <= 0 {
		c.LLM.Workers = 4
	}
	if c.Processing.ExcludePatterns == nil {
		c.Processing.ExcludePatterns = []string{"src/test/**", "*Test.java"}
	}
	if c.State.Dir == "" {
		c.State.Dir = ".javadoc-ai"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
