// Package config loads bot settings from defaults, an optional YAML file and the
// environment, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLoginURL     = "https://hermessapp.com/login"
	DefaultBirthdaysURL = "https://hermessapp.com/pacientescumple"
)

var ErrMissingSetting = errors.New("missing required setting")

type Config struct {
	Hermess HermessConfig `yaml:"hermess"`
	Webhook WebhookConfig `yaml:"webhook"`
	Browser BrowserConfig `yaml:"browser"`
	Email   EmailConfig   `yaml:"email"`
	AI      AIConfig      `yaml:"ai"`
	Archive ArchiveConfig `yaml:"archive"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

type HermessConfig struct {
	Email        string `yaml:"email"`
	Password     string `yaml:"password"`
	LoginURL     string `yaml:"login_url"`
	BirthdaysURL string `yaml:"birthdays_url"`
}

type WebhookConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type BrowserConfig struct {
	Bin               string        `yaml:"bin"`
	ControlURL        string        `yaml:"control_url"`
	Headless          bool          `yaml:"headless"`
	ViewportWidth     int           `yaml:"viewport_width"`
	ViewportHeight    int           `yaml:"viewport_height"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	SettleDelay       time.Duration `yaml:"settle_delay"`
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	SMTPUser   string `yaml:"smtp_user"`
	SMTPPass   string `yaml:"smtp_pass"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

// Enabled reports whether enough SMTP settings are present to send a digest.
func (e EmailConfig) Enabled() bool {
	return e.SMTPServer != "" && e.SMTPUser != "" && e.SMTPPass != "" && e.ToEmail != ""
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key"`
	Model        string `yaml:"model"`
}

type ArchiveConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Dir      string `yaml:"dir"`
	Timezone string `yaml:"timezone"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Hermess: HermessConfig{
			LoginURL:     DefaultLoginURL,
			BirthdaysURL: DefaultBirthdaysURL,
		},
		Webhook: WebhookConfig{
			Timeout: 30 * time.Second,
		},
		Browser: BrowserConfig{
			Headless:          true,
			ViewportWidth:     1920,
			ViewportHeight:    1080,
			NavigationTimeout: 10 * time.Second,
			SettleDelay:       3 * time.Second,
		},
		Email: EmailConfig{
			SMTPServer: "smtp.gmail.com",
			SMTPPort:   587,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = cfg.Email.SMTPUser
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Hermess.Email = getEnv("HERMESS_EMAIL", c.Hermess.Email)
	c.Hermess.Password = getEnv("HERMESS_PASSWORD", c.Hermess.Password)
	c.Hermess.LoginURL = getEnv("HERMESS_LOGIN_URL", c.Hermess.LoginURL)
	c.Hermess.BirthdaysURL = getEnv("HERMESS_BIRTHDAYS_URL", c.Hermess.BirthdaysURL)

	// n8n_workflow is the variable name older deployments used.
	c.Webhook.URL = getEnv("N8N_WEBHOOK_URL", getEnv("n8n_workflow", c.Webhook.URL))
	c.Webhook.Timeout = getEnvDuration("WEBHOOK_TIMEOUT", c.Webhook.Timeout)

	c.Browser.Bin = getEnv("CHROME_BIN", c.Browser.Bin)
	c.Browser.ControlURL = getEnv("CHROME_CONTROL_URL", c.Browser.ControlURL)
	c.Browser.Headless = getEnvBool("BROWSER_HEADLESS", c.Browser.Headless)

	c.Email.SMTPServer = getEnv("SMTP_SERVER", c.Email.SMTPServer)
	c.Email.SMTPPort = getEnvInt("SMTP_PORT", c.Email.SMTPPort)
	c.Email.SMTPUser = getEnv("SMTP_USER", c.Email.SMTPUser)
	c.Email.SMTPPass = getEnv("SMTP_PASS", c.Email.SMTPPass)
	c.Email.FromEmail = getEnv("SMTP_FROM", c.Email.FromEmail)
	c.Email.ToEmail = getEnv("SMTP_TO", c.Email.ToEmail)

	c.AI.GeminiAPIKey = getEnv("GEMINI_API_KEY", c.AI.GeminiAPIKey)
	c.AI.Model = getEnv("GEMINI_MODEL", c.AI.Model)

	if dir := os.Getenv("ARCHIVE_DIR"); dir != "" {
		c.Archive.Dir = dir
		c.Archive.Enabled = true
	}
	c.Archive.Timezone = getEnv("ARCHIVE_TIMEZONE", c.Archive.Timezone)

	c.Metrics.Textfile = getEnv("METRICS_TEXTFILE", c.Metrics.Textfile)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
}

// ValidateRun checks the settings a full browser run needs.
func (c *Config) ValidateRun() error {
	if c.Hermess.Email == "" || c.Hermess.Password == "" {
		return fmt.Errorf("%w: HERMESS_EMAIL and HERMESS_PASSWORD must be set", ErrMissingSetting)
	}
	return c.ValidateDelivery()
}

// ValidateDelivery checks the settings needed to POST a payload.
func (c *Config) ValidateDelivery() error {
	if c.Webhook.URL == "" {
		return fmt.Errorf("%w: N8N_WEBHOOK_URL or n8n_workflow must be set", ErrMissingSetting)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
