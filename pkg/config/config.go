package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-algoviz/pkg/api/middleware"
	"github.com/dd0wney/cluso-algoviz/pkg/assistant"
	"github.com/dd0wney/cluso-algoviz/pkg/logging"
	"github.com/dd0wney/cluso-algoviz/pkg/player"
	"github.com/dd0wney/cluso-algoviz/pkg/session"
	"github.com/dd0wney/cluso-algoviz/pkg/validation"
	"github.com/dd0wney/cluso-algoviz/pkg/visualization"
)

// Config is the complete process configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Sessions  SessionsConfig  `yaml:"sessions"`
	Player    PlayerConfig    `yaml:"player"`
	Log       LogConfig       `yaml:"log"`
	Assistant AssistantConfig `yaml:"assistant"`
	Layout    LayoutConfig    `yaml:"layout"`
}

// ServerConfig configures the HTTP shell.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	RateLimit       int           `yaml:"rate_limit"`      // requests per second per client, 0 disables
	TrustedProxies  string        `yaml:"trusted_proxies"` // comma separated IPs or CIDRs whose forwarding headers are honored
}

// SessionsConfig bounds the live sessions.
type SessionsConfig struct {
	Max         int           `yaml:"max"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// PlayerConfig sets the initial speed slider position.
type PlayerConfig struct {
	Speed int `yaml:"speed"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AssistantConfig configures the question answering tiers.
type AssistantConfig struct {
	Enabled      bool          `yaml:"enabled"`
	BaseURL      string        `yaml:"base_url"`
	Model        string        `yaml:"model"`
	APIKey       string        `yaml:"api_key"`
	Timeout      time.Duration `yaml:"timeout"`
	SystemPrompt string        `yaml:"system_prompt"`
	MaxTokens    int           `yaml:"max_tokens"`
	Temperature  float32       `yaml:"temperature"`
}

// LayoutConfig sets the canvas used for graph, tree and heap layouts.
type LayoutConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Iterations int     `yaml:"iterations"`
	Padding    float64 `yaml:"padding"`
}

// Default returns the built-in configuration.
func Default() *Config {
	ac := assistant.DefaultConfig()
	lc := visualization.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Sessions: SessionsConfig{Max: 1000, IdleTimeout: 30 * time.Minute},
		Player:   PlayerConfig{Speed: player.DefaultSpeed},
		Log:      LogConfig{Level: "info", Format: string(logging.FormatJSON)},
		Assistant: AssistantConfig{
			BaseURL:      ac.BaseURL,
			Model:        ac.Model,
			Timeout:      ac.Timeout,
			SystemPrompt: ac.SystemPrompt,
			MaxTokens:    ac.MaxTokens,
			Temperature:  ac.Temperature,
		},
		Layout: LayoutConfig{Width: lc.Width, Height: lc.Height, Iterations: lc.Iterations, Padding: lc.Padding},
	}
}

// Load reads path (when non-empty) over the defaults, then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ALGOVIZ_* variables and LOG_LEVEL /
// LOG_FORMAT. An assistant API key in the environment enables the remote
// tier.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	str("ALGOVIZ_ADDR", &c.Server.Addr)
	if v, ok := lookup("ALGOVIZ_CORS_ORIGINS"); ok && v != "" {
		c.Server.CORSOrigins = splitAndTrim(v)
	}
	str("ALGOVIZ_TRUSTED_PROXIES", &c.Server.TrustedProxies)
	num("ALGOVIZ_MAX_SESSIONS", &c.Sessions.Max)
	num("ALGOVIZ_SPEED", &c.Player.Speed)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("ALGOVIZ_ASSISTANT_BASE_URL", &c.Assistant.BaseURL)
	str("ALGOVIZ_ASSISTANT_MODEL", &c.Assistant.Model)
	if v, ok := lookup("ALGOVIZ_ASSISTANT_API_KEY"); ok && v != "" {
		c.Assistant.APIKey = strings.TrimSpace(v)
		c.Assistant.Enabled = true
	}
	if v, ok := lookup("ALGOVIZ_ASSISTANT_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Assistant.Enabled = b
		}
	}
}

func (c *Config) applyDefaults() {
	d := Default()
	c.Server.Addr = validation.DefaultOr(c.Server.Addr, d.Server.Addr)
	c.Server.ReadTimeout = validation.DefaultOrDuration(c.Server.ReadTimeout, d.Server.ReadTimeout)
	c.Server.WriteTimeout = validation.DefaultOrDuration(c.Server.WriteTimeout, d.Server.WriteTimeout)
	c.Server.ShutdownTimeout = validation.DefaultOrDuration(c.Server.ShutdownTimeout, d.Server.ShutdownTimeout)
	c.Server.MaxBodyBytes = validation.DefaultOr(c.Server.MaxBodyBytes, d.Server.MaxBodyBytes)
	c.Sessions.IdleTimeout = validation.DefaultOrDuration(c.Sessions.IdleTimeout, d.Sessions.IdleTimeout)
	c.Log.Level = validation.DefaultOr(c.Log.Level, d.Log.Level)
	c.Log.Format = validation.DefaultOr(c.Log.Format, d.Log.Format)
	c.Assistant.Model = validation.DefaultOr(c.Assistant.Model, d.Assistant.Model)
	c.Assistant.BaseURL = validation.DefaultOr(c.Assistant.BaseURL, d.Assistant.BaseURL)
	c.Assistant.Timeout = validation.DefaultOrDuration(c.Assistant.Timeout, d.Assistant.Timeout)
	c.Assistant.SystemPrompt = validation.DefaultOr(c.Assistant.SystemPrompt, d.Assistant.SystemPrompt)
	c.Assistant.MaxTokens = validation.DefaultOrInt(c.Assistant.MaxTokens, d.Assistant.MaxTokens)
	c.Layout.Iterations = validation.DefaultOrInt(c.Layout.Iterations, d.Layout.Iterations)
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	cv := validation.NewConfigValidator("config")
	cv.Required("server.addr", c.Server.Addr).
		MinDuration("server.read_timeout", c.Server.ReadTimeout, time.Second).
		MinDuration("server.write_timeout", c.Server.WriteTimeout, time.Second).
		Positive("server.max_body_bytes", int(min(c.Server.MaxBodyBytes, 1<<31-1))).
		RangeInt("server.rate_limit", c.Server.RateLimit, 0, 10000).
		RangeInt("sessions.max", c.Sessions.Max, 0, 100000).
		RangeInt("player.speed", c.Player.Speed, player.MinSpeed, player.MaxSpeed).
		OneOf("log.level", strings.ToLower(c.Log.Level), []string{"debug", "info", "warn", "error"}).
		OneOf("log.format", c.Log.Format, []string{string(logging.FormatJSON), string(logging.FormatConsole)}).
		PositiveFloat("layout.width", c.Layout.Width).
		PositiveFloat("layout.height", c.Layout.Height)
	cv.Custom("layout.padding", func() error {
		if c.Layout.Padding < 0 || 2*c.Layout.Padding >= min(c.Layout.Width, c.Layout.Height) {
			return fmt.Errorf("padding %g does not fit a %gx%g canvas", c.Layout.Padding, c.Layout.Width, c.Layout.Height)
		}
		return nil
	})
	cv.Custom("server.trusted_proxies", func() error {
		_, err := c.TrustedProxies()
		return err
	})
	cv.When(c.Assistant.Enabled, func(cv *validation.ConfigValidator) {
		cv.URL("assistant.base_url", c.Assistant.BaseURL).
			Required("assistant.model", c.Assistant.Model).
			Required("assistant.api_key", c.Assistant.APIKey).
			RangeDuration("assistant.timeout", c.Assistant.Timeout, time.Second, 5*time.Minute).
			Positive("assistant.max_tokens", c.Assistant.MaxTokens)
	})
	return cv.Validate()
}

// AssistantSettings converts the section for assistant.New.
func (c *Config) AssistantSettings() assistant.Config {
	a := c.Assistant
	return assistant.Config{
		Enabled:      a.Enabled,
		BaseURL:      a.BaseURL,
		Model:        a.Model,
		APIKey:       a.APIKey,
		Timeout:      a.Timeout,
		SystemPrompt: a.SystemPrompt,
		MaxTokens:    a.MaxTokens,
		Temperature:  a.Temperature,
	}
}

// LayoutSettings converts the section for the visualization package.
func (c *Config) LayoutSettings() *visualization.LayoutConfig {
	return &visualization.LayoutConfig{
		Width:      c.Layout.Width,
		Height:     c.Layout.Height,
		Iterations: c.Layout.Iterations,
		Padding:    c.Layout.Padding,
	}
}

// ManagerSettings converts the sessions section for session.NewManager.
func (c *Config) ManagerSettings() session.ManagerConfig {
	return session.ManagerConfig{MaxSessions: c.Sessions.Max, IdleTimeout: c.Sessions.IdleTimeout}
}

// TrustedProxies parses the server's trusted proxy list.
func (c *Config) TrustedProxies() ([]*net.IPNet, error) {
	return middleware.ParseTrustedProxies(c.Server.TrustedProxies)
}

// Logger builds the process logger.
func (c *Config) Logger() logging.Logger {
	return logging.New(os.Stderr, logging.ParseLevel(c.Log.Level), logging.Format(c.Log.Format))
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
