package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"lounge-inventory/peak"
)

// Config is the immutable runtime configuration. It is loaded once at
// startup from an optional YAML file plus environment variables; nothing
// mutates it afterwards.
type Config struct {
	PeakWindows   []WindowConfig     `yaml:"peak_windows"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// WindowConfig is one peak demand window in local 24h time, [start, end).
type WindowConfig struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// SchedulerConfig tunes the periodic evaluation driver.
type SchedulerConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	GraceSeconds    int `yaml:"grace_seconds"`
	MaxConcurrent   int `yaml:"max_concurrent"`
}

// NotificationConfig holds channel settings. Secrets come from the
// environment, never from the YAML file.
type NotificationConfig struct {
	TimeoutSeconds int            `yaml:"timeout_seconds"`
	Email          EmailConfig    `yaml:"email"`
	WhatsApp       WhatsAppConfig `yaml:"whatsapp"`
}

// EmailConfig configures the Gmail channel. An empty CredentialsFile,
// Sender or Warehouse leaves the channel unconfigured (skipped).
type EmailConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	Sender          string `yaml:"sender"`
	Warehouse       string `yaml:"warehouse"`
}

// WhatsAppConfig configures the Twilio WhatsApp channel. All fields come
// from the environment; empty credentials leave the channel unconfigured.
type WhatsAppConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
}

// Default returns the reference configuration: the three lounge peak
// windows, a 60s evaluation interval with a 30s late-fire grace window,
// and at most two overlapping sweeps.
func Default() Config {
	return Config{
		PeakWindows: []WindowConfig{
			{Start: 6, End: 9},   // morning rush
			{Start: 11, End: 14}, // midday peak
			{Start: 17, End: 21}, // evening departures
		},
		Scheduler: SchedulerConfig{
			IntervalSeconds: 60,
			GraceSeconds:    30,
			MaxConcurrent:   2,
		},
		Notifications: NotificationConfig{
			TimeoutSeconds: 10,
		},
	}
}

// Load builds the configuration from an optional YAML file at path, applies
// environment overrides, and validates the result. An empty path or a
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		c.Notifications.Email.CredentialsFile = v
	}
	if v := os.Getenv("EMAIL_SENDER"); v != "" {
		c.Notifications.Email.Sender = v
	}
	if v := os.Getenv("WAREHOUSE_EMAIL"); v != "" {
		c.Notifications.Email.Warehouse = v
	}

	c.Notifications.WhatsApp.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	c.Notifications.WhatsApp.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	c.Notifications.WhatsApp.To = os.Getenv("WHATSAPP_TO")
	c.Notifications.WhatsApp.From = os.Getenv("TWILIO_WHATSAPP_FROM")
	if c.Notifications.WhatsApp.From == "" {
		c.Notifications.WhatsApp.From = "whatsapp:+14155238886"
	}
}

func (c *Config) validate() error {
	// Window bounds are fully checked by peak.NewCalendar; doing it here
	// surfaces bad config at load time instead of at wiring time.
	if _, err := peak.NewCalendar(c.CalendarWindows()); err != nil {
		return fmt.Errorf("invalid peak_windows: %w", err)
	}
	if c.Scheduler.IntervalSeconds <= 0 {
		return fmt.Errorf("scheduler interval_seconds must be positive, got %d", c.Scheduler.IntervalSeconds)
	}
	if c.Scheduler.GraceSeconds < 0 {
		return fmt.Errorf("scheduler grace_seconds must not be negative, got %d", c.Scheduler.GraceSeconds)
	}
	if c.Scheduler.MaxConcurrent <= 0 {
		return fmt.Errorf("scheduler max_concurrent must be positive, got %d", c.Scheduler.MaxConcurrent)
	}
	if c.Notifications.TimeoutSeconds <= 0 {
		return fmt.Errorf("notifications timeout_seconds must be positive, got %d", c.Notifications.TimeoutSeconds)
	}
	return nil
}

// CalendarWindows converts the configured windows for peak.NewCalendar.
func (c Config) CalendarWindows() []peak.Window {
	windows := make([]peak.Window, 0, len(c.PeakWindows))
	for _, w := range c.PeakWindows {
		windows = append(windows, peak.Window{StartHour: w.Start, EndHour: w.End})
	}
	return windows
}

// Interval is the evaluation cadence.
func (c Config) Interval() time.Duration {
	return time.Duration(c.Scheduler.IntervalSeconds) * time.Second
}

// Grace is the late-fire window within which a delayed tick still runs.
func (c Config) Grace() time.Duration {
	return time.Duration(c.Scheduler.GraceSeconds) * time.Second
}

// NotificationTimeout bounds every notification fan-out.
func (c Config) NotificationTimeout() time.Duration {
	return time.Duration(c.Notifications.TimeoutSeconds) * time.Second
}
