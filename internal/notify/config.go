package notify

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultServer = "https://ntfy.sh"

var priorities = []string{"min", "low", "default", "high", "urgent"}

// Config holds the ntfy settings shared by download and calc runs.
type Config struct {
	Enabled  bool
	Server   string // ntfy server URL
	Topic    string // required when enabled
	Priority string // one of priorities
	Tags     string // comma-separated emoji tags
	Token    string // access token for private topics
}

// LoadConfig reads NTFY_* variables from the process environment.
func LoadConfig() *Config {
	return LoadConfigFrom(os.Getenv)
}

// LoadConfigFrom reads NTFY_* variables through getenv.
func LoadConfigFrom(getenv func(string) string) *Config {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	enabled, _ := strconv.ParseBool(get("NTFY_ENABLED", "false"))
	return &Config{
		Enabled:  enabled,
		Server:   get("NTFY_SERVER", defaultServer),
		Topic:    get("NTFY_TOPIC", ""),
		Priority: strings.ToLower(get("NTFY_PRIORITY", "default")),
		Tags:     get("NTFY_TAGS", "chart_with_upwards_trend"),
		Token:    get("NTFY_TOKEN", ""),
	}
}

// Validate checks the settings needed to publish. A disabled config is
// always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Topic == "" {
		return errors.New("NTFY_TOPIC is required when NTFY_ENABLED=true")
	}
	for _, p := range priorities {
		if c.Priority == p {
			return nil
		}
	}
	return fmt.Errorf("invalid NTFY_PRIORITY: %s (valid: %s)", c.Priority, strings.Join(priorities, ", "))
}
