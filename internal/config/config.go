package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"detention/internal/constants"
	"detention/internal/errors"
	"detention/internal/xdg"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config represents the detention configuration
type Config struct {
	Server      ServerConfig `toml:"server" yaml:"server"`
	AbsoluteURL string       `toml:"absolute_url" yaml:"absolute_url"` // Public host name rendered into pages
	API         APIConfig    `toml:"api" yaml:"api"`
	Log         LogConfig    `toml:"log" yaml:"log"`

	// Path is the file the configuration was loaded from, empty for defaults
	Path string `toml:"-" yaml:"-"`
}

type ServerConfig struct {
	Host string `toml:"host" yaml:"host"`
	Port int    `toml:"port" yaml:"port"`
}

// APIConfig configures the instance management API client
type APIConfig struct {
	URL   string `toml:"url" yaml:"url"`
	Token string `toml:"token" yaml:"token"` // Bootstrap credential used to log in once at startup

	// RequireAuth makes a failed startup login fatal instead of only logged
	RequireAuth bool `toml:"require_auth" yaml:"require_auth"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "text" or "json"
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Default returns the default configuration
func Default() *Config {
	format := "text"
	if os.Getenv("DETENTION_ENV") == "production" {
		format = "json"
	}

	return &Config{
		Server: ServerConfig{
			Host: constants.DefaultServerHost,
			Port: constants.DefaultServerPort,
		},
		AbsoluteURL: constants.DefaultAbsoluteURL,
		API: APIConfig{
			URL: constants.DefaultAPIURL,
		},
		Log: LogConfig{
			Level:  "info",
			Format: format,
		},
	}
}

// DefaultPath returns the config file location inside the XDG config directory
func DefaultPath() (string, error) {
	configDir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load builds the configuration from defaults, an optional file and the
// environment, in that order of precedence. An explicit path (argument or
// DETENTION_CONFIG) must exist; the XDG default is only read when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := true
	if path == "" {
		path = os.Getenv("DETENTION_CONFIG")
	}
	if path == "" {
		explicit = false
		// No resolvable config directory means no default file
		path, _ = DefaultPath()
	}

	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile reads path when it exists. A missing file is only an error when
// the path was asked for explicitly.
func (c *Config) loadFile(path string, explicit bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return errors.ConfigNotFound(path).WithCause(err)
	}
	return c.readFile(path)
}

// readFile decodes path on top of the current values, by file extension
func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigParseError(path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = toml.Unmarshal(data, c)
	}
	if err != nil {
		return errors.ConfigParseError(path, err)
	}

	c.Path = path
	return nil
}

// applyEnv overlays the environment variables the service has always honoured
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("HOST"); ok && v != "" {
		c.Server.Host = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		} else {
			// Leave an out-of-range marker so Validate reports it
			c.Server.Port = -1
		}
	}
	if v, ok := lookup("ABSOLUTE_URL"); ok && v != "" {
		c.AbsoluteURL = v
	}
	if v, ok := lookup("API_URL"); ok && v != "" {
		c.API.URL = v
	} else if v, ok := lookup("API_HOST"); ok && v != "" {
		if !strings.Contains(v, "://") {
			v = "http://" + v
		}
		c.API.URL = v
	}
	if v, ok := lookup("HELLO_RUNNABLE_GITHUB_TOKEN"); ok && v != "" {
		c.API.Token = v
	}
	if v, ok := lookup("API_REQUIRE_AUTH"); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.API.RequireAuth = b
		}
	}
	if v, ok := lookup("LOG_LEVEL_STDOUT"); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup("LOG_FORMAT"); ok && v != "" {
		c.Log.Format = strings.ToLower(v)
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Server.Port < constants.MinPortNumber || c.Server.Port > constants.MaxPortNumber {
		return errors.ConfigInvalid(fmt.Sprintf("invalid port: %d", c.Server.Port))
	}

	if c.AbsoluteURL == "" {
		return errors.ConfigInvalid("absolute_url cannot be empty")
	}

	u, err := url.Parse(c.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.ConfigInvalid(fmt.Sprintf("api.url must be an absolute http(s) URL: %q", c.API.URL))
	}

	if !validLogLevels[c.Log.Level] {
		return errors.ConfigInvalid(fmt.Sprintf("unknown log level: %q", c.Log.Level))
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.ConfigInvalid(fmt.Sprintf("unknown log format: %q", c.Log.Format))
	}

	return nil
}

// Addr returns the host:port the server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
