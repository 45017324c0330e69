package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/avenka29/Hackathon-NCSU/internal/callsim"
	"github.com/avenka29/Hackathon-NCSU/internal/logging"
)

// Environment variables read by New. Real environment values win over .env.
const (
	EnvHome         = "SCAMFLIGHT_HOME"
	EnvServiceURL   = "SCAMFLIGHT_SERVICE_URL"
	EnvTimeout      = "SCAMFLIGHT_TIMEOUT"
	EnvLogLevel     = "SCAMFLIGHT_LOG_LEVEL"
	EnvLogFormat    = "SCAMFLIGHT_LOG_FORMAT"
	EnvOutputFormat = "SCAMFLIGHT_OUTPUT_FORMAT"
	EnvProjectDir   = "SCAMFLIGHT_PROJECT_DIR"
)

// Output formats accepted in output.default_format and --output.
const (
	OutputTable = "table"
	OutputPlain = "plain"
	OutputJSON  = "json"
)

const (
	configDirName  = ".scamflight"
	configFileName = "config.yaml"
	dotEnvFileName = ".env"

	defaultMaxConcurrency = 4
	maxMaxConcurrency     = 32
)

var (
	// ErrUnknownKey is returned by Get and Set for keys outside the schema.
	ErrUnknownKey = errors.New("unknown config key")

	// ErrInvalidValue is returned when a value fails validation.
	ErrInvalidValue = errors.New("invalid config value")

	// ErrPersonNotFound is returned by FindPerson.
	ErrPersonNotFound = errors.New("person not found")
)

// Config is the scamflight configuration file.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	People  []Person      `yaml:"people,omitempty"`

	path string
}

// ServiceConfig locates the Call Simulation Service.
type ServiceConfig struct {
	BaseURL         string        `yaml:"base_url"`
	Timeout         time.Duration `yaml:"timeout"`
	DefaultScenario string        `yaml:"default_scenario"`
	MaxConcurrency  int           `yaml:"max_concurrency"`
}

// LoggingConfig controls the diagnostic log.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// OutputConfig controls how command results are printed.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// Person is a trainee on the roster. The roster only resolves --person.
type Person struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Role  string `yaml:"role,omitempty"`
	Phone string `yaml:"phone"`
}

// Default returns a Config with built-in defaults and no file path.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL:         callsim.DefaultBaseURL,
			Timeout:         callsim.DefaultTimeout,
			DefaultScenario: callsim.DefaultScenarioID,
			MaxConcurrency:  defaultMaxConcurrency,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatJSON,
			File:   defaultLogFile(),
		},
		Output: OutputConfig{DefaultFormat: OutputTable},
	}
}

// New loads the global config file, then .env from the working directory,
// then SCAMFLIGHT_* environment variables. Problems are logged and the
// defaults are kept for the affected values.
func New() *Config {
	cfg := Default()

	dir, err := GetConfigDir()
	if err != nil {
		logger := logging.FromContext(context.Background())
		logger.Warn().Str("component", "config").Err(err).Msg("cannot locate config directory, using defaults")
		cfg.applyEnv(envLookup(dotEnvFileName))
		return cfg
	}

	cfg.path = filepath.Join(dir, configFileName)
	if loadErr := cfg.loadFile(cfg.path); loadErr != nil {
		logger := logging.FromContext(context.Background())
		logger.Warn().
			Str("component", "config").
			Err(loadErr).
			Str("path", cfg.path).
			Msg("failed to read config file, using defaults")
	}

	cfg.applyEnv(envLookup(dotEnvFileName))
	return cfg
}

// Load reads a config file at path on top of the defaults. Environment
// variables are not applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.path
}

// SetPath changes where Save writes.
func (c *Config) SetPath(path string) {
	c.path = path
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file path")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: service.base_url %q must be an http(s) URL", ErrInvalidValue, c.Service.BaseURL)
	}
	if c.Service.Timeout <= 0 {
		return fmt.Errorf("%w: service.timeout must be positive", ErrInvalidValue)
	}
	if c.Service.MaxConcurrency < 1 || c.Service.MaxConcurrency > maxMaxConcurrency {
		return fmt.Errorf("%w: service.max_concurrency must be between 1 and %d",
			ErrInvalidValue, maxMaxConcurrency)
	}
	if strings.TrimSpace(c.Service.DefaultScenario) == "" {
		return fmt.Errorf("%w: service.default_scenario is empty", ErrInvalidValue)
	}

	if _, err = zerolog.ParseLevel(c.Logging.Level); err != nil || c.Logging.Level == "" {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level)
	}
	if c.Logging.Format != logging.FormatJSON && c.Logging.Format != logging.FormatConsole {
		return fmt.Errorf("%w: logging.format must be %s or %s",
			ErrInvalidValue, logging.FormatJSON, logging.FormatConsole)
	}

	if !ValidOutputFormat(c.Output.DefaultFormat) {
		return fmt.Errorf("%w: output.default_format %q", ErrInvalidValue, c.Output.DefaultFormat)
	}

	seen := make(map[string]bool, len(c.People))
	for _, p := range c.People {
		if p.ID == "" {
			return fmt.Errorf("%w: person %q has no id", ErrInvalidValue, p.Name)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate person id %q", ErrInvalidValue, p.ID)
		}
		seen[p.ID] = true
		if err = callsim.ValidatePhoneNumber(p.Phone); err != nil {
			return fmt.Errorf("%w: person %q: %w", ErrInvalidValue, p.ID, err)
		}
	}
	return nil
}

// ValidOutputFormat reports whether format is a known output format.
func ValidOutputFormat(format string) bool {
	return slices.Contains([]string{OutputTable, OutputPlain, OutputJSON}, format)
}

// FindPerson returns the roster entry with the given id.
func (c *Config) FindPerson(id string) (Person, error) {
	for _, p := range c.People {
		if p.ID == id {
			return p, nil
		}
	}
	return Person{}, fmt.Errorf("%w: %s", ErrPersonNotFound, id)
}

// Keys lists the dotted keys understood by Get and Set.
func Keys() []string {
	return []string{
		"service.base_url",
		"service.timeout",
		"service.default_scenario",
		"service.max_concurrency",
		"logging.level",
		"logging.format",
		"logging.file",
		"output.default_format",
	}
}

// Get returns the string form of a dotted key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "service.base_url":
		return c.Service.BaseURL, nil
	case "service.timeout":
		return c.Service.Timeout.String(), nil
	case "service.default_scenario":
		return c.Service.DefaultScenario, nil
	case "service.max_concurrency":
		return strconv.Itoa(c.Service.MaxConcurrency), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set parses value into the field named by a dotted key. The result is
// validated so a bad value never reaches Save.
func (c *Config) Set(key, value string) error {
	next := *c
	next.People = slices.Clone(c.People)

	switch key {
	case "service.base_url":
		next.Service.BaseURL = strings.TrimRight(value, "/")
	case "service.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: service.timeout: %w", ErrInvalidValue, err)
		}
		next.Service.Timeout = d
	case "service.default_scenario":
		next.Service.DefaultScenario = value
	case "service.max_concurrency":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: service.max_concurrency: %w", ErrInvalidValue, err)
		}
		next.Service.MaxConcurrency = n
	case "logging.level":
		next.Logging.Level = strings.ToLower(value)
	case "logging.format":
		next.Logging.Format = strings.ToLower(value)
	case "logging.file":
		next.Logging.File = value
	case "output.default_format":
		next.Output.DefaultFormat = strings.ToLower(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// lookupFunc resolves an environment variable.
type lookupFunc func(key string) (string, bool)

// envLookup prefers the process environment and falls back to the values in
// the dotenv file at path. A missing or unreadable file is ignored.
func envLookup(path string) lookupFunc {
	dotenv, err := godotenv.Read(path)
	if err != nil {
		dotenv = nil
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}
}

func (c *Config) applyEnv(lookup lookupFunc) {
	if v, ok := lookup(EnvServiceURL); ok {
		c.Service.BaseURL = strings.TrimRight(v, "/")
	}
	if v, ok := lookup(EnvTimeout); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.Service.Timeout = d
		} else if secs, convErr := strconv.Atoi(v); convErr == nil {
			c.Service.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Logging.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Logging.Format = strings.ToLower(v)
	}
	if v, ok := lookup(EnvOutputFormat); ok {
		c.Output.DefaultFormat = strings.ToLower(v)
	}
}
