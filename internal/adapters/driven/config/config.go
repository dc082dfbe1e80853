package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docstats/internal/logger"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DOCSTATS_"

// Duration is a time.Duration that reads and writes as a string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the complete docstats configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Fetch   FetchConfig   `toml:"fetch"`
	Storage StorageConfig `toml:"storage"`
	PDF     PDFConfig     `toml:"pdf"`
	MCP     MCPConfig     `toml:"mcp"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig configures the REST server.
type ServerConfig struct {
	Host              string   `toml:"host"`
	Port              int      `toml:"port"`
	MaxRequestBytes   int64    `toml:"max_request_bytes"`
	ReadHeaderTimeout Duration `toml:"read_header_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// FetchConfig configures web retrieval.
type FetchConfig struct {
	Timeout           Duration `toml:"timeout"`
	UserAgent         string   `toml:"user_agent"`
	MaxBytes          int64    `toml:"max_bytes"`
	MaxRedirects      int      `toml:"max_redirects"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	Burst             int      `toml:"burst"`
}

// StorageConfig configures cloud storage access.
type StorageConfig struct {
	Timeout         Duration `toml:"timeout"`
	Endpoint        string   `toml:"endpoint"`
	CredentialsFile string   `toml:"credentials_file"`
	AccessToken     string   `toml:"access_token"`
	Anonymous       bool     `toml:"anonymous"`
}

// PDFConfig configures PDF extraction.
type PDFConfig struct {
	MaxBytes int64 `toml:"max_bytes"`
}

// MCPConfig configures the MCP server.
type MCPConfig struct {
	JSONResponse bool `toml:"json_response"`
}

// LogConfig configures logging.
type LogConfig struct {
	Verbose bool `toml:"verbose"`
	JSON    bool `toml:"json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			MaxRequestBytes:   1 << 20,
			ReadHeaderTimeout: Duration{10 * time.Second},
		},
		Fetch: FetchConfig{
			Timeout:           Duration{30 * time.Second},
			UserAgent:         "docstats/1.0 (+https://github.com/custodia-labs/docstats)",
			MaxBytes:          20 << 20,
			MaxRedirects:      5,
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Storage: StorageConfig{
			Timeout: Duration{60 * time.Second},
		},
		PDF: PDFConfig{
			MaxBytes: 50 << 20,
		},
	}
}

// Load reads path (if non-empty) over the defaults, applies environment
// overrides, and validates the result. A missing file is an error only when
// path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode unmarshals data over cfg and warns about keys it does not know.
func decode(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return err
	}
	known := knownKeys()
	var unknown []string
	for key := range flattenMap(raw, "") {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		logger.Warn("Ignoring unknown config key %q", key)
	}
	return nil
}

// Validate reports configuration values that cannot work.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 0 and 65535, got %d", c.Server.Port))
	}
	if c.Server.MaxRequestBytes <= 0 {
		errs = append(errs, errors.New("server.max_request_bytes must be positive"))
	}
	if c.Fetch.Timeout.Duration <= 0 {
		errs = append(errs, errors.New("fetch.timeout must be positive"))
	}
	if c.Fetch.MaxBytes <= 0 {
		errs = append(errs, errors.New("fetch.max_bytes must be positive"))
	}
	if c.Fetch.MaxRedirects < 0 {
		errs = append(errs, errors.New("fetch.max_redirects must not be negative"))
	}
	if c.Fetch.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("fetch.requests_per_second must not be negative"))
	}
	if c.Storage.Timeout.Duration <= 0 {
		errs = append(errs, errors.New("storage.timeout must be positive"))
	}
	if c.Storage.Anonymous && (c.Storage.AccessToken != "" || c.Storage.CredentialsFile != "") {
		errs = append(errs, errors.New("storage.anonymous cannot be combined with credentials"))
	}
	if c.PDF.MaxBytes <= 0 {
		errs = append(errs, errors.New("pdf.max_bytes must be positive"))
	}
	return errors.Join(errs...)
}

// Marshal encodes cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// Write saves cfg as TOML to path with restricted permissions.
func Write(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o600)
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
			continue
		}
		result[fullKey] = value
	}
	return result
}

// setter parses an environment value into one field.
type setter func(c *Config, v string) error

func stringSetter(field func(*Config) *string) setter {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func intSetter(field func(*Config) *int) setter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func int64Setter(field func(*Config) *int64) setter {
	return func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func floatSetter(field func(*Config) *float64) setter {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func boolSetter(field func(*Config) *bool) setter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func durationSetter(field func(*Config) *Duration) setter {
	return func(c *Config, v string) error {
		return field(c).UnmarshalText([]byte(v))
	}
}

// keys maps each dotted config key to its environment setter.
var keys = map[string]setter{
	"server.host":                stringSetter(func(c *Config) *string { return &c.Server.Host }),
	"server.port":                intSetter(func(c *Config) *int { return &c.Server.Port }),
	"server.max_request_bytes":   int64Setter(func(c *Config) *int64 { return &c.Server.MaxRequestBytes }),
	"server.read_header_timeout": durationSetter(func(c *Config) *Duration { return &c.Server.ReadHeaderTimeout }),
	"fetch.timeout":              durationSetter(func(c *Config) *Duration { return &c.Fetch.Timeout }),
	"fetch.user_agent":           stringSetter(func(c *Config) *string { return &c.Fetch.UserAgent }),
	"fetch.max_bytes":            int64Setter(func(c *Config) *int64 { return &c.Fetch.MaxBytes }),
	"fetch.max_redirects":        intSetter(func(c *Config) *int { return &c.Fetch.MaxRedirects }),
	"fetch.requests_per_second":  floatSetter(func(c *Config) *float64 { return &c.Fetch.RequestsPerSecond }),
	"fetch.burst":                intSetter(func(c *Config) *int { return &c.Fetch.Burst }),
	"storage.timeout":            durationSetter(func(c *Config) *Duration { return &c.Storage.Timeout }),
	"storage.endpoint":           stringSetter(func(c *Config) *string { return &c.Storage.Endpoint }),
	"storage.credentials_file":   stringSetter(func(c *Config) *string { return &c.Storage.CredentialsFile }),
	"storage.access_token":       stringSetter(func(c *Config) *string { return &c.Storage.AccessToken }),
	"storage.anonymous":          boolSetter(func(c *Config) *bool { return &c.Storage.Anonymous }),
	"pdf.max_bytes":              int64Setter(func(c *Config) *int64 { return &c.PDF.MaxBytes }),
	"mcp.json_response":          boolSetter(func(c *Config) *bool { return &c.MCP.JSONResponse }),
	"log.verbose":                boolSetter(func(c *Config) *bool { return &c.Log.Verbose }),
	"log.json":                   boolSetter(func(c *Config) *bool { return &c.Log.JSON }),
}

func knownKeys() map[string]struct{} {
	known := make(map[string]struct{}, len(keys))
	for k := range keys {
		known[k] = struct{}{}
	}
	return known
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// applyEnv applies every set DOCSTATS_* variable to cfg.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	var errs []error
	for _, key := range names {
		v, ok := lookup(EnvName(key))
		if !ok {
			continue
		}
		if err := keys[key](cfg, strings.TrimSpace(v)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvName(key), err))
		}
	}
	return errors.Join(errs...)
}
