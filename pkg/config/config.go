// Package config loads storyswift settings.
//
// Settings come from, in increasing priority: built-in defaults, a TOML
// file, a .env file in the working directory, STORYSWIFT_* environment
// variables and finally command-line flags (applied by the CLI).
//
// The file is the first of:
//
//   - the path given with --config
//   - $STORYSWIFT_CONFIG
//   - ./storyswift.toml
//   - $XDG_CONFIG_HOME/storyswift/config.toml (os.UserConfigDir)
//
// A missing file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/storyswift/pkg/pipeline"
)

// FileName is the project-local config file name.
const FileName = "storyswift.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STORYSWIFT_"

// Sink backends.
const (
	SinkDir   = "dir"
	SinkMongo = "mongo"
	SinkS3    = "s3"
)

// Cache backends.
const (
	CacheFile   = "file"
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config is the complete configuration.
type Config struct {
	Output     OutputConfig     `toml:"output"`
	Generate   GenerateConfig   `toml:"generate"`
	Navigation NavigationConfig `toml:"navigation"`
	Cache      CacheConfig      `toml:"cache"`
	Mongo      MongoConfig      `toml:"mongo"`
	S3         S3Config         `toml:"s3"`
	Server     ServerConfig     `toml:"server"`
}

// OutputConfig controls where units are written.
type OutputConfig struct {
	// Dir is the folder run folders are created in. Empty means the
	// Downloads folder, or the current directory without one.
	Dir         string `toml:"dir"`
	Sink        string `toml:"sink"`
	InPlace     bool   `toml:"in_place"`
	CopySource  bool   `toml:"copy_source"`
	Concurrency int    `toml:"concurrency"`
	Notify      bool   `toml:"notify"`
}

// GenerateConfig controls code generation.
type GenerateConfig struct {
	Mode             string `toml:"mode"`
	PlaceholderLabel string `toml:"placeholder_label"`
	ChildContent     bool   `toml:"child_content"`
}

// NavigationConfig controls flow reconstruction.
type NavigationConfig struct {
	SegueKinds []string `toml:"segue_kinds"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	Size     int    `toml:"size"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// MongoConfig configures the MongoDB sink.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// S3Config configures the S3 sink.
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	Prefix    string `toml:"prefix"`
	UseSSL    bool   `toml:"use_ssl"`
}

// ServerConfig configures `storyswift serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	Timeout      Duration `toml:"timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as "30s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Sink:        SinkDir,
			CopySource:  true,
			Concurrency: 4,
		},
		Generate: GenerateConfig{
			Mode: pipeline.ModeAuto,
		},
		Navigation: NavigationConfig{
			SegueKinds: slices.Clone(pipeline.DefaultSegueKinds),
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			Size:    1024,
		},
		Mongo: MongoConfig{
			Database:   "storyswift",
			Collection: "units",
		},
		S3: S3Config{
			Region: "us-east-1",
			UseSSL: true,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			Timeout:      Duration{30 * time.Second},
			MaxBodyBytes: 10 << 20,
		},
	}
}

// Load reads .env, then the config file at path (or the first one Find
// returns when path is empty), then applies environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = Find()
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find returns the first existing config file, or "".
func Find() string {
	candidates := []string{os.Getenv(EnvPrefix + "CONFIG"), FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "storyswift", "config.toml"))
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// applyEnv overrides settings from STORYSWIFT_* variables.
func (c *Config) applyEnv() error {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(EnvPrefix + name)); v != "" {
			*dst = v
		}
	}
	var err error
	boolean := func(name string, dst *bool) {
		raw := strings.TrimSpace(os.Getenv(EnvPrefix + name))
		if raw == "" || err != nil {
			return
		}
		v, perr := strconv.ParseBool(raw)
		if perr != nil {
			err = fmt.Errorf("%s%s: %w", EnvPrefix, name, perr)
			return
		}
		*dst = v
	}

	str("OUTPUT_DIR", &c.Output.Dir)
	str("SINK", &c.Output.Sink)
	boolean("NOTIFY", &c.Output.Notify)
	str("MODE", &c.Generate.Mode)
	str("PLACEHOLDER_LABEL", &c.Generate.PlaceholderLabel)
	boolean("CHILD_CONTENT", &c.Generate.ChildContent)
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "SEGUE_KINDS")); v != "" {
		c.Navigation.SegueKinds = splitList(v)
	}
	str("CACHE_BACKEND", &c.Cache.Backend)
	str("CACHE_DIR", &c.Cache.Dir)
	str("REDIS_URL", &c.Cache.RedisURL)
	str("MONGO_URI", &c.Mongo.URI)
	str("S3_ENDPOINT", &c.S3.Endpoint)
	str("S3_REGION", &c.S3.Region)
	str("S3_ACCESS_KEY", &c.S3.AccessKey)
	str("S3_SECRET_KEY", &c.S3.SecretKey)
	str("S3_BUCKET", &c.S3.Bucket)
	boolean("S3_USE_SSL", &c.S3.UseSSL)
	str("ADDR", &c.Server.Addr)
	return err
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if err := pipeline.ValidateMode(c.Generate.Mode); err != nil {
		return err
	}
	switch c.Output.Sink {
	case SinkDir, SinkMongo, SinkS3:
	default:
		return fmt.Errorf("invalid output.sink %q (must be one of: dir, mongo, s3)", c.Output.Sink)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("invalid cache.backend %q (must be one of: file, memory, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisURL == "" {
		return fmt.Errorf("cache.redis_url is required for the redis backend")
	}
	return nil
}

// PipelineOptions returns the generation settings as pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Mode:             c.Generate.Mode,
		PlaceholderLabel: c.Generate.PlaceholderLabel,
		SegueKinds:       slices.Clone(c.Navigation.SegueKinds),
		ChildContent:     c.Generate.ChildContent,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
