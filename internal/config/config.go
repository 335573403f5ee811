package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/semester/internal/lms"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix marks environment variables read as configuration. A double
// underscore separates sections: SEMESTER_LMS__TIMEOUT_MS is lms.timeout_ms.
const EnvPrefix = "SEMESTER_"

// Config holds all configuration for the semester CLI.
type Config struct {
	DBPath   string         `koanf:"db_path" validate:"required"`
	UserID   string         `koanf:"user_id" validate:"required"`
	Log      LogConfig      `koanf:"log"`
	LMS      LMSConfig      `koanf:"lms"`
	Sync     SyncConfig     `koanf:"sync"`
	Priority PriorityConfig `koanf:"priority"`
	Grades   GradesConfig   `koanf:"grades"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

type LMSConfig struct {
	TimeoutMs       int    `koanf:"timeout_ms" validate:"gte=1000,lte=120000"`
	MaxRetries      int    `koanf:"max_retries" validate:"gte=0,lte=10"`
	PerPage         int    `koanf:"per_page" validate:"gte=1,lte=100"`
	DefaultInstance string `koanf:"default_instance" validate:"required"`
	LogCalls        bool   `koanf:"log_calls"`
}

type SyncConfig struct {
	ParallelCourses int `koanf:"parallel_courses" validate:"gte=1,lte=16"`
}

type PriorityConfig struct {
	PanicTopN int `koanf:"panic_top_n" validate:"gte=1,lte=20"`
}

type GradesConfig struct {
	TargetPercent float64 `koanf:"target_percent" validate:"gte=0,lte=100"`
}

// Options says where Load looks besides the built-in defaults. Empty paths
// fall back to files under Dir; missing files are skipped.
type Options struct {
	Dir        string
	ConfigFile string
	EnvFile    string
	Flags      *pflag.FlagSet
	// FlagKeys maps flag names to config keys. Flags not listed are ignored.
	FlagKeys map[string]string
}

// DefaultDir returns ~/.semester.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".semester"), nil
}

// Defaults returns the built-in configuration rooted at dir.
func Defaults(dir string) Config {
	lmsDefaults := lms.DefaultConfig()
	return Config{
		DBPath: filepath.Join(dir, "semester.db"),
		UserID: "local",
		Log:    LogConfig{Level: "warn", Format: "text"},
		LMS: LMSConfig{
			TimeoutMs:       lmsDefaults.TimeoutMs,
			MaxRetries:      lmsDefaults.MaxRetries,
			PerPage:         lmsDefaults.PerPage,
			DefaultInstance: lmsDefaults.DefaultInstance,
			LogCalls:        lmsDefaults.LogCalls,
		},
		Sync:     SyncConfig{ParallelCourses: 1},
		Priority: PriorityConfig{PanicTopN: 3},
		Grades:   GradesConfig{TargetPercent: 90},
	}
}

// Load layers defaults, the YAML config file, the .env file, SEMESTER_*
// variables, and changed flags, in that order, then validates the result.
func Load(opts Options) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	k := koanf.New(".")
	if err := k.Load(defaultsProvider(Defaults(dir)), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	cfgFile, explicit := opts.ConfigFile, opts.ConfigFile != ""
	if !explicit {
		cfgFile = filepath.Join(dir, "config.yaml")
	}
	if err := loadFile(k, cfgFile, explicit); err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv.Load never overrides variables already set in the process.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if opts.Flags != nil {
		keys := opts.FlagKeys
		cb := func(f *pflag.Flag) (string, any) {
			key, ok := keys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, cb), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every failing key.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// LMSClientConfig converts the lms section for the HTTP client.
func (c *Config) LMSClientConfig() lms.Config {
	return lms.Config{
		TimeoutMs:       c.LMS.TimeoutMs,
		MaxRetries:      c.LMS.MaxRetries,
		PerPage:         c.LMS.PerPage,
		DefaultInstance: c.LMS.DefaultInstance,
		LogCalls:        c.LMS.LogCalls,
	}
}

func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger builds the process logger described by the log section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
