package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sagarc03/stacks"
	stackshttp "github.com/sagarc03/stacks/http"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for stacks.
type Config struct {
	Server ServerConfig          `mapstructure:"server" yaml:"server"`
	Mounts []MountConfig         `mapstructure:"mounts" yaml:"mounts" validate:"required,min=1,dive"`
	CORS   stackshttp.CORSConfig `mapstructure:"cors" yaml:"cors"`
	Log    LogConfig             `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" validate:"min=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MountConfig describes one served directory.
type MountConfig struct {
	Prefix       string   `mapstructure:"prefix" yaml:"prefix" validate:"required,startswith=/"`
	Root         string   `mapstructure:"root" yaml:"root" validate:"required"`
	Index        []string `mapstructure:"index" yaml:"index"`
	Listing      bool     `mapstructure:"listing" yaml:"listing"`
	Charset      string   `mapstructure:"charset" yaml:"charset" validate:"required,charset"`
	ShowHidden   bool     `mapstructure:"show_hidden" yaml:"show_hidden"`
	HideSymlinks bool     `mapstructure:"hide_symlinks" yaml:"hide_symlinks"`
	Sniff        bool     `mapstructure:"sniff" yaml:"sniff"`
}

// DirConfig converts the mount into resolver configuration.
func (m MountConfig) DirConfig() stacks.DirConfig {
	return stacks.DirConfig{
		URLPrefix:    m.Prefix,
		Root:         stacks.StaticRoot(m.Root),
		IndexFiles:   m.Index,
		AllowListing: m.Listing,
		Charset:      m.Charset,
		ShowHidden:   m.ShowHidden,
		HideSymlinks: m.HideSymlinks,
		SniffUnknown: m.Sniff,
	}
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`
}

const (
	defaultCharset = "utf-8"
	defaultIndex   = "index.html"
)

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"host":      "server.host",
	"port":      "server.port",
	"log-level": "log.level",
}

// mountFlags are applied to the first mount after unmarshalling, since
// viper cannot address list elements.
var mountFlags = []string{"prefix", "root", "listing", "charset"}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey, ok := flagToViperKey[f.Name]
		if !ok {
			return
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

func applyMountFlags(cfg *Config, flags *pflag.FlagSet) error {
	for _, name := range mountFlags {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}

		if len(cfg.Mounts) == 0 {
			cfg.Mounts = []MountConfig{defaultMount()}
		}
		m := &cfg.Mounts[0]

		var err error
		switch name {
		case "prefix":
			m.Prefix, err = flags.GetString(name)
		case "root":
			m.Root, err = flags.GetString(name)
		case "listing":
			m.Listing, err = flags.GetBool(name)
		case "charset":
			m.Charset, err = flags.GetString(name)
		}
		if err != nil {
			return fmt.Errorf("flag --%s: %w", name, err)
		}
	}
	return nil
}

func defaultMount() MountConfig {
	return MountConfig{
		Prefix:  "/",
		Root:    "./public",
		Index:   []string{defaultIndex},
		Charset: defaultCharset,
	}
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 5708)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	m := defaultMount()
	v.SetDefault("mounts", []map[string]any{{
		"prefix":  m.Prefix,
		"root":    m.Root,
		"index":   m.Index,
		"charset": m.Charset,
	}})

	v.SetDefault("cors.enabled", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// fillMountDefaults completes mounts read from config files, which do not
// inherit viper defaults for list elements.
func fillMountDefaults(cfg *Config) {
	for i := range cfg.Mounts {
		m := &cfg.Mounts[i]
		if m.Charset == "" {
			m.Charset = defaultCharset
		}
		if m.Index == nil {
			m.Index = []string{defaultIndex}
		}
	}
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("charset", func(fl validator.FieldLevel) bool {
		_, err := htmlindex.Get(fl.Field().String())
		return err == nil
	})
	return validate
}

func checkMountPrefixes(mounts []MountConfig) error {
	seen := make(map[string]bool, len(mounts))
	for _, m := range mounts {
		p := strings.TrimRight(m.Prefix, "/")
		if seen[p] {
			return fmt.Errorf("duplicate mount prefix %q", m.Prefix)
		}
		seen[p] = true
	}
	return nil
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("STACKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if flags != nil {
		if err := applyMountFlags(&cfg, flags); err != nil {
			return nil, fmt.Errorf("apply flags: %w", err)
		}
	}
	fillMountDefaults(&cfg)

	// 6. Validate using go-playground/validator
	if err := newValidator().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := checkMountPrefixes(cfg.Mounts); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
