package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "FILTERKIT"

// FileSystem abstracts file operations so tests can stub them out.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type realFileSystem struct{}

func (realFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (realFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Options holds loader dependencies and optional file overrides.
type Options struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// Option is a functional option for Load.
type Option func(*Options)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) Option {
	return func(o *Options) { o.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// Load reads filterkit configuration from disk and the environment.
// It searches for filterkit.yml and .env files in standard locations
// unless explicit paths are given, applies defaults, and validates the
// result.
func Load(opts ...Option) (*Config, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.FileSystem == nil {
		o.FileSystem = realFileSystem{}
	}

	configFile := o.ConfigFile
	if configFile == "" {
		configFile = findFile(o.FileSystem, "filterkit.yml")
	}
	envFile := o.EnvFile
	if envFile == "" {
		envFile = findFile(o.FileSystem, ".env")
	}

	v := viper.New()
	if configFile != "" && o.FileSystem.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	if envFile != "" && o.FileSystem.Exists(envFile) {
		if err := o.FileSystem.LoadEnv(envFile); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// findFile searches standard locations for a config artifact.
func findFile(fs FileSystem, name string) string {
	searchPaths := []string{
		"./" + name,
		"./config/" + name,
		"../" + name,
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// bindEnvKeys binds prefixed environment variables to nested viper keys.
// AutomaticEnv alone does not surface keys absent from the config file,
// so FILTERKIT_SINK_TIMEOUT is set explicitly as sink.timeout.
func bindEnvKeys(v *viper.Viper) {
	prefix := envPrefix + "_"
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(pair[0], prefix))
		parts := strings.SplitN(key, "_", 2)
		if len(parts) == 2 {
			v.Set(parts[0]+"."+parts[1], pair[1])
		} else {
			v.Set(key, pair[1])
		}
	}
}
