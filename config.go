package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPageSize = 5
	DefaultLogFile  = "./logs/library.log"
	EnvPrefix       = "LIBC"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit    string        `yaml:"git_commit" envconfig:"LIBC_GIT_COMMIT"`
	GitTag       string        `yaml:"git_tag" envconfig:"LIBC_GIT_TAG"`
	BuildTime    string        `yaml:"build_time" envconfig:"LIBC_BUILD_TIME"`
	IsProduction bool          `yaml:"is_production" envconfig:"LIBC_IS_PRODUCTION"`
	LogLevel     zapcore.Level `yaml:"log_level" envconfig:"LIBC_LOG_LEVEL"`
	LogFile      string        `yaml:"log_file" envconfig:"LIBC_LOG_FILE"`
	Notifier     string        `yaml:"notifier" envconfig:"LIBC_NOTIFIER"`
	Demo         DemoConfig    `yaml:"demo"`
}

// DemoConfig drives the demo sequence run by the App.
type DemoConfig struct {
	PageSize  int    `yaml:"page_size" envconfig:"LIBC_DEMO_PAGE_SIZE"`
	BookQuery string `yaml:"book_query" envconfig:"LIBC_DEMO_BOOK_QUERY"`
	UserQuery string `yaml:"user_query" envconfig:"LIBC_DEMO_USER_QUERY"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and overrides the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.LogFile) == 0 {
		config.LogFile = DefaultLogFile
	}

	if config.Demo.PageSize < 0 {
		return fmt.Errorf("demo page size must not be negative, got %d", config.Demo.PageSize)
	}

	if config.Demo.PageSize == 0 {
		config.Demo.PageSize = DefaultPageSize
	}

	switch strings.ToLower(strings.TrimSpace(config.Notifier)) {
	case "", EmailNotifierKind, SMSNotifierKind:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNotifier, config.Notifier)
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data. The env file is optional.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %w", err)
	}

	// Set the environment configuration.
	err = godotenv.Load("./config.env")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("failed to set environment configurations: %w", err)
	}

	// Use environment variables with prefix `LIBC`.
	err = LoadConfigEnvs(EnvPrefix, config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %w", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %w", err)
	}
	return config, nil
}
