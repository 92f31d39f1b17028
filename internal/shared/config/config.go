package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Config struct {
	SlackBotToken      string         `koanf:"slack_bot_token"`
	SlackSigningSecret string         `koanf:"slack_signing_secret"`
	StorageBackend     StorageBackend `koanf:"storage_backend"`
	RedisURL           string         `koanf:"redis_url"`
	StoragePath        string         `koanf:"storage_path"`
	HTTPPort           string         `koanf:"http_port"`
	CheckIntervalHours int            `koanf:"check_interval_hours"`
	AppEnv             AppEnv         `koanf:"app_env"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	// Use lo.Find to find the first existing config file
	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	// Convert SLACK_BOT_TOKEN -> slack_bot_token
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("storage_backend") {
		k.Set("storage_backend", "file")
	}
	if !k.Exists("storage_path") {
		k.Set("storage_path", "./data")
	}
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("check_interval_hours") {
		k.Set("check_interval_hours", 24)
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Parse enums from strings, falling back to the defaults
	if backend, err := ParseStorageBackend(k.String("storage_backend")); err == nil {
		cfg.StorageBackend = backend
	} else {
		cfg.StorageBackend = StorageBackendFile
	}

	if appEnv, err := ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = appEnv
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	// Validate required fields
	if cfg.SlackBotToken == "" {
		return nil, errors.ErrMissingBotToken
	}
	if cfg.StorageBackend == StorageBackendRedis && cfg.RedisURL == "" {
		return nil, errors.ErrMissingRedisURL
	}

	return &cfg, nil
}
