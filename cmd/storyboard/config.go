package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/hairizuan-noorazman/script-storyboard/storyboard"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
// API keys are supplied per request and never read from configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Generation GenerationConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// GenerationConfig selects the hosted generation service.
type GenerationConfig struct {
	Provider      storyboard.Provider
	OpenAIBaseURL string
}

// LoadConfig loads configuration from file and environment variables.
// A .env file in the working directory is loaded first when present.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("STORYBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	// Generation for a long script can take well over a minute.
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("log.level", "info")

	v.SetDefault("generation.provider", string(storyboard.ProviderGemini))
	v.SetDefault("generation.openai_base_url", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config

	config.Server.Host = v.GetString("server.host")
	config.Server.Port = v.GetInt("server.port")
	config.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	config.Server.WriteTimeout = v.GetDuration("server.write_timeout")
	config.Server.ShutdownTimeout = v.GetDuration("server.shutdown_timeout")

	config.Log.Level = v.GetString("log.level")

	config.Generation.Provider = storyboard.Provider(strings.ToLower(v.GetString("generation.provider")))
	config.Generation.OpenAIBaseURL = v.GetString("generation.openai_base_url")

	if !config.Generation.Provider.IsValid() {
		return nil, fmt.Errorf("invalid generation.provider %q (must be 'gemini' or 'openai')", config.Generation.Provider)
	}

	return &config, nil
}

// newGenerator builds the generator selected by cfg.
func newGenerator(cfg GenerationConfig) (storyboard.Generator, error) {
	return storyboard.NewGenerator(cfg.Provider, storyboard.GeneratorOptions{
		OpenAIBaseURL: cfg.OpenAIBaseURL,
	})
}
