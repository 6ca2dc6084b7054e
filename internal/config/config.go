// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Bot       BotConfig       `mapstructure:"bot"`
	Whitelist WhitelistConfig `mapstructure:"whitelist"`
	Games     GamesConfig     `mapstructure:"games"`
}

// BotConfig holds Telegram bot configuration.
type BotConfig struct {
	Token string `mapstructure:"token"`
}

// WhitelistConfig holds chat whitelist configuration.
type WhitelistConfig struct {
	Chats []int64 `mapstructure:"chats"`
}

// GamesConfig holds game-specific configuration.
type GamesConfig struct {
	Avoid     AvoidConfig     `mapstructure:"avoid"`
	Story     StoryConfig     `mapstructure:"story"`
	TicTacToe TicTacToeConfig `mapstructure:"tictactoe"`
}

// AvoidConfig holds trash-avoid game configuration.
type AvoidConfig struct {
	MaxSafe        int `mapstructure:"max_safe"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// StoryConfig holds trash-story game configuration.
type StoryConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// TicTacToeConfig holds tic-tac-toe game configuration.
type TicTacToeConfig struct {
	TimeoutSeconds       int `mapstructure:"timeout_seconds"`
	SelectTimeoutSeconds int `mapstructure:"select_timeout_seconds"`
}

// Timeout returns the avoid game deadline as a duration.
func (a AvoidConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Timeout returns the story game deadline as a duration.
func (s StoryConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Timeout returns the tic-tac-toe game deadline as a duration.
func (t TicTacToeConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// SelectTimeout returns the difficulty selection deadline as a duration.
func (t TicTacToeConfig) SelectTimeout() time.Duration {
	return time.Duration(t.SelectTimeoutSeconds) * time.Second
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the given directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables use underscore separator and uppercase,
	// e.g. BOT_TOKEN, GAMES_AVOID_MAX_SAFE.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; env vars can provide everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Timeout tuning: a quick
// reflex game, slower narrative and board games, a short difficulty menu.
func setDefaults(v *viper.Viper) {
	v.SetDefault("games.avoid.max_safe", 5)
	v.SetDefault("games.avoid.timeout_seconds", 60)
	v.SetDefault("games.story.timeout_seconds", 120)
	v.SetDefault("games.tictactoe.timeout_seconds", 120)
	v.SetDefault("games.tictactoe.select_timeout_seconds", 30)
}

// IsChatAllowed checks if a chat ID is in the whitelist.
// An empty whitelist allows all chats.
func (c *Config) IsChatAllowed(chatID int64) bool {
	if len(c.Whitelist.Chats) == 0 {
		return true
	}
	for _, id := range c.Whitelist.Chats {
		if id == chatID {
			return true
		}
	}
	return false
}
