// Package main is the entry point for the Telegram mini-game bot.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"telegram-minigame-bot/internal/bot"
	"telegram-minigame-bot/internal/config"
	"telegram-minigame-bot/internal/game"
	"telegram-minigame-bot/internal/game/avoid"
	"telegram-minigame-bot/internal/game/story"
	"telegram-minigame-bot/internal/game/tictactoe"
	"telegram-minigame-bot/internal/handler"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log.Info().Msg("Configuration loaded successfully")

	// Initialize session registry and register game kinds
	registry := game.NewRegistry()

	if err := registry.RegisterKind(avoid.Kind, avoid.Factory(avoid.Config{
		MaxSafe: cfg.Games.Avoid.MaxSafe,
		Timeout: cfg.Games.Avoid.Timeout(),
	})); err != nil {
		log.Fatal().Err(err).Msg("Failed to register avoid game")
	}

	if err := registry.RegisterKind(story.Kind, story.Factory(story.Config{
		Timeout: cfg.Games.Story.Timeout(),
	})); err != nil {
		log.Fatal().Err(err).Msg("Failed to register story game")
	}

	if err := registry.RegisterKind(tictactoe.Kind, tictactoe.Factory(tictactoe.Config{
		Timeout: cfg.Games.TicTacToe.Timeout(),
	})); err != nil {
		log.Fatal().Err(err).Msg("Failed to register tictactoe game")
	}

	if err := registry.RegisterKind(tictactoe.PickKind, tictactoe.PickerFactory(tictactoe.PickerConfig{
		Timeout: cfg.Games.TicTacToe.SelectTimeout(),
	})); err != nil {
		log.Fatal().Err(err).Msg("Failed to register difficulty picker")
	}

	log.Info().
		Strs("kinds", registry.Kinds()).
		Msg("Game kinds registered")

	// Initialize handlers and bot
	gamesHandler := handler.NewGamesHandler(cfg, registry)

	telegramBot, err := bot.New(&bot.Dependencies{
		Config:       cfg,
		Registry:     registry,
		GamesHandler: gamesHandler,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Msg("Bot is starting...")
		telegramBot.Start()
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	telegramBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}
