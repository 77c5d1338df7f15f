package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/WinGo-Predictor/config"
	"github.com/Alias1177/WinGo-Predictor/internal/baktest"
	"github.com/Alias1177/WinGo-Predictor/internal/database"
	"github.com/Alias1177/WinGo-Predictor/internal/history"
	"github.com/Alias1177/WinGo-Predictor/internal/notify"
	"github.com/Alias1177/WinGo-Predictor/internal/runner"
	"github.com/Alias1177/WinGo-Predictor/internal/server"
	"github.com/Alias1177/WinGo-Predictor/models"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}
}

func main() {
	cfg := loadConfig()

	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	state := history.Load(cfg.HistoryFile, log.With().Str("component", "history").Logger())

	if cfg.EnableBacktest {
		runBacktest(state)
	}

	client := config.NewClient(&cfg)

	var archiver models.Archiver
	if os.Getenv("DB_HOST") != "" {
		db, err := database.New(database.ConnectionParams{
			Host:     os.Getenv("DB_HOST"),
			Port:     envOr("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			SSLMode:  envOr("DB_SSLMODE", "disable"),
		})
		if err != nil {
			log.Warn().Err(err).Msg("Database unavailable, continuing without archive")
		} else {
			archiver = db
			log.Info().Msg("Postgres archive connected")
		}
	}

	var notifier models.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramBotToken != "-" && cfg.TelegramChatID != 0 {
		tg, err := notify.New(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn().Err(err).Msg("Telegram unavailable, continuing without notifications")
		} else {
			notifier = tg
		}
	}

	r := runner.New(runner.Options{
		Client:      client,
		State:       state,
		HistoryFile: cfg.HistoryFile,
		Interval:    time.Duration(cfg.CheckInterval) * time.Second,
		Archiver:    archiver,
		Notifier:    notifier,
	})
	r.Start()

	srv := server.New(state)
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("Serving HTTP")
	if err := srv.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("HTTP server failed")
	}
}

// loadConfig reads all settings from the environment with defaults.
func loadConfig() models.Config {
	cfg := models.Config{
		FeedURL:          envOr("FEED_URL", "https://wingo-unified-api.gt.tc/api/wingo.php?type=1min"),
		HistoryFile:      envOr("HISTORY_FILE", "history.json"),
		CheckInterval:    envIntOr("CHECK_INTERVAL", 60),
		Port:             envIntOr("PORT", 5000),
		RequestTimeout:   envIntOr("REQUEST_TIMEOUT", 10),
		LogLevel:         envOr("LOG_LEVEL", "info"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if v := os.Getenv("ENABLE_BACKTEST"); v != "" {
		cfg.EnableBacktest = v == "true" || v == "1" || v == "yes"
	}

	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TelegramChatID = id
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// runBacktest replays the engine over the loaded history and logs how
// each rationale kind would have performed.
func runBacktest(state *history.State) {
	log.Info().Msg("Running replay evaluation...")
	results := baktest.Run(state.Observations())

	log.Info().
		Int("total", results.Total).
		Int("wins", results.Wins).
		Int("skipped", results.Skipped).
		Str("win_rate", fmt.Sprintf("%.2f%%", results.WinPercentage())).
		Msg("Replay evaluation finished")

	for kind, stats := range results.ByRationale {
		log.Info().
			Str("rationale", string(kind)).
			Int("total", stats.Total).
			Str("win_rate", fmt.Sprintf("%.2f%%", stats.WinPercentage())).
			Msg("Replay rationale performance")
	}
}
