// Command chessd serves chess games over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/chesscore/rules/httpapi"
	"github.com/chesscore/rules/store"
)

func main() {
	// Flags (env fallbacks).
	addr := flag.String("addr", getenv("CHESSD_ADDR", ":8080"), "listen address")
	level := flag.String("log-level", getenv("CHESSD_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	pretty := flag.Bool("pretty-log", getenb("CHESSD_PRETTY_LOG", false), "human friendly console logs instead of JSON")
	maxGames := flag.Int("max-games", getenvInt("CHESSD_MAX_GAMES", 10000), "maximum number of games held in memory (0 = unlimited)")
	flag.Parse()

	log := newLogger(*level, *pretty)

	st := store.NewMemory(log.With().Str("component", "store").Logger(), store.MaxGames(*maxGames))
	srv := httpapi.NewServer(st, log.With().Str("component", "http").Logger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Close(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	if err := srv.Listen(*addr); err != nil {
		log.Fatal().Err(err).Str("addr", *addr).Msg("http server")
	}
	log.Info().Int("games", st.Len()).Msg("stopped")
}

func newLogger(level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log = zerolog.New(os.Stderr)
	}
	log = log.Level(lvl).With().Timestamp().Logger()
	if err != nil {
		log.Warn().Str("log_level", level).Msg("unknown log level, using info")
	}
	return log
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}
