package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"roomcrawl/internal/audio"
	"roomcrawl/internal/config"
	"roomcrawl/internal/game"
	"roomcrawl/internal/system"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a YAML tuning file")
	seed := flag.Int64("seed", 0, "Run seed (0 picks one from the clock)")
	mute := flag.Bool("mute", false, "Disable sound")
	debug := flag.Bool("debug", false, "Log at debug level")
	flag.Parse()

	logger, closeLog := openLog(*debug)
	defer closeLog()

	tuning, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	var sink system.Sink = system.NopSink{}
	if !*mute {
		if p, err := audio.New(logger); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer p.Close()
			sink = p
		}
	}

	g, err := game.New(tuning, *seed, logger, sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	g.Run(ctx)
}

// openLog writes to $XDG_STATE_HOME/roomcrawl/roomcrawl.log so log lines
// never land on the game screen. Logging is dropped when the file cannot be
// opened.
func openLog(debug bool) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	dir, err := stateDir()
	if err != nil {
		return discard, func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "roomcrawl.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return discard, func() {}
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), func() { f.Close() }
}

// stateDir returns $XDG_STATE_HOME/roomcrawl, defaulting to
// ~/.local/state/roomcrawl.
func stateDir() (string, error) {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "roomcrawl"), nil
}
