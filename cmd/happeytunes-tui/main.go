package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/handiism/happeytunes/internal/app"
	"github.com/handiism/happeytunes/internal/audio"
	"github.com/handiism/happeytunes/internal/config"
	"github.com/handiism/happeytunes/internal/download"
	"github.com/handiism/happeytunes/internal/log"
	"github.com/handiism/happeytunes/internal/tui"
)

func main() {
	var (
		configFlag  = flag.String("config", config.DefaultPath(), "Path to config file (JSON or YAML)")
		ownerFlag   = flag.String("owner", "", "Repository owner")
		repoFlag    = flag.String("repo", "", "Repository name")
		branchFlag  = flag.String("branch", "", "Branch holding the music")
		verboseFlag = flag.Bool("verbose", false, "Write debug logs")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	settings, err := app.LoadSettings(*configFlag, app.Overrides{Owner: *ownerFlag, Repository: *repoFlag, Branch: *branchFlag})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logger, closer, err := log.NewFile(settings.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	if *verboseFlag {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	a := app.New(settings, logger)
	feed := tui.NewProgressFeed()

	err = tui.Run(tui.Options{
		Pipeline:  a.Pipeline,
		Manager:   download.NewManager(settings, a.HTTP, logger.With().Str("module", "download").Logger(), feed.Publish),
		Feed:      feed,
		Player:    audio.NewPlayer(settings.PlayerCommand, logger.With().Str("module", "player").Logger()),
		Settings:  settings,
		ExportDir: ".",
		Logger:    logger,
	})
	if err != nil {
		logger.Error().Err(err).Msg("TUI exited with error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
