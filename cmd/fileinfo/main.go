package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/bitop-dev/fileinfo/internal/config"
)

var (
	debugMode   = flag.Bool("d", false, "Enable debug mode")
	logFile     = flag.String("log-file", "", "Log file path (logs disabled by default)")
	configPath  = flag.String("config", "config.json", "Path to config file (json)")
	interactive = flag.Bool("i", false, "Interactive mode with line editing")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logPath := *logFile
	if logPath == "" {
		logPath = cfg.LogFile
	}
	logger := initLogger(*debugMode, logPath)
	logger.Info().Msg("file_info starting")

	for _, warning := range cfg.Validate() {
		logger.Warn().Str("field", warning.Field).Msg(warning.Message)
	}

	if *interactive {
		runInteractive(logger, cfg)
		return
	}

	runServe(logger, cfg)
}

func initLogger(debug bool, logFilePath string) zerolog.Logger {
	// Set log level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Configure output. Stdout carries the wire protocol, so logs go to a
	// file or nowhere.
	var output io.Writer
	if logFilePath != "" {
		file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		output = file
	} else {
		output = io.Discard
	}

	// Create logger with timestamp
	return zerolog.New(output).With().Timestamp().Logger()
}
