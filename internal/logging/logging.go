package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Config mirrors the JSON logging configuration file loaded at session
// start. The file is a required collaborator: a missing or invalid file
// aborts startup.
type Config struct {
	Level      string `json:"level"`
	Format     string `json:"format"`
	Timestamp  string `json:"timestamp"`
	ShowCaller bool   `json:"show_caller"`
}

// LoadConfig reads and validates the logging configuration at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read logging config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse logging config %s: %w", path, err)
	}

	if _, err := logrus.ParseLevel(levelOrDefault(cfg.Level)); err != nil {
		return Config{}, fmt.Errorf("logging config %s: %w", path, err)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text", "json":
	default:
		return Config{}, fmt.Errorf("logging config %s: unknown format %q", path, cfg.Format)
	}
	return cfg, nil
}

// Apply configures the process-wide logrus logger from cfg and rebinds its
// output to sink. Called once per session, before the first log record.
func Apply(cfg Config, sink io.Writer) error {
	level, err := logrus.ParseLevel(levelOrDefault(cfg.Level))
	if err != nil {
		return err
	}

	logger := logrus.StandardLogger()
	logger.SetLevel(level)
	logger.SetReportCaller(cfg.ShowCaller)

	timestamp := strings.TrimSpace(cfg.Timestamp)
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timestamp})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  timestamp,
			DisableColors:    true,
			DisableSorting:   false,
			QuoteEmptyFields: true,
		})
	}

	logger.SetOutput(sink)
	return nil
}

func levelOrDefault(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return "info"
	}
	return level
}
