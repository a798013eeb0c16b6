package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/orderdesk/internal/config"
	"github.com/jask/orderdesk/internal/logging"
	"github.com/jask/orderdesk/internal/session"
	"github.com/jask/orderdesk/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// One session per process. The exchange handle, log sink and selected tab
	// live here and survive every re-render.
	sess := session.New()

	// The logging configuration is a required collaborator: load it, rebind
	// its output to the session's capture sink, and only then let anything
	// log. A missing or invalid file aborts startup.
	logCfg, err := logging.LoadConfig(cfg.Logging.ConfigPath)
	if err != nil {
		log.Fatalf("logging config: %v", err)
	}
	sink := sess.LogSink(func() *logging.CaptureSink {
		return logging.NewCaptureSink(cfg.Logging.MaxLines)
	})
	if err := logging.Apply(logCfg, sink); err != nil {
		log.Fatalf("logging: %v", err)
	}

	p := tea.NewProgram(tui.New(ctx, cfg, sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
