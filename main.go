// relay - a terminal client for the relay messaging service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/relay-tui/internal/api"
	"github.com/jeranaias/relay-tui/internal/config"
	"github.com/jeranaias/relay-tui/internal/session"
	"github.com/jeranaias/relay-tui/internal/storage"
	"github.com/jeranaias/relay-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "version") {
		fmt.Printf("relay %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "relay is an interactive terminal application; run it in a TTY")
		os.Exit(1)
	}

	// Load configuration at startup
	cfg := config.Global()

	client := api.NewClient(
		cfg.Server.BaseURL,
		api.WithTimeout(time.Duration(cfg.Server.TimeoutSecs)*time.Second),
		api.WithRateLimit(cfg.Server.RateLimitPerSec),
	)

	storageDir, err := cfg.StorageDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving storage directory: %v\n", err)
		os.Exit(1)
	}
	sessions := session.NewStore(client, storage.NewSessionStore(storageDir))

	m := app.New(cfg, client, sessions)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	// Pick up config edits while the program runs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = config.Watch(ctx, func(c *config.Config) {
			client.SetBaseURL(c.Server.BaseURL)
		})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running relay: %v\n", err)
		os.Exit(1)
	}
}
