// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/models"
)

// ConsoleUI is the terminal front the App drives. Satisfied by tui.TUI.
type ConsoleUI interface {
	// LoginFlow blocks until the operator authenticates or quits with
	// ErrUserQuit.
	LoginFlow(ctx context.Context) (models.SessionInfo, error)

	// MainLoop runs the authenticated screens. Returns nil after logout
	// and ErrUserQuit when the operator quits outright.
	MainLoop(ctx context.Context, info models.SessionInfo) error
}

// App is the operator console application: the API client plus the
// terminal UI, looped so a logout returns to the login form.
type App struct {
	ui     ConsoleUI
	logger *logger.Logger
}

// NewApp binds the console application to its terminal UI.
func NewApp(ui ConsoleUI, logger *logger.Logger) *App {
	return &App{ui: ui, logger: logger}
}

// Run drives login and main loop until the operator quits. A logout loops
// back to the login form; quitting the console is a clean exit.
func (a *App) Run() error {
	ctx := context.Background()

	for {
		info, err := a.ui.LoginFlow(ctx)
		if err != nil {
			if errors.Is(err, ErrUserQuit) {
				return nil
			}
			return fmt.Errorf("login flow: %w", err)
		}

		a.logger.Info().
			Str("username", info.Username).
			Str("role", string(info.Role)).
			Msg("session opened")

		if err = a.ui.MainLoop(ctx, info); err != nil {
			if errors.Is(err, ErrUserQuit) {
				return nil
			}
			return fmt.Errorf("console loop: %w", err)
		}
		// MainLoop returned after a logout, show the login form again.
	}
}
