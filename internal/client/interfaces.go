// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/opsboard/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// APIClient is the console's view of the opsboard REST API. Implementations
// hold the bearer token obtained by Register or Login and attach it to all
// subsequent authenticated calls.
type APIClient interface {
	// Register creates an account and opens a session for it.
	Register(ctx context.Context, username, password string) error

	// Login authenticates and stores the session token.
	Login(ctx context.Context, username, password string) error

	// Logout drops the server-side session and clears the stored token.
	Logout(ctx context.Context) error

	// Session returns the identity behind the stored token.
	Session(ctx context.Context) (models.SessionInfo, error)

	// Ask sends one assistant question for the given dashboard domain.
	Ask(ctx context.Context, domain models.Domain, req models.AskRequest) (models.ChatTurn, error)

	// History returns the chat turns of the given domain in append order.
	History(ctx context.Context, domain models.Domain) ([]models.ChatTurn, error)

	// ClearHistory drops the chat turns of the given domain.
	ClearHistory(ctx context.Context, domain models.Domain) error

	// ListUsers returns all accounts. Requires an admin session.
	ListUsers(ctx context.Context) ([]models.Summary, error)

	// CreateUser creates an account with an explicit role. Requires an
	// admin session.
	CreateUser(ctx context.Context, user models.User) (models.Summary, error)

	// DeleteUser removes an account. Requires an admin session.
	DeleteUser(ctx context.Context, username string) error

	// ResetPassword replaces an account's password. Requires an admin
	// session.
	ResetPassword(ctx context.Context, username, newPassword string) error

	// ServerVersion returns the server's semantic version string.
	ServerVersion(ctx context.Context) (string, error)
}
