// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"

	"github.com/MKhiriev/opsboard/internal/client"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/models"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI drives the operator console screens over the REST API client.
type TUI struct {
	api    client.APIClient
	logger *logger.Logger
}

// New returns a console bound to the given API client.
func New(api client.APIClient, logger *logger.Logger) *TUI {
	return &TUI{api: api, logger: logger}
}

// LoginFlow shows the login/register form and blocks until the operator
// authenticates or quits. Returns client.ErrUserQuit on quit.
func (t *TUI) LoginFlow(ctx context.Context) (models.SessionInfo, error) {
	model, err := tea.NewProgram(newLoginModel(ctx, t.api), tea.WithAltScreen()).Run()
	if err != nil {
		t.logger.Err(err).Str("func", "*TUI.LoginFlow").Msg("error: login program failed")
		return models.SessionInfo{}, err
	}

	login, ok := model.(loginModel)
	if !ok {
		return models.SessionInfo{}, fmt.Errorf("unexpected final model %T", model)
	}
	if login.quitByUser {
		return models.SessionInfo{}, client.ErrUserQuit
	}

	return login.info, nil
}

// MainLoop shows the menu, chat and admin screens for an authenticated
// session. Returns nil after logout and client.ErrUserQuit when the
// operator quits the console outright.
func (t *TUI) MainLoop(ctx context.Context, info models.SessionInfo) error {
	model, err := tea.NewProgram(newRootModel(ctx, t.api, info), tea.WithAltScreen()).Run()
	if err != nil {
		t.logger.Err(err).Str("func", "*TUI.MainLoop").Msg("error: console program failed")
		return err
	}

	root, ok := model.(rootModel)
	if !ok {
		return fmt.Errorf("unexpected final model %T", model)
	}
	if root.quitByUser {
		return client.ErrUserQuit
	}

	return nil
}

// rootModel owns the authenticated part of the console. It swaps the
// active screen on open/back messages and runs the logout call before
// exiting on the menu's logout entry.
type rootModel struct {
	ctx  context.Context
	api  client.APIClient
	info models.SessionInfo

	screen     tea.Model
	quitByUser bool
}

func newRootModel(ctx context.Context, api client.APIClient, info models.SessionInfo) rootModel {
	return rootModel{
		ctx:    ctx,
		api:    api,
		info:   info,
		screen: newMenuModel(info),
	}
}

func (m rootModel) Init() tea.Cmd {
	return m.screen.Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitByUser = true
			return m, tea.Quit
		}
	case openChatMsg:
		m.screen = newChatModel(m.ctx, m.api, msg.domain)
		return m, m.screen.Init()
	case openAdminMsg:
		m.screen = newAdminModel(m.ctx, m.api, m.info.Username)
		return m, m.screen.Init()
	case backToMenuMsg:
		m.screen = newMenuModel(m.info)
		return m, nil
	case logoutRequestMsg:
		return m, func() tea.Msg {
			return logoutDoneMsg{err: m.api.Logout(m.ctx)}
		}
	case logoutDoneMsg:
		// A failed drop still ends the client session: the token is gone
		// either way once the console forgets it.
		return m, tea.Quit
	}

	screen, cmd := m.screen.Update(msg)
	m.screen = screen
	return m, cmd
}

func (m rootModel) View() string {
	return m.screen.View()
}
