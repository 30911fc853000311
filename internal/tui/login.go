// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/opsboard/internal/client"
	"github.com/MKhiriev/opsboard/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginModel is the login/register form. Ctrl+R toggles between the two
// modes; register creates the account and opens its session in one step.
type loginModel struct {
	ctx context.Context
	api client.APIClient

	inputs     []textinput.Model
	focusIndex int
	register   bool
	busy       bool
	errText    string

	info       models.SessionInfo
	quitByUser bool
}

func newLoginModel(ctx context.Context, api client.APIClient) loginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return loginModel{
		ctx:    ctx,
		api:    api,
		inputs: []textinput.Model{username, password},
	}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitByUser = true
			return m, tea.Quit
		case "ctrl+r":
			m.register = !m.register
			m.errText = ""
			return m, nil
		case "tab", "shift+tab", "up", "down":
			return m.moveFocus(msg.String()), nil
		case "enter":
			if m.busy {
				return m, nil
			}
			username := strings.TrimSpace(m.inputs[0].Value())
			password := m.inputs[1].Value()
			if username == "" || password == "" {
				m.errText = "username and password are required"
				return m, nil
			}
			m.busy = true
			m.errText = ""
			return m, m.cmdAuthenticate(username, password)
		}

	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.info = msg.info
		return m, tea.Quit
	}

	return m.updateInputs(msg)
}

func (m loginModel) moveFocus(key string) loginModel {
	if key == "shift+tab" || key == "up" {
		m.focusIndex--
	} else {
		m.focusIndex++
	}
	if m.focusIndex < 0 {
		m.focusIndex = len(m.inputs) - 1
	}
	if m.focusIndex >= len(m.inputs) {
		m.focusIndex = 0
	}

	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m loginModel) updateInputs(msg tea.Msg) (loginModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

// cmdAuthenticate registers or logs in, then resolves the session identity
// so the menu knows the granted role.
func (m loginModel) cmdAuthenticate(username, password string) tea.Cmd {
	return func() tea.Msg {
		var err error
		if m.register {
			err = m.api.Register(m.ctx, username, password)
		} else {
			err = m.api.Login(m.ctx, username, password)
		}
		if err != nil {
			return authDoneMsg{err: err}
		}

		info, err := m.api.Session(m.ctx)
		if err != nil {
			return authDoneMsg{err: err}
		}
		return authDoneMsg{info: info}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	title := "Sign in to opsboard"
	if m.register {
		title = "Create an opsboard account"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString("\n" + statusStyle.Render("authenticating..."))
	}
	if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render(m.errText))
	}

	action := "sign in"
	if m.register {
		action = "register"
	}
	b.WriteString("\n\n" + helpStyle.Render(fmt.Sprintf(
		"enter %s • ctrl+r switch mode • tab next field • esc quit", action)))

	return appStyle.Render(b.String())
}
