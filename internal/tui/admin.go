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

type adminMode int

const (
	adminModeList adminMode = iota
	adminModeCreate
	adminModeReset
	adminModeConfirmDelete
)

// adminModel is the account administration screen: a user list with
// inline forms for create, delete and password reset.
type adminModel struct {
	ctx      context.Context
	api      client.APIClient
	operator string

	mode   adminMode
	users  []models.Summary
	cursor int

	inputs     []textinput.Model
	focusIndex int
	asAdmin    bool

	busy    bool
	status  string
	errText string
}

func newAdminModel(ctx context.Context, api client.APIClient, operator string) adminModel {
	return adminModel{ctx: ctx, api: api, operator: operator}
}

func (m adminModel) Init() tea.Cmd {
	return m.cmdLoadUsers()
}

func (m adminModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == adminModeList {
			return m.updateList(msg)
		}
		return m.updateForm(msg)

	case usersLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.users = msg.users
		if m.cursor >= len(m.users) {
			m.cursor = max(len(m.users)-1, 0)
		}
		return m, nil

	case adminActionDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.mode = adminModeList
		m.status = msg.status
		m.errText = ""
		return m, tea.Batch(m.cmdLoadUsers(), clearStatusAfter())

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	if m.mode == adminModeCreate || m.mode == adminModeReset {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m adminModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return backToMenuMsg{} }
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.users)-1 {
			m.cursor++
		}
	case "n":
		m.mode = adminModeCreate
		m.asAdmin = false
		m.inputs = newUserForm()
		m.focusIndex = 0
		m.errText = ""
	case "r":
		if len(m.users) == 0 {
			return m, nil
		}
		m.mode = adminModeReset
		m.inputs = newPasswordForm()
		m.focusIndex = 0
		m.errText = ""
	case "d":
		if len(m.users) == 0 {
			return m, nil
		}
		m.mode = adminModeConfirmDelete
		m.errText = ""
	}
	return m, nil
}

func (m adminModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = adminModeList
		m.errText = ""
		return m, nil
	case "ctrl+a":
		if m.mode == adminModeCreate {
			m.asAdmin = !m.asAdmin
		}
		return m, nil
	case "tab", "shift+tab":
		return m.moveFocus(msg.String()), nil
	case "enter", "y":
		if msg.String() == "y" && m.mode != adminModeConfirmDelete {
			break
		}
		if m.busy {
			return m, nil
		}
		return m.submit()
	case "n":
		if m.mode == adminModeConfirmDelete {
			m.mode = adminModeList
			return m, nil
		}
	}

	if m.mode == adminModeCreate || m.mode == adminModeReset {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m adminModel) submit() (tea.Model, tea.Cmd) {
	switch m.mode {
	case adminModeCreate:
		username := strings.TrimSpace(m.inputs[0].Value())
		password := m.inputs[1].Value()
		if username == "" || password == "" {
			m.errText = "username and password are required"
			return m, nil
		}
		role := models.RoleUser
		if m.asAdmin {
			role = models.RoleAdmin
		}
		m.busy = true
		return m, m.cmdCreateUser(models.User{Username: username, Password: password, Role: role})

	case adminModeReset:
		password := m.inputs[0].Value()
		if password == "" {
			m.errText = "password is required"
			return m, nil
		}
		m.busy = true
		return m, m.cmdResetPassword(m.users[m.cursor].Username, password)

	case adminModeConfirmDelete:
		m.busy = true
		return m, m.cmdDeleteUser(m.users[m.cursor].Username)
	}
	return m, nil
}

func (m adminModel) moveFocus(key string) adminModel {
	if key == "shift+tab" {
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

func (m adminModel) updateInputs(msg tea.Msg) (adminModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func newUserForm() []textinput.Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return []textinput.Model{username, password}
}

func newPasswordForm() []textinput.Model {
	password := textinput.New()
	password.Placeholder = "new password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.Focus()

	return []textinput.Model{password}
}

func (m adminModel) cmdLoadUsers() tea.Cmd {
	return func() tea.Msg {
		users, err := m.api.ListUsers(m.ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m adminModel) cmdCreateUser(user models.User) tea.Cmd {
	return func() tea.Msg {
		created, err := m.api.CreateUser(m.ctx, user)
		if err != nil {
			return adminActionDoneMsg{err: err}
		}
		return adminActionDoneMsg{status: fmt.Sprintf("created %s (%s)", created.Username, created.Role)}
	}
}

func (m adminModel) cmdDeleteUser(username string) tea.Cmd {
	return func() tea.Msg {
		if err := m.api.DeleteUser(m.ctx, username); err != nil {
			return adminActionDoneMsg{err: err}
		}
		return adminActionDoneMsg{status: fmt.Sprintf("deleted %s", username)}
	}
}

func (m adminModel) cmdResetPassword(username, password string) tea.Cmd {
	return func() tea.Msg {
		if err := m.api.ResetPassword(m.ctx, username, password); err != nil {
			return adminActionDoneMsg{err: err}
		}
		return adminActionDoneMsg{status: fmt.Sprintf("password reset for %s", username)}
	}
}

func (m adminModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Account administration"))
	b.WriteString("\n\n")

	for i, user := range m.users {
		label := fmt.Sprintf("%s (%s)", user.Username, user.Role)
		if user.Username == m.operator {
			label += " — you"
		}
		line := "  " + label
		if i == m.cursor {
			line = selectedStyle.Render("> " + label)
		}
		b.WriteString(line + "\n")
	}
	if len(m.users) == 0 {
		b.WriteString(helpStyle.Render("no accounts") + "\n")
	}

	switch m.mode {
	case adminModeCreate:
		role := models.RoleUser
		if m.asAdmin {
			role = models.RoleAdmin
		}
		b.WriteString("\n" + titleStyle.Render("New account") + "\n")
		for i := range m.inputs {
			b.WriteString(m.inputs[i].View() + "\n")
		}
		b.WriteString(helpStyle.Render(fmt.Sprintf("role: %s (ctrl+a toggle)", role)) + "\n")

	case adminModeReset:
		b.WriteString("\n" + titleStyle.Render(
			fmt.Sprintf("Reset password for %s", m.users[m.cursor].Username)) + "\n")
		b.WriteString(m.inputs[0].View() + "\n")

	case adminModeConfirmDelete:
		b.WriteString("\n" + errorStyle.Render(
			fmt.Sprintf("Delete %s? y/n", m.users[m.cursor].Username)) + "\n")
	}

	if m.busy {
		b.WriteString("\n" + statusStyle.Render("working..."))
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render(m.errText))
	}

	switch m.mode {
	case adminModeList:
		b.WriteString("\n\n" + helpStyle.Render(
			"↑/↓ move • n new user • r reset password • d delete • esc back"))
	default:
		b.WriteString("\n\n" + helpStyle.Render("enter submit • esc cancel"))
	}

	return appStyle.Render(b.String())
}
