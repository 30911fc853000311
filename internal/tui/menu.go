// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/opsboard/models"

	tea "github.com/charmbracelet/bubbletea"
)

type menuEntry struct {
	label  string
	domain models.Domain
	admin  bool
	logout bool
}

// menuModel lists the dashboard domains plus, for admin sessions, the
// account administration screen.
type menuModel struct {
	info    models.SessionInfo
	entries []menuEntry
	cursor  int
}

func newMenuModel(info models.SessionInfo) menuModel {
	entries := []menuEntry{
		{label: "Cybersecurity incidents", domain: models.DomainCyber},
		{label: "IT ticket monitoring", domain: models.DomainIT},
		{label: "Data science datasets", domain: models.DomainData},
	}
	if info.Role == models.RoleAdmin {
		entries = append(entries, menuEntry{label: "Account administration", admin: true})
	}
	entries = append(entries, menuEntry{label: "Log out", logout: true})

	return menuModel{info: info, entries: entries}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		entry := m.entries[m.cursor]
		switch {
		case entry.logout:
			return m, func() tea.Msg { return logoutRequestMsg{} }
		case entry.admin:
			return m, func() tea.Msg { return openAdminMsg{} }
		default:
			domain := entry.domain
			return m, func() tea.Msg { return openChatMsg{domain: domain} }
		}
	}

	return m, nil
}

func (m menuModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("opsboard — %s (%s)", m.info.Username, m.info.Role)))
	b.WriteString("\n\n")

	for i, entry := range m.entries {
		line := "  " + entry.label
		if i == m.cursor {
			line = selectedStyle.Render("> " + entry.label)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓ move • enter select • ctrl+c quit"))

	return appStyle.Render(b.String())
}
