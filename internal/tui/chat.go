// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/opsboard/internal/client"
	"github.com/MKhiriev/opsboard/models"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// visibleTurns caps how much history the chat screen renders. The server
// keeps the full bounded window; the console only shows the tail.
const visibleTurns = 12

const statusTimeout = 3 * time.Second

// chatModel is the assistant chat of one dashboard domain. Ctrl+S toggles
// whether the next question carries the domain data snapshot.
type chatModel struct {
	ctx    context.Context
	api    client.APIClient
	domain models.Domain

	input        textinput.Model
	turns        []models.ChatTurn
	withSnapshot bool
	busy         bool
	status       string
	errText      string
}

func newChatModel(ctx context.Context, api client.APIClient, domain models.Domain) chatModel {
	input := textinput.New()
	input.Placeholder = "ask the assistant"
	input.CharLimit = 512
	input.Focus()

	return chatModel{
		ctx:    ctx,
		api:    api,
		domain: domain,
		input:  input,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.cmdLoadHistory())
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }
		case "ctrl+s":
			m.withSnapshot = !m.withSnapshot
			return m, nil
		case "ctrl+y":
			return m, m.cmdCopyLastReply()
		case "ctrl+l":
			return m, m.cmdClearHistory()
		case "enter":
			if m.busy {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.busy = true
			m.errText = ""
			m.input.Reset()
			// Echo the question immediately; the server records it too,
			// even when the provider call fails.
			m.turns = append(m.turns, models.ChatTurn{
				Speaker:   models.SpeakerUser,
				Text:      question,
				CreatedAt: time.Now(),
			})
			return m, m.cmdAsk(question)
		}

	case historyLoadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.turns = msg.turns
		return m, nil

	case askDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.turns = append(m.turns, msg.reply)
		return m, nil

	case historyClearedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.turns = nil
		m.status = "history cleared"
		return m, clearStatusAfter()

	case copiedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.status = "reply copied to clipboard"
		return m, clearStatusAfter()

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) cmdLoadHistory() tea.Cmd {
	return func() tea.Msg {
		turns, err := m.api.History(m.ctx, m.domain)
		return historyLoadedMsg{turns: turns, err: err}
	}
}

func (m chatModel) cmdAsk(question string) tea.Cmd {
	req := models.AskRequest{Question: question, WithSnapshot: m.withSnapshot}
	return func() tea.Msg {
		reply, err := m.api.Ask(m.ctx, m.domain, req)
		return askDoneMsg{reply: reply, err: err}
	}
}

func (m chatModel) cmdClearHistory() tea.Cmd {
	return func() tea.Msg {
		return historyClearedMsg{err: m.api.ClearHistory(m.ctx, m.domain)}
	}
}

func (m chatModel) cmdCopyLastReply() tea.Cmd {
	var last string
	for i := len(m.turns) - 1; i >= 0; i-- {
		if m.turns[i].Speaker == models.SpeakerAssistant {
			last = m.turns[i].Text
			break
		}
	}
	return func() tea.Msg {
		if last == "" {
			return copiedMsg{err: fmt.Errorf("no assistant reply to copy")}
		}
		return copiedMsg{err: clipboard.WriteAll(last)}
	}
}

func clearStatusAfter() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m chatModel) View() string {
	var b strings.Builder

	snapshot := "off"
	if m.withSnapshot {
		snapshot = "on"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s assistant — snapshot %s", m.domain, snapshot)))
	b.WriteString("\n\n")

	turns := m.turns
	if len(turns) > visibleTurns {
		turns = turns[len(turns)-visibleTurns:]
	}
	if len(turns) == 0 {
		b.WriteString(helpStyle.Render("no conversation yet") + "\n")
	}
	for _, turn := range turns {
		switch turn.Speaker {
		case models.SpeakerUser:
			b.WriteString(userTurnStyle.Render("you: "+turn.Text) + "\n")
		default:
			b.WriteString(assistantTurnStyle.Render("assistant: "+turn.Text) + "\n")
		}
	}

	b.WriteString("\n" + m.input.View() + "\n")

	if m.busy {
		b.WriteString("\n" + statusStyle.Render("waiting for the assistant..."))
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render(m.errText))
	}

	b.WriteString("\n\n" + helpStyle.Render(
		"enter ask • ctrl+s toggle snapshot • ctrl+y copy last reply • ctrl+l clear history • esc back"))

	return appStyle.Render(b.String())
}
