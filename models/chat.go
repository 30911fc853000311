package models

import (
	"fmt"
	"time"
)

// Speaker is the closed set of chat participants.
type Speaker string

const (
	// SpeakerUser marks a turn typed by the authenticated user.
	SpeakerUser Speaker = "user"

	// SpeakerAssistant marks a reply produced by a completion provider.
	SpeakerAssistant Speaker = "assistant"
)

// ChatTurn is one entry in a per-domain conversation. Turns are append-only:
// once recorded they are never mutated, only cleared wholesale when the user
// clears history or the session ends.
type ChatTurn struct {
	ID        string    `json:"id"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Domain identifies one dashboard page with its own chat history, role
// prompt and data snapshot.
type Domain string

const (
	// DomainCyber is the cybersecurity incidents dashboard.
	DomainCyber Domain = "cyber"

	// DomainIT is the IT ticket monitoring dashboard.
	DomainIT Domain = "it"

	// DomainData is the data science datasets dashboard.
	DomainData Domain = "data"
)

// ParseDomain converts a raw string (typically a URL segment) into a Domain.
func ParseDomain(s string) (Domain, error) {
	switch Domain(s) {
	case DomainCyber:
		return DomainCyber, nil
	case DomainIT:
		return DomainIT, nil
	case DomainData:
		return DomainData, nil
	default:
		return "", fmt.Errorf("unknown domain %q", s)
	}
}
