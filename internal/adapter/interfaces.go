// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with external completion providers.
//
// The primary abstraction is [CompletionProvider]: an ordered list of
// role-tagged messages in, one reply text or an error out. The package ships
// an OpenAI-compatible chat-completions implementation ([NewChatProvider])
// that works against any provider speaking that wire format (OpenAI,
// OpenRouter and the like). Providers are interchangeable; the assistant
// service selects between a primary and a fallback by availability, never by
// content.
package adapter

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/completion_provider_mock.go -package=mock

// Message is one role-tagged text turn of a completion request.
// Role is one of "system", "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionProvider sends an ordered message list to an external completion
// API and returns the reply text. Implementations must honour context
// cancellation and bound every call with their configured request timeout.
type CompletionProvider interface {
	// Name identifies the provider in logs ("primary", "fallback").
	Name() string

	// Complete performs one completion call. Any transport failure, non-2xx
	// status, or empty reply is reported as an error; the caller decides
	// whether to fall back.
	Complete(ctx context.Context, messages []Message) (string, error)
}
