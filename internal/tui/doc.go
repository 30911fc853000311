// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal operator console. It is a thin
// bubbletea front over the REST API client: a login/register form, a menu
// of dashboard domains, a per-domain assistant chat and an account
// administration screen for admin sessions.
package tui
