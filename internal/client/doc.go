// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the operator console runtime.
//
// It wires the terminal UI and the REST API client into a single process
// lifecycle: login, per-domain assistant chat, and user administration
// against a running opsboard server.
package client
