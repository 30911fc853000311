// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated: no transport address configured, nothing to run.
var errNoServersAreCreated = errors.New("no servers are created")
