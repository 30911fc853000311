package models

// AskRequest is the request body of POST /api/assistant/{domain}/ask.
type AskRequest struct {
	// Question is the user's message. Must be non-empty.
	Question string `json:"question"`

	// WithSnapshot attaches the domain data snapshot to the outgoing
	// provider request. Off by default to keep the payload small.
	WithSnapshot bool `json:"with_snapshot"`
}

// AskResponse is the response body of a successful assistant call:
// the newly appended assistant turn.
type AskResponse struct {
	Reply ChatTurn `json:"reply"`
}

// SessionInfo is the response body of GET /api/auth/session.
type SessionInfo struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// ResetPasswordRequest is the request body of the admin password reset call.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// AppBuildInfo carries the build metadata baked in via ldflags and served
// by the version endpoint.
type AppBuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
