package tui

import "github.com/MKhiriev/opsboard/models"

// authDoneMsg carries the outcome of a login or register attempt.
type authDoneMsg struct {
	info models.SessionInfo
	err  error
}

// askDoneMsg carries the assistant reply for the question in flight.
type askDoneMsg struct {
	reply models.ChatTurn
	err   error
}

// historyLoadedMsg carries the chat history of the opened domain.
type historyLoadedMsg struct {
	turns []models.ChatTurn
	err   error
}

// historyClearedMsg reports the result of a clear-history call.
type historyClearedMsg struct {
	err error
}

// usersLoadedMsg carries the account list for the admin screen.
type usersLoadedMsg struct {
	users []models.Summary
	err   error
}

// adminActionDoneMsg reports the result of a create, delete or password
// reset. The list is reloaded on success.
type adminActionDoneMsg struct {
	status string
	err    error
}

// copiedMsg reports the result of copying the last reply to the clipboard.
type copiedMsg struct {
	err error
}

// clearStatusMsg wipes a transient status line after its display timeout.
type clearStatusMsg struct{}

// openChatMsg switches the root model to the chat screen of a domain.
type openChatMsg struct {
	domain models.Domain
}

// openAdminMsg switches the root model to the account administration screen.
type openAdminMsg struct{}

// backToMenuMsg returns the root model to the menu screen.
type backToMenuMsg struct{}

// logoutRequestMsg asks the root model to drop the session and exit.
type logoutRequestMsg struct{}

// logoutDoneMsg reports the server-side session drop before exit.
type logoutDoneMsg struct {
	err error
}
