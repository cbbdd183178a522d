package model

// LoginStatus is the state of a session.
type LoginStatus string

const (
	StatusUnset         LoginStatus = "unset"
	StatusFailed        LoginStatus = "failed"
	StatusAuthenticated LoginStatus = "authenticated"
)

// SessionState is the per-request view of the session cookie. It is computed
// by the session middleware on every request and passed through request
// locals as a value; nothing holds it across requests.
type SessionState struct {
	Status         LoginStatus `json:"status"`
	Username       string      `json:"username,omitempty"`
	Name           string      `json:"name,omitempty"`
	Role           Role        `json:"role,omitempty"`
	ShowAdminPanel bool        `json:"showAdminPanel"`
}

// Anonymous returns the zero session.
func Anonymous() SessionState {
	return SessionState{Status: StatusUnset}
}
