package protocol

// SessionInfo identifies the session a connection is attached to
type SessionInfo struct {
	Code string `json:"code"`
}

// SessionMessage is sent once a connection is attached to a session
type SessionMessage struct {
	Session SessionInfo `json:"session"`
}

// Joined is sent to a player after a successful join or reconnect
// The token lets the player reclaim the seat on a new connection.
type Joined struct {
	PlayerID string `json:"playerId"`
	Code     string `json:"code"`
	Token    string `json:"token"`
}

// JoinedMessage wraps Joined
type JoinedMessage struct {
	Joined Joined `json:"joined"`
}

// error kinds
const (
	ErrorKindValidation    = "validation"
	ErrorKindRuleViolation = "ruleViolation"
	ErrorKindInternal      = "internal"
)

// ErrorBody describes a rejected message
type ErrorBody struct {
	Kind    string `json:"kind"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// ErrorMessage is only ever sent to the connection that caused it
type ErrorMessage struct {
	Error ErrorBody `json:"error"`
}
