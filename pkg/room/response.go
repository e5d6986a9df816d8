package room

import (
	"errors"

	"cheat-server/pkg/cheat"
	"cheat-server/pkg/protocol"
)

// ErrSessionNotFound is returned when a join code does not match a live session
var ErrSessionNotFound = &protocol.ValidationError{Reason: "session not found"}

// ErrInvalidToken is returned when a seat token cannot be used for the session
var ErrInvalidToken = &protocol.ValidationError{Reason: "invalid seat token"}

// ChallengeMessage is sent to every client after a challenge
type ChallengeMessage struct {
	ChallengeResult *cheat.ChallengeResult `json:"challengeResult"`
}

// NewErrorResponse returns the message sent to a client whose request failed
func NewErrorResponse(ctx string, err error) *protocol.ErrorMessage {
	body := protocol.ErrorBody{
		Kind:    protocol.ErrorKindInternal,
		Message: err.Error(),
		Context: ctx,
	}

	var rv *cheat.RuleViolation
	var ve *protocol.ValidationError
	switch {
	case errors.As(err, &rv):
		body.Kind = protocol.ErrorKindRuleViolation
		body.Code = rv.Code
	case errors.As(err, &ve):
		body.Kind = protocol.ErrorKindValidation
	default:
		body.Message = "internal error"
	}

	return &protocol.ErrorMessage{Error: body}
}
