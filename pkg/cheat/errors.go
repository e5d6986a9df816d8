package cheat

// RuleViolation is an action the rules do not allow
// The session state is never changed when one is returned
type RuleViolation struct {
	// Code is a stable identifier clients can switch on
	Code    string
	Message string
}

func (r *RuleViolation) Error() string {
	return r.Message
}

// rule violations
var (
	ErrNotYourTurn        = &RuleViolation{Code: "NotYourTurn", Message: "it is not your turn"}
	ErrEmptyPlay          = &RuleViolation{Code: "EmptyPlay", Message: "you must discard at least one card"}
	ErrCardNotOwned       = &RuleViolation{Code: "CardNotOwned", Message: "you do not have that card"}
	ErrInvalidRank        = &RuleViolation{Code: "InvalidRank", Message: "that rank cannot be claimed"}
	ErrNothingToChallenge = &RuleViolation{Code: "NothingToChallenge", Message: "there is nothing to challenge"}
	ErrSessionFull        = &RuleViolation{Code: "SessionFull", Message: "the session is full"}
	ErrInvalidName        = &RuleViolation{Code: "InvalidName", Message: "name must be between 1 and 12 characters"}
	ErrInvalidPlayerCount = &RuleViolation{Code: "InvalidPlayerCount", Message: "invalid number of players"}
	ErrGameNotStarted     = &RuleViolation{Code: "GameNotStarted", Message: "the game has not started"}
	ErrGameIsOver         = &RuleViolation{Code: "GameOver", Message: "the game is over"}
	ErrPlayerNotFound     = &RuleViolation{Code: "PlayerNotFound", Message: "player not found"}
	ErrAlreadyJoined      = &RuleViolation{Code: "AlreadyJoined", Message: "you have already joined"}
	ErrNameTaken          = &RuleViolation{Code: "NameTaken", Message: "that name is already taken"}
)
