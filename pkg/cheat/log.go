package cheat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const logMessageLimit = 25

// LogMessage is an entry in the session's action log
// If PlayerIDs is empty, it's a general statement
type LogMessage struct {
	UUID      string    `json:"uuid"`
	PlayerIDs []string  `json:"playerIds"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

func newLogMessage(playerIDs []string, format string, a ...interface{}) *LogMessage {
	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}

// addLogMessage keeps only the most recent logMessageLimit entries
func (g *Game) addLogMessage(playerIDs []string, format string, a ...interface{}) {
	m := append(g.logMessages, newLogMessage(playerIDs, format, a...))
	if count := len(m); count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	g.logMessages = m
}

// LogMessages returns the retained log messages, oldest first
func (g *Game) LogMessages() []*LogMessage {
	return append([]*LogMessage{}, g.logMessages...)
}
