package mux

import (
	"encoding/json"
	"net/http"
	"time"

	"cheat-server/pkg/protocol"
	"cheat-server/pkg/room"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10
const maxMessageSize = 4096

var upgrader = &websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// getCheatWS opens a connection to the session in ?code=
// Without a code (or a seat token) a new session is created
func (m *Mux) getCheatWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.serveWS(w, r, r.FormValue("code"), r.FormValue("token"))
	}
}

func (m *Mux) getSessionWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.serveWS(w, r, mux.Vars(r)["code"], r.FormValue("token"))
	}
}

func (m *Mux) serveWS(w http.ResponseWriter, r *http.Request, code, token string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("could not upgrade connected")
		return
	}

	client := room.NewClient(conn)
	log := logrus.WithFields(logrus.Fields{
		"client":     client.String(),
		"remoteAddr": remoteAddr(r),
	})

	if err := m.pitBoss.ClientConnected(r.Context(), client, code, token); err != nil {
		log.WithError(err).Info("could not attach client to session")

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(room.NewErrorResponse("", err))
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "could not join session"))
		_ = conn.Close()
		return
	}

	log.WithField("code", client.Code()).Debug("client attached")

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	waitForCloseFrame := make(chan bool)
	defer func() {
		m.pitBoss.ClientDisconnected(client)
		_ = conn.Close()
		close(waitForCloseFrame)
	}()

	go m.webSocketWriteLoop(client, waitForCloseFrame)
	m.webSocketReadLoop(client)
}

func (m *Mux) webSocketWriteLoop(client *room.Client, waitForCloseFrame chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-client.Close:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			// wait for the close frame
			select {
			case <-waitForCloseFrame:
			case <-time.After(time.Second):
			}
			return
		case msg, ok := <-client.SendChan():
			if !ok {
				return
			}

			if logrus.IsLevelEnabled(logrus.TraceLevel) {
				msgBytes, _ := json.Marshal(msg)
				logrus.WithField("message", string(msgBytes)).WithField("client", client.String()).Trace("sending message to client")
			}

			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).WithField("client", client.String()).Error("could not write message")
				return
			}
		}
	}
}

func (m *Mux) webSocketReadLoop(client *room.Client) {
	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("client", client.String()).Warn("could not read message")
			}

			client.CloseError = err
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			logrus.WithError(err).WithField("client", client.String()).Warn("invalid message")
			client.Send(room.NewErrorResponse("", err))
			continue
		}

		client.ReceivedMessage(msg)
	}
}
