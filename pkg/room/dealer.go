package room

import (
	"sync"
	"time"

	"cheat-server/pkg/bot"
	"cheat-server/pkg/cheat"
	"cheat-server/pkg/protocol"

	"github.com/sirupsen/logrus"
)

// Dealer is responsible for controlling a single session
// Every change to the game happens on the dealer's run loop
type Dealer struct {
	pitBoss *PitBoss
	code    string
	game    *cheat.Game
	clients map[*Client]bool
	lock    sync.RWMutex
	log     logrus.FieldLogger

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once

	// idleTimer ends an in-progress session nobody is connected to
	// NOTE: only read or written from the run loop
	idleTimer *time.Timer
	// botTimer is the bot's next turn to act
	// NOTE: only read or written from the run loop
	botTimer *time.Timer
	// botJudged is the last play the bot has considered calling out
	botJudged cheat.LastPlay
}

// Summary is the public view of a session
type Summary struct {
	Code    string   `json:"code"`
	Phase   string   `json:"phase"`
	Players []string `json:"players"`
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, code string) *Dealer {
	log := logrus.WithField("code", code)

	game := cheat.NewGame(code, pitBoss.rng, log)
	if pitBoss.botName != "" {
		game.EnableBot(pitBoss.botName)
	}

	return &Dealer{
		pitBoss:       pitBoss,
		code:          code,
		game:          game,
		clients:       make(map[*Client]bool),
		log:           log,
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Code returns the session's join code
func (d *Dealer) Code() string {
	return d.code
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// ClientCount returns the number of connected clients
func (d *Dealer) ClientCount() int {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return len(d.clients)
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec queues fn on the run loop
// false is returned if the dealer has ended its shift
func (d *Dealer) exec(fn func()) bool {
	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// AddClient adds a client
// A non-empty playerID rebinds the client to that player's seat
// This method must return quickly
func (d *Dealer) AddClient(client *Client, playerID string) {
	d.lock.Lock()
	client.dealer = d
	client.code = d.code
	d.clients[client] = true
	d.lock.Unlock()

	d.exec(func() {
		d.stopIdleTimer()
		client.Send(&protocol.SessionMessage{Session: protocol.SessionInfo{Code: d.code}})

		if playerID == "" {
			d.sendSnapshot(client)
			return
		}

		if _, ok := d.game.Player(playerID); !ok {
			client.Send(NewErrorResponse("", ErrInvalidToken))
			d.sendSnapshot(client)
			return
		}

		for _, other := range d.Clients() {
			if other != client && other.playerID == playerID {
				other.playerID = ""
				other.close("connected from another location")
			}
		}

		if err := d.game.Reconnect(playerID); err != nil {
			d.log.WithError(err).Error("could not reconnect player")
			client.Send(NewErrorResponse("", err))
			return
		}

		client.playerID = playerID
		d.sendJoined(client)
		d.broadcast()
	})
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) {
	d.lock.Lock()
	delete(d.clients, client)
	d.lock.Unlock()

	d.exec(func() {
		if client.playerID != "" {
			if err := d.disconnect(client); err != nil {
				d.log.WithError(err).WithField("client", client.String()).Error("could not disconnect player")
			}

			d.broadcast()
		}

		d.checkVacant()
	})
}

// checkVacant ends the session once nobody is connected to it
// A game in progress is kept for reconnects until every player has left or the
// idle TTL passes.
// NOTE: must only be called from the run loop
func (d *Dealer) checkVacant() {
	if d.ClientCount() > 0 {
		return
	}

	if d.game.Phase() != cheat.PhaseInProgress || d.game.AllLeft() {
		// NOTE: the pit boss lock cannot be taken from the run loop
		go d.pitBoss.endIfEmpty(d)
		return
	}

	ttl := d.pitBoss.idleTTL
	if ttl <= 0 || d.idleTimer != nil {
		return
	}

	d.log.WithField("ttl", ttl).Info("session idle")
	d.idleTimer = time.AfterFunc(ttl, func() {
		d.pitBoss.endIfEmpty(d)
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) stopIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}
}

// disconnect unbinds the client from its player
// The player is only marked as disconnected if no other connection is bound to them
// NOTE: must only be called from the run loop
func (d *Dealer) disconnect(client *Client) error {
	playerID := client.playerID
	client.playerID = ""

	for _, other := range d.Clients() {
		if other != client && other.playerID == playerID {
			return nil
		}
	}

	return d.game.Disconnect(playerID)
}

// Summary returns the public view of the session
func (d *Dealer) Summary() (*Summary, error) {
	result := make(chan *Summary, 1)
	ok := d.exec(func() {
		players := d.game.Players()
		s := &Summary{
			Code:    d.code,
			Phase:   d.game.Phase().String(),
			Players: make([]string, len(players)),
		}

		for i, p := range players {
			s.Players[i] = p.Name
		}

		result <- s
	})

	if !ok {
		return nil, ErrSessionNotFound
	}

	select {
	case s := <-result:
		return s, nil
	case <-d.close:
		return nil, ErrSessionNotFound
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *protocol.Message) {
	d.exec(func() {
		if err := d.handle(c, msg); err != nil {
			d.sendError(c, msg.Context, err)
		}
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) handle(c *Client, msg *protocol.Message) error {
	log := d.log.WithFields(logrus.Fields{
		"client": c.String(),
		"kind":   msg.Kind.String(),
	})

	if msg.Kind == protocol.KindJoin {
		if c.playerID != "" {
			return cheat.ErrAlreadyJoined
		}

		playerID, err := d.game.Join(msg.Name)
		if err != nil {
			return err
		}

		c.playerID = playerID
		d.sendJoined(c)
		d.broadcast()
		return nil
	}

	if c.playerID == "" {
		return cheat.ErrPlayerNotFound
	}

	switch msg.Kind {
	case protocol.KindReady:
		if _, err := d.game.MarkReady(c.playerID); err != nil {
			return err
		}
	case protocol.KindDiscard:
		if err := d.game.Play(c.playerID, msg.Cards, msg.ClaimRank); err != nil {
			return err
		}
	case protocol.KindCallout:
		if err := d.callout(c.playerID); err != nil {
			return err
		}
	case protocol.KindLeave:
		playerID := c.playerID
		if err := d.game.Leave(playerID); err != nil {
			return err
		}

		c.playerID = ""
		c.close("left the session")
		for _, client := range d.Clients() {
			if client.playerID == playerID {
				client.playerID = ""
				client.close("left the session")
			}
		}
	default:
		log.Warn("unknown message")
		return nil
	}

	d.broadcast()
	return nil
}

// callout resolves a challenge and sends the result to every client
// NOTE: must only be called from the run loop
func (d *Dealer) callout(playerID string) error {
	result, err := d.game.Challenge(playerID)
	if err != nil {
		return err
	}

	for _, client := range d.Clients() {
		if !client.Send(&ChallengeMessage{ChallengeResult: result}) {
			d.log.WithField("to", client.String()).Warn("client buffer full, dropped challenge result")
		}
	}

	return nil
}

// scheduleBots gives the bot a chance to act after botDelay
// NOTE: must only be called from the run loop
func (d *Dealer) scheduleBots() {
	if d.pitBoss.botName == "" || d.botTimer != nil || d.game.Phase() != cheat.PhaseInProgress {
		return
	}

	// nobody is watching
	if d.ClientCount() == 0 {
		return
	}

	d.botTimer = time.AfterFunc(d.pitBoss.botDelay, func() {
		d.exec(func() {
			d.botTimer = nil
			d.playBots()
		})
	})
}

// playBots lets the first bot with something to do make a single move
// NOTE: must only be called from the run loop
func (d *Dealer) playBots() {
	if d.game.Phase() != cheat.PhaseInProgress {
		return
	}

	for _, p := range d.game.Players() {
		if !p.Bot {
			continue
		}

		view := bot.NewView(d.game, p.ID)
		view.Judged = view.Last == d.botJudged
		d.botJudged = view.Last

		action, ok := bot.Decide(view, d.pitBoss.rng)
		if !ok {
			continue
		}

		log := d.log.WithField("bot", p.Name)
		var err error
		if action.Callout {
			err = d.callout(p.ID)
		} else {
			err = d.game.Play(p.ID, action.Cards, action.ClaimRank)
		}

		if err != nil {
			log.WithError(err).Error("bot could not act")
			continue
		}

		log.WithField("callout", action.Callout).Debug("bot acted")
		d.broadcast()
		return
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendError(c *Client, ctx string, err error) {
	resp := NewErrorResponse(ctx, err)
	log := d.log.WithError(err).WithField("client", c.String())

	switch resp.Error.Kind {
	case protocol.ErrorKindRuleViolation:
		log.Info("rule violation")
	case protocol.ErrorKindValidation:
		log.Warn("invalid message")
	default:
		log.Error("could not perform action")
	}

	c.Send(resp)
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendJoined(c *Client) {
	token, err := d.pitBoss.signer.Sign(c.playerID, d.code)
	if err != nil {
		d.log.WithError(err).Error("could not sign seat token")
	}

	c.Send(&protocol.JoinedMessage{Joined: protocol.Joined{
		PlayerID: c.playerID,
		Code:     d.code,
		Token:    token,
	}})
}

// sendSnapshot sends the client its view of the session
// Clients that have not joined only follow the lobby
// NOTE: must only be called from the run loop
func (d *Dealer) sendSnapshot(c *Client) {
	if c.playerID == "" && d.game.Phase() != cheat.PhaseLobby {
		return
	}

	if !c.Send(d.game.GetPlayerState(c.playerID)) {
		d.log.WithField("client", c.String()).Warn("client buffer full, dropped snapshot")
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcast() {
	for _, client := range d.Clients() {
		d.sendSnapshot(client)
	}

	d.scheduleBots()
}
