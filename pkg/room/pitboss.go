package room

import (
	"context"
	"sync"
	"time"

	"cheat-server/internal/rng"
	"cheat-server/pkg/joincode"

	"github.com/sirupsen/logrus"
)

// CodeAllocator hands out and takes back join codes
type CodeAllocator interface {
	Allocate(ctx context.Context) (string, error)
	Release(ctx context.Context, code string) error
}

// SeatSigner issues and checks the tokens players use to reclaim a seat
type SeatSigner interface {
	Sign(playerID, code string) (string, error)
	Validate(token string) (playerID, code string, err error)
}

// Options configures a PitBoss
type Options struct {
	Allocator CodeAllocator
	Signer    SeatSigner

	// RNG shuffles the deck, defaults to rng.Crypto
	RNG rng.Generator

	// EmptySessionTTL ends sessions that nobody has connected to
	// Zero disables the check
	EmptySessionTTL time.Duration

	// IdleSessionTTL ends games in progress once every connection has been gone this long
	// Zero keeps them until every player has left
	IdleSessionTTL time.Duration

	// BotName seats a computer player in every game that has room for it
	// Empty disables the bot
	BotName string
	// BotDelay is how long the bot waits before acting
	BotDelay time.Duration
}

// PitBoss is responsible for dispatching players to sessions
type PitBoss struct {
	dealers   map[string]*Dealer
	lock      sync.Mutex
	allocator CodeAllocator
	signer    SeatSigner
	rng       rng.Generator
	emptyTTL  time.Duration
	idleTTL   time.Duration
	botName   string
	botDelay  time.Duration
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(opts Options) *PitBoss {
	gen := opts.RNG
	if gen == nil {
		gen = rng.Crypto{}
	}

	return &PitBoss{
		dealers:   make(map[string]*Dealer),
		allocator: opts.Allocator,
		signer:    opts.Signer,
		rng:       gen,
		emptyTTL:  opts.EmptySessionTTL,
		idleTTL:   opts.IdleSessionTTL,
		botName:   opts.BotName,
		botDelay:  opts.BotDelay,
	}
}

// CreateSession creates an empty session and returns its dealer
func (p *PitBoss) CreateSession(ctx context.Context) (*Dealer, error) {
	code, err := p.allocator.Allocate(ctx)
	if err != nil {
		return nil, err
	}

	p.lock.Lock()
	dealer := p.startDealer(code)
	p.lock.Unlock()

	if p.emptyTTL > 0 {
		time.AfterFunc(p.emptyTTL, func() {
			p.endIfEmpty(dealer)
		})
	}

	return dealer, nil
}

// Session returns the dealer for the code
func (p *PitBoss) Session(code string) (*Dealer, bool) {
	code, ok := joincode.Normalize(code)
	if !ok {
		return nil, false
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	dealer, found := p.dealers[code]
	return dealer, found
}

// SessionCount returns the number of live sessions
func (p *PitBoss) SessionCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()

	return len(p.dealers)
}

// ClientConnected is called when a client connects to the server
// An empty code and token creates a new session. A token rebinds the client to its seat.
func (p *PitBoss) ClientConnected(ctx context.Context, client *Client, code, token string) error {
	var playerID string
	if token != "" {
		tokenPlayerID, tokenCode, err := p.signer.Validate(token)
		if err != nil {
			logrus.WithError(err).WithField("client", client.String()).Info("rejected seat token")
			return ErrInvalidToken
		}

		if code == "" {
			code = tokenCode
		} else if normalized, _ := joincode.Normalize(code); normalized != tokenCode {
			return ErrInvalidToken
		}

		playerID = tokenPlayerID
	}

	if code == "" {
		newCode, err := p.allocator.Allocate(ctx)
		if err != nil {
			return err
		}

		p.lock.Lock()
		defer p.lock.Unlock()

		p.startDealer(newCode).AddClient(client, "")
		logrus.WithField("client", client.String()).Debug("client connected")
		return nil
	}

	code, ok := joincode.Normalize(code)
	if !ok {
		return ErrSessionNotFound
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	dealer, found := p.dealers[code]
	if !found {
		return ErrSessionNotFound
	}

	dealer.AddClient(client, playerID)
	logrus.WithField("client", client.String()).Debug("client connected")
	return nil
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	logrus.WithField("client", client.String()).Debug("client disconnected")

	p.lock.Lock()
	defer p.lock.Unlock()

	dealer, found := p.dealers[client.code]
	if !found {
		logrus.WithField("code", client.code).WithField("type", "exception").Error("session not found")
		return
	}

	dealer.RemoveClient(client)
}

// NOTE: caller must hold the lock
func (p *PitBoss) startDealer(code string) *Dealer {
	dealer := NewDealer(p, code)
	dealer.StartShift()
	p.dealers[code] = dealer

	logrus.WithField("code", code).Info("session created")
	return dealer
}

// NOTE: caller must hold the lock
func (p *PitBoss) endSession(dealer *Dealer) {
	dealer.EndShift()
	delete(p.dealers, dealer.code)

	if err := p.allocator.Release(context.Background(), dealer.code); err != nil {
		logrus.WithError(err).WithField("code", dealer.code).Error("could not release join code")
	}

	logrus.WithField("code", dealer.code).Info("session ended")
}

func (p *PitBoss) endIfEmpty(dealer *Dealer) {
	p.lock.Lock()
	defer p.lock.Unlock()

	// the code may have been released and handed to a newer session
	if p.dealers[dealer.code] != dealer || dealer.ClientCount() > 0 {
		return
	}

	p.endSession(dealer)
}
