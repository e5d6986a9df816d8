package room

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"cheat-server/internal/jwt"
	"cheat-server/pkg/cheat"
	"cheat-server/pkg/joincode"
	"cheat-server/pkg/protocol"

	"github.com/stretchr/testify/require"
)

func newTestPitBoss(t *testing.T, emptyTTL time.Duration) *PitBoss {
	t.Helper()

	signer, err := jwt.NewSigner("test-secret", 0)
	require.NoError(t, err)

	return NewPitBoss(Options{
		Allocator:       joincode.NewAllocator(joincode.NewMemoryStore(), rand.New(rand.NewSource(0))),
		Signer:          signer,
		RNG:             rand.New(rand.NewSource(0)),
		EmptySessionTTL: emptyTTL,
	})
}

func receive(t *testing.T, c *Client) interface{} {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a message")
		return nil
	}
}

func receiveSnapshot(t *testing.T, c *Client) *cheat.Snapshot {
	t.Helper()

	msg := receive(t, c)
	require.IsType(t, &cheat.Snapshot{}, msg)
	return msg.(*cheat.Snapshot)
}

func receiveError(t *testing.T, c *Client) protocol.ErrorBody {
	t.Helper()

	msg := receive(t, c)
	require.IsType(t, &protocol.ErrorMessage{}, msg)
	return msg.(*protocol.ErrorMessage).Error
}

func assertNoMessage(t *testing.T, c *Client) {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		t.Fatalf("unexpected message: %#v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

// connect attaches a new client and consumes the session message and lobby snapshot
func connect(t *testing.T, pb *PitBoss, code string) (*Client, string) {
	t.Helper()

	c := NewClient(nil)
	require.NoError(t, pb.ClientConnected(context.Background(), c, code, ""))

	msg := receive(t, c)
	require.IsType(t, &protocol.SessionMessage{}, msg)
	receiveSnapshot(t, c)

	return c, msg.(*protocol.SessionMessage).Session.Code
}

// join sends a join and consumes the joined message and the snapshot that follows
func join(t *testing.T, c *Client, name string) protocol.Joined {
	t.Helper()

	c.ReceivedMessage(&protocol.Message{Kind: protocol.KindJoin, Name: name})

	msg := receive(t, c)
	require.IsType(t, &protocol.JoinedMessage{}, msg)
	receiveSnapshot(t, c)

	return msg.(*protocol.JoinedMessage).Joined
}

// startGame joins alice and bob to a new session and readies them both
// Every message up to the first in-progress snapshot is consumed
func startGame(t *testing.T, pb *PitBoss) (alice, bob *Client, aliceSeat, bobSeat protocol.Joined) {
	t.Helper()

	alice, code := connect(t, pb, "")
	bob, _ = connect(t, pb, code)
	aliceSeat = join(t, alice, "alice")
	receiveSnapshot(t, bob)
	bobSeat = join(t, bob, "bob")
	receiveSnapshot(t, alice)

	alice.ReceivedMessage(&protocol.Message{Kind: protocol.KindReady})
	receiveSnapshot(t, alice)
	receiveSnapshot(t, bob)
	bob.ReceivedMessage(&protocol.Message{Kind: protocol.KindReady})
	require.Equal(t, "inProgress", receiveSnapshot(t, alice).Phase)
	receiveSnapshot(t, bob)

	return alice, bob, aliceSeat, bobSeat
}

// inRunLoop runs fn on the dealer's run loop and waits for it to finish
func inRunLoop(t *testing.T, d *Dealer, fn func()) {
	t.Helper()

	done := make(chan bool)
	require.True(t, d.exec(func() {
		fn()
		close(done)
	}))

	<-done
}
