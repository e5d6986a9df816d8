package room

import (
	"fmt"

	"cheat-server/pkg/protocol"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	id     string
	dealer *Dealer
	code   string

	// playerID is set once the client has joined or reconnected
	// NOTE: only read or written from the dealer's run loop
	playerID string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		send:  make(chan interface{}, 256),
		Close: make(chan string, 1),
		Conn:  conn,
		id:    uuid.New().String(),
	}
}

// Send send a message to the web client
// If the client's buffer is full the message is dropped and false is returned
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Code returns the join code of the session the client is attached to
func (c *Client) Code() string {
	return c.code
}

// String returns a traceable identifier for the connection and session
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.id, c.code)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *protocol.Message) {
	if c.dealer == nil {
		logrus.WithField("client", c.String()).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}

// close asks the write loop to close the connection
func (c *Client) close(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}
