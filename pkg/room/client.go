package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"pokerhall-server/pkg/player"
	"pokerhall-server/pkg/table"
)

// Client is a player connected to a table via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer

	player *player.Player
	table  *table.Table
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, pl *player.Player, tbl *table.Table) *Client {
	return &Client{
		send:   make(chan interface{}, 256),
		Close:  make(chan string),
		Conn:   conn,
		player: pl,
		table:  tbl,
	}
}

// Send sends a message to the web client
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

// Notify sends a private event straight to this client
func (c *Client) Notify(event string, payload interface{}) {
	c.Send(&Response{
		Key:  event,
		Data: payload,
	})
}

// Player returns the player this client is connected as
func (c *Client) Player() *player.Player {
	return c.player
}

// String returns a traceable identifier for the player and table
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.player.Public.Name, c.table.ID())
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
