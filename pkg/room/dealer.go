package room

import (
	"encoding/json"
	"html"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"pokerhall-server/pkg/table"
)

// Dealer runs a single table: it relays table broadcasts to the connected
// clients and turns client messages into table actions
type Dealer struct {
	pitBoss *PitBoss
	table   *table.Table
	clients map[*Client]bool
	lock    sync.RWMutex

	chatLog []*chatMessage

	broadcast     chan *Response
	execInRunLoop chan func()
	close         chan bool
}

// NewDealer creates the table and the dealer that runs it
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, id, name string, options table.Options) *Dealer {
	d := &Dealer{
		pitBoss:       pitBoss,
		clients:       make(map[*Client]bool),
		broadcast:     make(chan *Response, 256),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}

	d.table = table.New(id, name, options, d.emitTableEvent)
	return d
}

// Table returns the table this dealer runs
func (d *Dealer) Table() *table.Table {
	return d.table
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

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	log := logrus.WithFields(logrus.Fields{
		"table": d.table.ID(),
		"name":  d.table.Name(),
	})

	log.Debug("creating dealer run loop")
	for {
		select {
		case msg := <-d.broadcast:
			for _, client := range d.Clients() {
				client.Send(msg)
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// emitTableEvent is the table's broadcast hook. The payload is only valid
// while the table holds its lock, so it is marshaled here and the raw bytes
// are handed to the run loop
func (d *Dealer) emitTableEvent(event string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).WithField("event", event).Error("could not marshal table event")
		return
	}

	msg := &Response{
		Key:  event,
		Data: json.RawMessage(raw),
	}

	select {
	case d.broadcast <- msg:
	default:
		logrus.WithField("event", event).Warn("broadcast queue is full, dropping event")
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	client.player.SetNotifier(client)

	d.execInRunLoop <- func() {
		client.Send(&Response{
			Key:  "table-data",
			Data: json.RawMessage(d.table.State()),
		})

		for _, msg := range d.chatLog {
			client.Send(&Response{Key: "chat", Data: msg})
		}
	}
}

// RemoveClient removes a client and frees the player's seat
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) {
	d.lock.Lock()
	delete(d.clients, client)
	d.lock.Unlock()

	client.player.SetNotifier(nil)

	d.execInRunLoop <- func() {
		if client.player.TableID() == d.table.ID() {
			d.table.PlayerLeft(client.player.Seat())
		}
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	d.execInRunLoop <- func() {
		if err := d.performAction(c, msg); err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(OK(msg.Context))
	}
}

// NOTE: this must only be called from within the run loop
func (d *Dealer) performAction(c *Client, msg *PayloadIn) error {
	switch msg.Action {
	case "sitOnTable":
		return d.table.SeatPlayer(c.player, msg.Seat, msg.Amount)
	case "sitIn":
		return d.table.SitIn(c.player.Seat())
	case "sitOut":
		return d.table.SitOut(c.player.Seat())
	case "leaveTable":
		d.table.PlayerLeft(c.player.Seat())
		return nil
	case "postBlind":
		return d.table.PostBlind(c.player.Seat(), msg.Post)
	case "check":
		return d.table.Check(c.player.Seat())
	case "call":
		return d.table.Call(c.player.Seat())
	case "bet":
		return d.table.Bet(c.player.Seat(), msg.Amount)
	case "raise":
		return d.table.Raise(c.player.Seat(), msg.Amount)
	case "fold":
		return d.table.Fold(c.player.Seat())
	case "sendMessage":
		return d.sendChatMessage(c, msg.Message)
	default:
		logrus.WithField("msg", msg).Warn("unknown message")
		return ErrUnknownAction
	}
}

// NOTE: this must only be called from within the run loop
func (d *Dealer) sendChatMessage(c *Client, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	msg := newChatMessage(c.player.Public.Name, html.EscapeString(text))
	d.addChatMessage(msg)

	for _, client := range d.Clients() {
		client.Send(&Response{Key: "chat", Data: msg})
	}

	return nil
}
