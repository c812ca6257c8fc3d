package room

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pokerhall-server/internal/config"
	"pokerhall-server/internal/util"
	"pokerhall-server/pkg/player"
	"pokerhall-server/pkg/table"
	"pokerhall-server/pkg/token"
)

// registration and lobby errors
var (
	ErrScreenNameRequired = errors.New("screen name is required")
	ErrScreenNameTaken    = errors.New("screen name is already taken")
	ErrUnknownAction      = errors.New("unknown action")
	ErrEmptyMessage       = errors.New("message must not be empty")
)

// TableInfo is a lobby listing for a single table
type TableInfo struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	SeatsCount         int    `json:"seatsCount"`
	PlayersSeatedCount int    `json:"playersSeatedCount"`
}

// PitBoss owns the player registry and dispatches players to tables
type PitBoss struct {
	lock    sync.RWMutex
	players map[string]*player.Player
	names   map[string]bool
	dealers map[string]*Dealer

	connect    chan *Client
	disconnect chan *Client
}

// NewPitBoss returns a new dispatch object
func NewPitBoss() *PitBoss {
	return &PitBoss{
		players:    make(map[string]*player.Player),
		names:      make(map[string]bool),
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("player", client.String()).Debug("client connected")
			dealer, found := p.dealerByID(client.table.ID())
			if !found {
				logrus.WithField("table", client.table.ID()).WithField("type", "exception").Error("table not found")
				continue
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("player", client.String()).Debug("client disconnected")
			dealer, found := p.dealerByID(client.table.ID())
			if !found {
				logrus.WithField("table", client.table.ID()).WithField("type", "exception").Error("table not found")
				continue
			}

			dealer.RemoveClient(client)
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}

// RegisterPlayer creates a player with a unique screen name and a starting
// bankroll, and returns the player along with their access token
func (p *PitBoss) RegisterPlayer(name string) (*player.Player, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", ErrScreenNameRequired
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	key := strings.ToLower(name)
	if p.names[key] {
		return nil, "", ErrScreenNameTaken
	}

	id, err := token.Generate(40)
	if err != nil {
		return nil, "", err
	}
	pl := player.New(name, config.Instance().StartingChips, nil)
	p.players[id] = pl
	p.names[key] = true

	logrus.WithFields(logrus.Fields{
		"player": name,
		"id":     id,
	}).Info("player registered")

	return pl, id, nil
}

// Player looks up a registered player by session identifier
func (p *PitBoss) Player(id string) (*player.Player, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	pl, ok := p.players[id]
	return pl, ok
}

// CreateTable opens a new table and starts its dealer.
// An empty name gets a generated one
func (p *PitBoss) CreateTable(name string) *table.Table {
	name = strings.TrimSpace(name)
	if name == "" {
		name = util.GetRandomName()
	}

	id := uuid.New().String()
	dealer := NewDealer(p, id, name, table.DefaultOptions())
	dealer.StartShift()

	p.lock.Lock()
	p.dealers[id] = dealer
	p.lock.Unlock()

	logrus.WithFields(logrus.Fields{
		"table": id,
		"name":  name,
	}).Info("table created")

	return dealer.Table()
}

// Table looks up a table by its identifier
func (p *PitBoss) Table(id string) (*table.Table, bool) {
	dealer, ok := p.dealerByID(id)
	if !ok {
		return nil, false
	}

	return dealer.Table(), true
}

// Tables returns a lobby listing of every open table
func (p *PitBoss) Tables() []TableInfo {
	p.lock.RLock()
	defer p.lock.RUnlock()

	tables := make([]TableInfo, 0, len(p.dealers))
	for _, dealer := range p.dealers {
		tbl := dealer.Table()
		tables = append(tables, TableInfo{
			ID:                 tbl.ID(),
			Name:               tbl.Name(),
			SeatsCount:         tbl.SeatsCount(),
			PlayersSeatedCount: tbl.PlayersSeatedCount(),
		})
	}

	return tables
}

func (p *PitBoss) dealerByID(id string) (*Dealer, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealer, ok := p.dealers[id]
	return dealer, ok
}
