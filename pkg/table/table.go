package table

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"pokerhall-server/internal/config"
	"pokerhall-server/pkg/deck"
	"pokerhall-server/pkg/player"
	"pokerhall-server/pkg/potledger"
)

// Phase is the current betting phase of a table
type Phase string

// phase constants
const (
	PhaseNone       Phase = ""
	PhaseSmallBlind Phase = "smallBlind"
	PhaseBigBlind   Phase = "bigBlind"
	PhasePreflop    Phase = "preflop"
	PhaseFlop       Phase = "flop"
	PhaseTurn       Phase = "turn"
	PhaseRiver      Phase = "river"
)

// lastPlayerToAct sentinel for the blind phases.
// Seat counts are capped below this value, so it can never match a live seat
const blindPhaseSentinel = 10

// EmitFunc delivers a table-wide event.
// The payload is only valid for the duration of the call; marshal it before returning
type EmitFunc func(event string, payload interface{})

// LogEntry rides on the table-data broadcast and is cleared after every emit
type LogEntry struct {
	Message      string `json:"message"`
	Action       string `json:"action"`
	Seat         int    `json:"seat"`
	Notification string `json:"notification"`
}

// Data is the public table state included in every broadcast
type Data struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Seats              []*player.Data `json:"seats"`
	SeatsCount         int            `json:"seatsCount"`
	PlayersSeatedCount int            `json:"playersSeatedCount"`
	SmallBlind         int            `json:"smallBlind"`
	BigBlind           int            `json:"bigBlind"`
	MinBuyIn           int            `json:"minBuyIn"`
	MaxBuyIn           int            `json:"maxBuyIn"`
	Phase              Phase          `json:"phase"`
	Board              []string       `json:"board"`
	ActiveSeat         int            `json:"activeSeat"`
	DealerSeat         int            `json:"dealerSeat"`
	BiggestBet         int            `json:"biggestBet"`
	Log                *LogEntry      `json:"log"`
}

// Options configures a new table
type Options struct {
	SeatsCount    int
	SmallBlind    int
	BigBlind      int
	MinBuyIn      int
	MaxBuyIn      int
	AllInDelay    time.Duration
	ShowdownDelay time.Duration
}

// DefaultOptions returns table options from the loaded configuration
func DefaultOptions() Options {
	cfg := config.Instance()
	return Options{
		SeatsCount:    cfg.Table.SeatsCount,
		SmallBlind:    cfg.Table.SmallBlind,
		BigBlind:      cfg.Table.BigBlind,
		MinBuyIn:      cfg.Table.MinBuyIn,
		MaxBuyIn:      cfg.Table.MaxBuyIn,
		AllInDelay:    time.Duration(cfg.Delay.AllIn) * time.Millisecond,
		ShowdownDelay: time.Duration(cfg.Delay.Showdown) * time.Millisecond,
	}
}

// Table is the turn and phase state machine for a single game.
// Tables never share mutable state; all exported methods serialize on the table mutex
type Table struct {
	mu sync.Mutex

	options Options
	public  *Data
	seats   []*player.Player
	deck    *deck.Deck
	pot     *potledger.Pot
	logger  logrus.FieldLogger
	emitter EmitFunc

	gameIsOn              bool
	headsUp               bool
	playersSittingInCount int
	playersInHandCount    int
	lastPlayerToAct       int

	deckSeed int64
	timer    *time.Timer
	timerGen int
}

// New returns a new table
func New(id, name string, options Options, emitter EmitFunc) *Table {
	if options.SeatsCount <= 0 || options.SeatsCount > blindPhaseSentinel {
		panic("seats count must be between 1 and 10")
	}

	if emitter == nil {
		emitter = func(string, interface{}) {}
	}

	return &Table{
		options:         options,
		seats:           make([]*player.Player, options.SeatsCount),
		deck:            deck.New(),
		pot:             potledger.New(),
		logger:          logrus.WithField("table", id),
		emitter:         emitter,
		lastPlayerToAct: -1,
		public: &Data{
			ID:         id,
			Name:       name,
			Seats:      make([]*player.Data, options.SeatsCount),
			SeatsCount: options.SeatsCount,
			SmallBlind: options.SmallBlind,
			BigBlind:   options.BigBlind,
			MinBuyIn:   options.MinBuyIn,
			MaxBuyIn:   options.MaxBuyIn,
			Board:      make([]string, 5),
			ActiveSeat: -1,
			DealerSeat: -1,
			Log:        &LogEntry{Seat: -1},
		},
	}
}

// ID returns the table identifier
func (t *Table) ID() string {
	return t.public.ID
}

// Name returns the table name
func (t *Table) Name() string {
	return t.public.Name
}

// PlayersSeatedCount returns the number of occupied seats
func (t *Table) PlayersSeatedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.public.PlayersSeatedCount
}

// SeatsCount returns the number of seats at the table
func (t *Table) SeatsCount() int {
	return t.public.SeatsCount
}

// State marshals the public table state while holding the table lock
func (t *Table) State() json.RawMessage {
	t.mu.Lock()
	defer t.mu.Unlock()

	b, err := json.Marshal(t.public)
	if err != nil {
		t.logger.WithError(err).Error("could not marshal table state")
		return json.RawMessage("{}")
	}

	return b
}

// FindNextPlayer scans clockwise from offset for a seat matching any of the statuses
// The scan wraps all the way around to offset itself; -1 means no seat matched
func (t *Table) FindNextPlayer(offset int, statuses ...Status) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.findNextPlayer(offset, statuses...)
}

// FindPreviousPlayer scans counter-clockwise from offset for a seat matching any of the statuses
func (t *Table) FindPreviousPlayer(offset int, statuses ...Status) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.findPreviousPlayer(offset, statuses...)
}

// StopGame immediately stops the game and clears the round state
func (t *Table) StopGame() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopGame()
}

func (t *Table) findNextPlayer(offset int, statuses ...Status) int {
	n := t.public.SeatsCount
	for i := offset + 1; i < n; i++ {
		if t.seatMatches(i, statuses) {
			return i
		}
	}

	for i := 0; i <= offset && i < n; i++ {
		if t.seatMatches(i, statuses) {
			return i
		}
	}

	return -1
}

func (t *Table) findPreviousPlayer(offset int, statuses ...Status) int {
	n := t.public.SeatsCount
	for i := offset - 1; i >= 0; i-- {
		if t.seatMatches(i, statuses) {
			return i
		}
	}

	for i := n - 1; i >= offset && i >= 0; i-- {
		if t.seatMatches(i, statuses) {
			return i
		}
	}

	return -1
}

// seatMatches returns true if the seat is occupied and matches any of the statuses
func (t *Table) seatMatches(seat int, statuses []Status) bool {
	d := t.public.Seats[seat]
	if d == nil {
		return false
	}

	for _, s := range statuses {
		if s.matches(d) {
			return true
		}
	}

	return false
}

// otherPlayersAreAllIn returns true if every other in-hand player has no chips behind
func (t *Table) otherPlayersAreAllIn() bool {
	for seat, pl := range t.seats {
		if pl == nil || !pl.Public.InHand || seat == t.public.ActiveSeat {
			continue
		}

		if pl.Public.ChipsInPlay > 0 {
			return false
		}
	}

	return true
}

// emitEvent broadcasts the event and then clears the log entry
func (t *Table) emitEvent(event string, payload interface{}) {
	t.emitter(event, payload)
	t.log(LogEntry{Seat: -1})
}

func (t *Table) log(entry LogEntry) {
	t.public.Log = &entry

	if entry.Message != "" {
		t.logger.WithFields(logrus.Fields{
			"action": entry.Action,
			"seat":   entry.Seat,
		}).Debug(entry.Message)
	}
}

// schedule arms the table timer. Any previously pending timer is invalidated
func (t *Table) schedule(d time.Duration, fn func()) {
	t.cancelTimer()

	gen := t.timerGen
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		if gen != t.timerGen {
			// the round this timer belonged to is gone
			return
		}

		t.timer = nil
		fn()
	})
}

func (t *Table) cancelTimer() {
	t.timerGen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Table) removeAllCardsFromPlay() {
	for _, pl := range t.seats {
		if pl != nil {
			pl.RemoveCards()
		}
	}
}

func (t *Table) stopGame() {
	t.public.Phase = PhaseNone
	t.pot.Reset()
	t.public.ActiveSeat = -1
	t.public.Board = make([]string, 5)
	t.public.BiggestBet = 0
	t.lastPlayerToAct = -1
	t.removeAllCardsFromPlay()
	t.gameIsOn = false
	t.cancelTimer()
	t.emitEvent("gameStopped", t.public)
}

func (t *Table) dealCards(n int) []*deck.Card {
	cards, err := t.deck.Deal(n)
	if err != nil {
		// a 52-card deck always covers a full hand; running out means corrupted state
		panic(err)
	}

	return cards
}
