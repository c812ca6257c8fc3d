package table

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokerhall-server/pkg/player"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) emit(event string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return ""
	}
	return r.events[len(r.events)-1]
}

type promptRecorder struct {
	mu     sync.Mutex
	events []string
}

func (p *promptRecorder) Notify(event string, _ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *promptRecorder) lastPrompt() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.events) - 1; i >= 0; i-- {
		if p.events[i] != "dealingCards" {
			return p.events[i]
		}
	}
	return ""
}

func testOptions() Options {
	return Options{
		SeatsCount:    10,
		SmallBlind:    5,
		BigBlind:      10,
		MinBuyIn:      100,
		MaxBuyIn:      1000,
		AllInDelay:    10 * time.Millisecond,
		ShowdownDelay: 10 * time.Millisecond,
	}
}

func chipsInPlay(t *Table) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := t.pot.Total()
	for _, pl := range t.seats {
		if pl != nil {
			total += pl.Public.ChipsInPlay + pl.Public.Bet
		}
	}
	return total
}

func TestNew(t *testing.T) {
	a := assert.New(t)

	tbl := New("id", "Lucky Mustang", testOptions(), nil)
	a.Equal("id", tbl.ID())
	a.Equal("Lucky Mustang", tbl.Name())
	a.Equal(PhaseNone, tbl.public.Phase)
	a.Equal(-1, tbl.public.ActiveSeat)
	a.Equal(-1, tbl.public.DealerSeat)
	a.Len(tbl.public.Board, 5)

	a.Panics(func() {
		New("id", "bad", Options{SeatsCount: 11}, nil)
	})
}

func TestSeatPlayer_Validation(t *testing.T) {
	a := assert.New(t)
	rec := &recorder{}
	tbl := New("id", "test", testOptions(), rec.emit)

	p1 := player.New("alice", 1000, nil)

	a.Equal(ErrInvalidSeat, tbl.SeatPlayer(p1, -1, 200))
	a.Equal(ErrInvalidSeat, tbl.SeatPlayer(p1, 10, 200))

	err := tbl.SeatPlayer(p1, 3, 50)
	a.EqualError(err, "buy-in must be between 100 and 1000")

	poor := player.New("bob", 150, nil)
	a.Equal(ErrNotEnoughChips, tbl.SeatPlayer(poor, 3, 200))

	// nothing was broadcast for the rejected attempts
	a.Zero(rec.count())

	a.NoError(tbl.SeatPlayer(p1, 3, 200))
	a.Equal(3, p1.Seat())
	a.Equal("id", p1.TableID())
	a.Equal(800, p1.Chips())
	a.Equal(200, p1.Public.ChipsInPlay)

	p2 := player.New("carol", 1000, nil)
	a.Equal(ErrSeatTaken, tbl.SeatPlayer(p2, 3, 200))
	a.Equal(ErrAlreadySeated, tbl.SeatPlayer(p1, 4, 200))
}

func TestGameStartsWithTwoPlayers(t *testing.T) {
	a := assert.New(t)
	rec := &recorder{}
	tbl := New("id", "test", testOptions(), rec.emit)

	n1 := &promptRecorder{}
	p1 := player.New("alice", 1000, n1)
	a.NoError(tbl.SeatPlayer(p1, 0, 500))
	a.Equal(PhaseNone, tbl.public.Phase)
	a.False(tbl.gameIsOn)

	n2 := &promptRecorder{}
	p2 := player.New("bob", 1000, n2)
	a.NoError(tbl.SeatPlayer(p2, 1, 500))

	a.True(tbl.gameIsOn)
	a.Equal(PhaseSmallBlind, tbl.public.Phase)
	a.Equal(0, tbl.public.DealerSeat)

	// heads-up the dealer posts the small blind
	a.Equal(0, tbl.public.ActiveSeat)
	a.Equal("postSmallBlind", n1.lastPrompt())
	a.Empty(n2.lastPrompt())
}

func TestBlindsAndPreflop(t *testing.T) {
	a := assert.New(t)
	tbl := New("id", "test", testOptions(), nil)

	n1 := &promptRecorder{}
	n2 := &promptRecorder{}
	p1 := player.New("alice", 1000, n1)
	p2 := player.New("bob", 1000, n2)
	a.NoError(tbl.SeatPlayer(p1, 0, 500))
	a.NoError(tbl.SeatPlayer(p2, 1, 500))

	a.NoError(tbl.PostBlind(0, true))
	a.Equal(PhaseBigBlind, tbl.public.Phase)
	a.Equal(5, p1.Public.Bet)
	a.Equal("postBigBlind", n2.lastPrompt())

	a.NoError(tbl.PostBlind(1, true))
	a.Equal(PhasePreflop, tbl.public.Phase)
	a.Equal(10, p2.Public.Bet)
	a.Equal(10, tbl.public.BiggestBet)

	a.True(p1.Public.HasCards)
	a.True(p2.Public.HasCards)
	a.Len(p1.HoleCards(), 2)

	// hole cards stay private until shown
	a.Nil(p1.Public.Cards)

	// the small blind acts first before the flop, always into a betted pot
	a.Equal(0, tbl.public.ActiveSeat)
	a.Equal("actBettedPot", n1.lastPrompt())
	a.Equal(1, tbl.lastPlayerToAct)
}

func TestIllegalActions(t *testing.T) {
	a := assert.New(t)
	rec := &recorder{}
	tbl := New("id", "test", testOptions(), rec.emit)

	p1 := player.New("alice", 1000, nil)
	p2 := player.New("bob", 1000, nil)
	a.NoError(tbl.SeatPlayer(p1, 0, 500))
	a.NoError(tbl.SeatPlayer(p2, 1, 500))

	// blinds must come from the active seat
	a.Equal(ErrNotYourTurn, tbl.PostBlind(1, true))
	a.Equal(ErrInvalidPhase, tbl.Check(0))

	a.NoError(tbl.PostBlind(0, true))
	a.NoError(tbl.PostBlind(1, true))

	before := rec.count()
	a.Equal(ErrNotYourTurn, tbl.Fold(1))
	a.Equal(ErrCannotCheck, tbl.Check(0))
	a.Equal(ErrPotAlreadyBet, tbl.Bet(0, 20))
	a.Equal(ErrBetTooSmall, tbl.Raise(0, 0))
	a.Equal(ErrNotEnoughChips, tbl.Raise(0, 1000))
	a.Equal(ErrNotSeated, tbl.Call(5))
	a.Equal(before, rec.count())

	a.NoError(tbl.Call(0))
	a.Equal(ErrNothingToCall, tbl.Call(1))
}

func TestFoldEndsHand(t *testing.T) {
	a := assert.New(t)
	tbl := New("id", "test", testOptions(), nil)

	p1 := player.New("alice", 1000, nil)
	p2 := player.New("bob", 1000, nil)
	a.NoError(tbl.SeatPlayer(p1, 0, 500))
	a.NoError(tbl.SeatPlayer(p2, 1, 500))

	a.NoError(tbl.PostBlind(0, true))
	a.NoError(tbl.PostBlind(1, true))
	a.NoError(tbl.Fold(0))

	// bob sweeps both blinds and the next hand begins with the button moved
	a.Equal(495, p1.Public.ChipsInPlay)
	a.Equal(505, p2.Public.ChipsInPlay)
	a.Equal(PhaseSmallBlind, tbl.public.Phase)
	a.Equal(1, tbl.public.DealerSeat)
	a.Equal(1, tbl.public.ActiveSeat)
	a.True(tbl.pot.IsEmpty())
}

func TestCheckdownToShowdown(t *testing.T) {
	a := assert.New(t)
	rec := &recorder{}
	tbl := New("id", "test", testOptions(), rec.emit)
	tbl.deckSeed = 42

	n1 := &promptRecorder{}
	n2 := &promptRecorder{}
	p1 := player.New("alice", 1000, n1)
	p2 := player.New("bob", 1000, n2)
	a.NoError(tbl.SeatPlayer(p1, 0, 500))
	a.NoError(tbl.SeatPlayer(p2, 1, 500))

	a.NoError(tbl.PostBlind(0, true))
	a.NoError(tbl.PostBlind(1, true))
	a.NoError(tbl.Call(0))
	a.NoError(tbl.Check(1))

	a.Equal(PhaseFlop, tbl.public.Phase)
	a.Equal(20, tbl.pot.Total())
	a.Zero(tbl.public.BiggestBet)
	boardCards := 0
	for _, c := range tbl.public.Board {
		if c != "" {
			boardCards++
		}
	}
	a.Equal(3, boardCards)

	// the player left of the button acts first after the flop
	a.Equal(1, tbl.public.ActiveSeat)
	a.Equal("actNotBettedPot", n2.lastPrompt())

	a.NoError(tbl.Check(1))
	a.NoError(tbl.Check(0))
	a.Equal(PhaseTurn, tbl.public.Phase)

	a.NoError(tbl.Check(1))
	a.NoError(tbl.Check(0))
	a.Equal(PhaseRiver, tbl.public.Phase)
	a.NotEmpty(tbl.public.Board[4])

	a.NoError(tbl.Check(1))
	a.NoError(tbl.Check(0))

	// showdown ran; at least one hand was revealed
	shown := p1.Public.Cards != nil || p2.Public.Cards != nil
	a.True(shown)
	a.NotNil(p1.EvaluatedHand())
	a.NotNil(p2.EvaluatedHand())

	// the round ends on a timer and the next hand begins
	time.Sleep(200 * time.Millisecond)

	tbl.mu.Lock()
	a.Equal(PhaseSmallBlind, tbl.public.Phase)
	a.Equal(1, tbl.public.DealerSeat)
	tbl.mu.Unlock()

	a.Equal(1000, chipsInPlay(tbl))
}

func TestBetAndRaise(t *testing.T) {
	a := assert.New(t)
	tbl := New("id", "test", testOptions(), nil)

	p1 := player.New("alice", 1000, nil)
	p2 := player.New("bob", 1000, nil)
	a.NoError(tbl.SeatPlayer(p1, 0, 500))
	a.NoError(tbl.SeatPlayer(p2, 1, 500))

	a.NoError(tbl.PostBlind(0, true))
	a.NoError(tbl.PostBlind(1, true))

	a.NoError(tbl.Raise(0, 20))
	a.Equal(30, tbl.public.BiggestBet)
	a.Equal(30, p1.Public.Bet)
	a.Equal(1, tbl.public.ActiveSeat)

	a.NoError(tbl.Call(1))
	a.Equal(PhaseFlop, tbl.public.Phase)

	a.Equal(ErrPotNotBet, tbl.Raise(1, 20))
	a.NoError(tbl.Bet(1, 40))
	a.Equal(40, tbl.public.BiggestBet)

	a.NoError(tbl.Raise(0, 60))
	a.Equal(100, tbl.public.BiggestBet)
	a.Equal(100, p1.Public.Bet)
}

func TestAllInRunout(t *testing.T) {
	a := assert.New(t)
	tbl := New("id", "test", testOptions(), nil)

	p1 := player.New("alice", 2000, nil)
	p2 := player.New("bob", 2000, nil)
	a.NoError(tbl.SeatPlayer(p1, 0, 1000))
	a.NoError(tbl.SeatPlayer(p2, 1, 100))

	a.NoError(tbl.PostBlind(0, true))
	a.NoError(tbl.PostBlind(1, true))

	a.NoError(tbl.Raise(0, 990))
	a.Equal(1000, p1.Public.Bet)
	a.Zero(p1.Public.ChipsInPlay)

	a.NoError(tbl.Call(1))
	a.Zero(p2.Public.ChipsInPlay)

	// both players are all in; the board runs out on timers
	time.Sleep(500 * time.Millisecond)

	tbl.mu.Lock()
	phase := tbl.public.Phase
	tbl.mu.Unlock()

	// either bob busted and the game stopped, or he doubled up and a new
	// hand is underway
	a.Contains([]Phase{PhaseNone, PhaseSmallBlind}, phase)
	a.Equal(1100, chipsInPlay(tbl))
	a.True(tbl.pot.IsEmpty())
}

func TestPlayerLeavesMidHand(t *testing.T) {
	a := assert.New(t)
	tbl := New("id", "test", testOptions(), nil)

	p1 := player.New("alice", 1000, nil)
	p2 := player.New("bob", 1000, nil)
	p3 := player.New("carol", 1000, nil)
	a.NoError(tbl.SeatPlayer(p1, 0, 500))
	a.NoError(tbl.SeatPlayer(p2, 1, 500))

	// carol joins after the hand began and waits for the next one
	a.NoError(tbl.SeatPlayer(p3, 2, 500))
	a.True(p3.Public.SittingIn)
	a.False(p3.Public.InHand)

	a.NoError(tbl.PostBlind(0, true))
	a.NoError(tbl.PostBlind(1, true))

	tbl.PlayerLeft(0)

	a.Nil(tbl.seats[0])
	a.Equal(2, tbl.public.PlayersSeatedCount)
	a.Equal(-1, p1.Seat())
	a.Equal("", p1.TableID())

	// alice forfeits her blind and the next hand starts without her
	a.Equal(995, p1.Chips())
	a.Equal(PhaseSmallBlind, tbl.public.Phase)
	a.True(p2.Public.InHand)
	a.True(p3.Public.InHand)
}

func TestSitOutStopsShortHandedGame(t *testing.T) {
	a := assert.New(t)
	rec := &recorder{}
	tbl := New("id", "test", testOptions(), rec.emit)

	p1 := player.New("alice", 1000, nil)
	p2 := player.New("bob", 1000, nil)
	a.NoError(tbl.SeatPlayer(p1, 0, 500))
	a.NoError(tbl.SeatPlayer(p2, 1, 500))

	a.NoError(tbl.PostBlind(0, true))
	a.NoError(tbl.SitOut(1))

	a.False(tbl.gameIsOn)
	a.Equal(PhaseNone, tbl.public.Phase)
	a.Equal(-1, tbl.public.ActiveSeat)
	a.Equal("gameStopped", rec.last())

	// alice keeps her seat and gets her blind back
	a.Equal(500, p1.Public.ChipsInPlay)
	a.False(p2.Public.InHand)
}

func TestState(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	tbl := New("id", "test", testOptions(), nil)
	p1 := player.New("alice", 1000, nil)
	r.NoError(tbl.SeatPlayer(p1, 0, 500))

	state := string(tbl.State())
	a.True(strings.Contains(state, `"id":"id"`))
	a.True(strings.Contains(state, `"alice"`))
}
