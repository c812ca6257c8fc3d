package player

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pokerhall-server/pkg/deck"
)

type fakeNotifier struct {
	events   []string
	payloads []interface{}
}

func (f *fakeNotifier) Notify(event string, payload interface{}) {
	f.events = append(f.events, event)
	f.payloads = append(f.payloads, payload)
}

func TestNew(t *testing.T) {
	a := assert.New(t)

	p := New("player1", 1000, nil)
	a.Equal("player1", p.Public.Name)
	a.Equal(1000, p.Chips())
	a.Equal(-1, p.Seat())
	a.Equal("", p.TableID())
	a.False(p.Public.SittingIn)

	// a player without a session must not panic
	p.Notify("postSmallBlind", nil)
}

func TestPlayer_SitOnTableAndLeave(t *testing.T) {
	a := assert.New(t)

	p := New("player1", 1000, nil)
	p.SitOnTable("t1", 2, 400)
	a.Equal(600, p.Chips())
	a.Equal(400, p.Public.ChipsInPlay)
	a.Equal(2, p.Seat())
	a.Equal("t1", p.TableID())

	p.SitIn()
	a.True(p.Public.SittingIn)

	p.LeaveTable()
	a.Equal(1000, p.Chips())
	a.Equal(0, p.Public.ChipsInPlay)
	a.Equal(-1, p.Seat())
	a.Equal("", p.TableID())
	a.False(p.Public.SittingIn)
	a.False(p.Public.InHand)
}

func TestPlayer_Bet(t *testing.T) {
	a := assert.New(t)

	p := New("player1", 1000, nil)
	p.SitOnTable("t1", 0, 100)

	p.Bet(40)
	a.Equal(60, p.Public.ChipsInPlay)
	a.Equal(40, p.Public.Bet)

	// a raise adds on top of the current bet
	p.Raise(30)
	a.Equal(30, p.Public.ChipsInPlay)
	a.Equal(70, p.Public.Bet)

	// betting more than the remaining chips puts the player all-in
	p.Bet(500)
	a.Equal(0, p.Public.ChipsInPlay)
	a.Equal(100, p.Public.Bet)
}

func TestPlayer_FoldAndPrepare(t *testing.T) {
	a := assert.New(t)

	notifier := &fakeNotifier{}
	p := New("player1", 1000, notifier)
	p.SitOnTable("t1", 0, 100)
	p.SitIn()
	p.PrepareForNewRound()
	a.True(p.Public.InHand)
	a.Equal(0, p.Public.Bet)

	p.GiveCards(deck.CardsFromString("Ah,Kd"))
	a.True(p.Public.HasCards)
	a.Equal([]string{"dealingCards"}, notifier.events)
	a.Equal([]string{"Ah", "Kd"}, notifier.payloads[0])
	a.Equal([]string{"Ah", "Kd"}, p.HoleCards().Strings())

	p.ShowCards()
	a.Equal([]string{"Ah", "Kd"}, p.Public.Cards)

	p.Fold()
	a.False(p.Public.HasCards)
	a.False(p.Public.InHand)
	a.Nil(p.Public.Cards)
	a.Equal(0, len(p.HoleCards()))
}

func TestPlayer_EvaluateHand(t *testing.T) {
	a := assert.New(t)

	p := New("player1", 1000, nil)
	p.SitOnTable("t1", 0, 100)
	p.PrepareForNewRound()
	p.GiveCards(deck.CardsFromString("Ah,Ad"))

	a.NoError(p.EvaluateHand([]string{"Ac", "7s", "7d", "2c", "9h"}))
	hand := p.EvaluatedHand()
	a.Equal("full house", hand.Rank)
	a.Equal("a full house, aces full of sevens", hand.Name)
	a.Equal([]string{"Ah", "Ad", "Ac", "7s", "7d"}, hand.Cards)
	a.Greater(hand.Rating, 0)

	// a corrupt board is a hard failure
	p2 := New("player2", 1000, nil)
	p2.SitOnTable("t1", 1, 100)
	p2.PrepareForNewRound()
	p2.GiveCards(deck.CardsFromString("Kh,Kh"))
	a.Error(p2.EvaluateHand([]string{"Kc", "Kd", "Qh", "Jh", "Th"}))
	a.Nil(p2.EvaluatedHand())
}

func TestPlayer_PrepareForNewRoundClearsEvaluation(t *testing.T) {
	a := assert.New(t)

	p := New("player1", 1000, nil)
	p.SitOnTable("t1", 0, 100)
	p.PrepareForNewRound()
	p.GiveCards(deck.CardsFromString("Ah,Kd"))
	a.NoError(p.EvaluateHand([]string{"Ac", "7s", "7d", "2c", "9h"}))
	a.NotNil(p.EvaluatedHand())

	p.PrepareForNewRound()
	a.Nil(p.EvaluatedHand())
	a.False(p.Public.HasCards)
}
