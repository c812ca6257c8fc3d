package player

import (
	"pokerhall-server/pkg/deck"
	"pokerhall-server/pkg/handanalyzer"
)

// Notifier delivers a private event to a player's session
type Notifier interface {
	Notify(event string, payload interface{})
}

// Data is the public state of a player, broadcast with the table state
type Data struct {
	Name        string   `json:"name"`
	ChipsInPlay int      `json:"chipsInPlay"`
	SittingIn   bool     `json:"sittingIn"`
	InHand      bool     `json:"inHand"`
	HasCards    bool     `json:"hasCards"`
	Bet         int      `json:"bet"`
	Cards       []string `json:"cards"`
}

// EvaluatedHand is the outcome of evaluating hole cards against the board
type EvaluatedHand struct {
	Rank   string   `json:"rank"`
	Name   string   `json:"name"`
	Rating int      `json:"rating"`
	Cards  []string `json:"cards"`
}

// Player is a single participant in the room
// The bankroll and hole cards are private; everything the table may broadcast lives in Public
type Player struct {
	Public *Data

	notifier      Notifier
	chips         int
	cards         deck.Hand
	seat          int
	tableID       string
	evaluatedHand *EvaluatedHand
}

// New returns a new player with the given screen name and bankroll
func New(name string, chips int, notifier Notifier) *Player {
	return &Player{
		Public:   &Data{Name: name},
		notifier: notifier,
		chips:    chips,
		seat:     -1,
	}
}

// Notify sends a private event to the player's session, if one is attached
func (p *Player) Notify(event string, payload interface{}) {
	if p.notifier != nil {
		p.notifier.Notify(event, payload)
	}
}

// SetNotifier attaches the player's session
func (p *Player) SetNotifier(n Notifier) {
	p.notifier = n
}

// Chips returns the player's bankroll
func (p *Player) Chips() int {
	return p.chips
}

// Seat returns the seat number, or -1 when not seated
func (p *Player) Seat() int {
	return p.seat
}

// TableID returns the id of the table the player sits on, or "" when not seated
func (p *Player) TableID() string {
	return p.tableID
}

// SitOnTable moves chips from the bankroll into play and takes the seat
func (p *Player) SitOnTable(tableID string, seat, chips int) {
	p.chips -= chips
	p.Public.ChipsInPlay = chips
	p.seat = seat
	p.tableID = tableID
}

// LeaveTable returns the in-play chips to the bankroll and frees the seat
func (p *Player) LeaveTable() {
	p.SitOut()
	p.chips += p.Public.ChipsInPlay
	p.Public.ChipsInPlay = 0
	p.seat = -1
	p.tableID = ""
}

// SitIn marks the player as taking part in the coming rounds
func (p *Player) SitIn() {
	p.Public.SittingIn = true
}

// SitOut takes the player out of the action
func (p *Player) SitOut() {
	p.Public.SittingIn = false
	p.Public.InHand = false
}

// Fold discards the player's cards and removes them from the hand
func (p *Player) Fold() {
	p.cards = nil
	p.Public.Cards = nil
	p.Public.HasCards = false
	p.Public.InHand = false
}

// RemoveCards takes the cards out of play without folding
func (p *Player) RemoveCards() {
	p.cards = nil
	p.Public.Cards = nil
	p.Public.HasCards = false
}

// Bet moves up to amount chips from play into the player's current bet.
// A bet past the remaining chips puts the player all-in
func (p *Player) Bet(amount int) {
	if amount > p.Public.ChipsInPlay {
		amount = p.Public.ChipsInPlay
	}

	p.Public.ChipsInPlay -= amount
	p.Public.Bet += amount
}

// Raise adds amount on top of the player's current bet
func (p *Player) Raise(amount int) {
	p.Bet(amount)
}

// PrepareForNewRound resets the per-hand state
func (p *Player) PrepareForNewRound() {
	p.cards = nil
	p.Public.Cards = nil
	p.Public.HasCards = false
	p.Public.Bet = 0
	p.Public.InHand = true
	p.evaluatedHand = nil
}

// GiveCards hands hole cards to the player and notifies their session
func (p *Player) GiveCards(cards []*deck.Card) {
	p.cards = append(p.cards, cards...)
	p.Public.HasCards = true
	p.Notify("dealingCards", p.cards.Strings())
}

// HoleCards returns the player's hole cards
func (p *Player) HoleCards() deck.Hand {
	return p.cards
}

// ShowCards reveals the hole cards on the public state
func (p *Player) ShowCards() {
	p.Public.Cards = p.cards.Strings()
}

// EvaluateHand finds the best five cards among the hole cards and the board
func (p *Player) EvaluateHand(board []string) error {
	cards := make([]*deck.Card, 0, len(p.cards)+len(board))
	cards = append(cards, p.cards...)
	for _, s := range board {
		if s == "" {
			continue
		}

		cards = append(cards, deck.CardFromString(s))
	}

	h, err := handanalyzer.New(5, cards)
	if err != nil {
		return err
	}

	p.evaluatedHand = &EvaluatedHand{
		Rank:   h.GetHand().String(),
		Name:   h.Name(),
		Rating: h.GetStrength(),
		Cards:  h.GetCards().Strings(),
	}

	return nil
}

// EvaluatedHand returns the result of the last EvaluateHand call
func (p *Player) EvaluatedHand() *EvaluatedHand {
	return p.evaluatedHand
}
