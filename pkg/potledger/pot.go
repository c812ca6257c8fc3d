package potledger

import (
	"fmt"

	"pokerhall-server/pkg/player"
)

// Layer is a single pot layer: the chips in it and the seats eligible to win it
type Layer struct {
	Amount       int   `json:"amount"`
	Contributors []int `json:"contributors"`
}

func (l *Layer) hasContributor(seat int) bool {
	for _, s := range l.Contributors {
		if s == seat {
			return true
		}
	}

	return false
}

func (l *Layer) removeContributor(seat int) {
	for i, s := range l.Contributors {
		if s == seat {
			l.Contributors = append(l.Contributors[0:i], l.Contributors[i+1:]...)
			return
		}
	}
}

// Pot is the layered pot ledger for a table.
// Layers[0] always exists; a new layer opens when contributions diverge (side pot)
type Pot struct {
	Layers []*Layer `json:"layers"`
}

// New returns an empty pot ledger
func New() *Pot {
	return &Pot{
		Layers: []*Layer{{Contributors: []int{}}},
	}
}

// Reset empties the ledger back to a single empty layer
func (p *Pot) Reset() {
	p.Layers = []*Layer{{Contributors: []int{}}}
}

// IsEmpty returns true if no chips have been swept into the pot
func (p *Pot) IsEmpty() bool {
	return p.Layers[0].Amount == 0
}

// Total returns the chips across all layers
func (p *Pot) Total() int {
	total := 0
	for _, layer := range p.Layers {
		total += layer.Amount
	}

	return total
}

// AddTableBets sweeps every seat's current bet into the ledger.
// Chips bet by folded players still count toward the amounts, but only
// in-hand seats are recorded as contributors
func (p *Pot) AddTableBets(seats []*player.Player) {
	for {
		smallest := 0
		allEqual := true
		for _, pl := range seats {
			if pl == nil || pl.Public.Bet == 0 {
				continue
			}

			if smallest == 0 {
				smallest = pl.Public.Bet
			} else if pl.Public.Bet != smallest {
				allEqual = false
				if pl.Public.Bet < smallest {
					smallest = pl.Public.Bet
				}
			}
		}

		if smallest == 0 {
			return
		}

		current := p.Layers[len(p.Layers)-1]
		for seat, pl := range seats {
			if pl == nil || pl.Public.Bet == 0 {
				continue
			}

			take := pl.Public.Bet
			if !allEqual {
				take = smallest
			}

			pl.Public.Bet -= take
			current.Amount += take

			if pl.Public.InHand && !current.hasContributor(seat) {
				current.Contributors = append(current.Contributors, seat)
			}
		}

		if allEqual {
			return
		}

		// the seats still holding chips go into a side pot
		p.Layers = append(p.Layers, &Layer{Contributors: []int{}})
	}
}

// AddPlayersBets sweeps a single player's bet into the current layer
func (p *Pot) AddPlayersBets(pl *player.Player) {
	if pl.Public.Bet == 0 {
		return
	}

	current := p.Layers[len(p.Layers)-1]
	current.Amount += pl.Public.Bet
	pl.Public.Bet = 0

	if pl.Public.InHand && !current.hasContributor(pl.Seat()) {
		current.Contributors = append(current.Contributors, pl.Seat())
	}
}

// RemovePlayer strikes the seat from every layer's contributors
func (p *Pot) RemovePlayer(seat int) {
	for _, layer := range p.Layers {
		layer.removeContributor(seat)
	}
}

// DistributeToWinners awards each layer to its best still-in-hand contributors.
// Ties split evenly; odd chips go one at a time in seat order starting at
// firstPlayerToAct. The ledger is reset afterwards
func (p *Pot) DistributeToWinners(seats []*player.Player, firstPlayerToAct int) []string {
	if firstPlayerToAct < 0 {
		firstPlayerToAct = 0
	}

	messages := make([]string, 0, len(p.Layers))
	for _, layer := range p.Layers {
		if layer.Amount == 0 {
			continue
		}

		best := 0
		winners := make([]int, 0, 1)
		for _, seat := range layer.Contributors {
			pl := seats[seat]
			if pl == nil || !pl.Public.InHand || pl.EvaluatedHand() == nil {
				continue
			}

			rating := pl.EvaluatedHand().Rating
			if rating > best {
				best = rating
				winners = winners[:0]
			}

			if rating == best {
				winners = append(winners, seat)
			}
		}

		if len(winners) == 0 {
			continue
		}

		share := layer.Amount / len(winners)
		remainder := layer.Amount % len(winners)

		extra := make(map[int]int)
		if remainder > 0 {
			isWinner := make(map[int]bool, len(winners))
			for _, seat := range winners {
				isWinner[seat] = true
			}

			for seat := firstPlayerToAct; remainder > 0; seat = (seat + 1) % len(seats) {
				if isWinner[seat] {
					extra[seat]++
					remainder--
				}
			}
		}

		for _, seat := range winners {
			pl := seats[seat]
			won := share + extra[seat]
			pl.Public.ChipsInPlay += won

			verb := "wins"
			if len(winners) > 1 {
				verb = "ties"
			}

			messages = append(messages, fmt.Sprintf(
				"%s %s the pot (%d) with %s [%s]",
				pl.Public.Name, verb, won, pl.EvaluatedHand().Name, pl.HoleCards().HTML(),
			))
		}
	}

	p.Reset()
	return messages
}

// GiveToWinner awards the whole pot to a single player without a showdown
func (p *Pot) GiveToWinner(pl *player.Player) string {
	total := p.Total()
	pl.Public.ChipsInPlay += total
	p.Reset()

	return fmt.Sprintf("%s wins the pot (%d)", pl.Public.Name, total)
}
