package table

import (
	"fmt"

	"pokerhall-server/pkg/player"
)

// SeatPlayer puts the player in the given seat with buyIn chips moved from
// their bankroll into play
func (t *Table) SeatPlayer(pl *player.Player, seat, buyIn int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seat < 0 || seat >= t.public.SeatsCount {
		return ErrInvalidSeat
	}

	if t.seats[seat] != nil {
		return ErrSeatTaken
	}

	if pl.TableID() != "" || pl.Seat() >= 0 {
		return ErrAlreadySeated
	}

	if buyIn < t.public.MinBuyIn || buyIn > t.public.MaxBuyIn {
		return fmt.Errorf("buy-in must be between %d and %d", t.public.MinBuyIn, t.public.MaxBuyIn)
	}

	if pl.Chips() < buyIn {
		return ErrNotEnoughChips
	}

	t.seats[seat] = pl
	t.public.Seats[seat] = pl.Public
	pl.SitOnTable(t.public.ID, seat, buyIn)
	t.public.PlayersSeatedCount++

	t.playerSatIn(seat)
	return nil
}

// SitIn brings a seated player who was sitting out back into the game
func (t *Table) SitIn(seat int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seat < 0 || seat >= t.public.SeatsCount || t.seats[seat] == nil {
		return ErrNotSeated
	}

	pl := t.seats[seat]
	if pl.Public.SittingIn {
		return ErrAlreadySittingIn
	}

	if pl.Public.ChipsInPlay == 0 {
		return ErrNoChips
	}

	t.playerSatIn(seat)
	return nil
}

// SitOut removes a seated player from the action without freeing the seat
func (t *Table) SitOut(seat int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seat < 0 || seat >= t.public.SeatsCount || t.seats[seat] == nil {
		return ErrNotSeated
	}

	if !t.seats[seat].Public.SittingIn {
		return nil
	}

	t.playerSatOut(seat, false)
	return nil
}

// PlayerLeft frees the seat and returns the player's chips to their bankroll
func (t *Table) PlayerLeft(seat int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.playerLeft(seat)
}

func (t *Table) playerSatIn(seat int) {
	pl := t.seats[seat]

	t.log(LogEntry{
		Message: pl.Public.Name + " sat in",
		Action:  "sitIn",
		Seat:    seat,
	})
	t.emitEvent("table-data", t.public)

	pl.SitIn()
	t.playersSittingInCount++

	if !t.gameIsOn && t.playersSittingInCount > 1 {
		t.initializeRound(false)
	}

	t.emitEvent("table-data", t.public)
}

// playerSatOut takes the seat out of the action mid-hand.
// When the player is leaving the table entirely the round is not restarted
// here; playerLeft finishes the cleanup after the seat is freed
func (t *Table) playerSatOut(seat int, playerLeft bool) {
	pl := t.seats[seat]

	if !playerLeft {
		t.log(LogEntry{
			Message: pl.Public.Name + " sat out",
			Action:  "sitOut",
			Seat:    seat,
		})
		t.emitEvent("table-data", t.public)
	}

	if pl.Public.Bet > 0 {
		t.pot.AddPlayersBets(pl)
	}
	t.pot.RemovePlayer(seat)

	t.playersSittingInCount--

	if pl.Public.InHand {
		pl.SitOut()
		t.playersInHandCount--

		if t.playersInHandCount < 2 {
			if !playerLeft {
				t.endRound()
			}
		} else if t.public.ActiveSeat == seat {
			if t.lastPlayerToAct == seat {
				if !playerLeft {
					t.endPhase()
				}
			} else {
				t.actionToNextPlayer()
			}
		} else if t.lastPlayerToAct == seat {
			t.lastPlayerToAct = t.findPreviousPlayer(t.lastPlayerToAct, StatusInHand)
		}
	} else {
		pl.SitOut()
	}
}

func (t *Table) playerLeft(seat int) {
	if seat < 0 || seat >= t.public.SeatsCount || t.seats[seat] == nil {
		return
	}

	pl := t.seats[seat]

	t.log(LogEntry{
		Message: pl.Public.Name + " left",
		Action:  "leave",
		Seat:    seat,
	})

	if pl.Public.SittingIn {
		t.playerSatOut(seat, true)
	}

	pl.LeaveTable()
	t.seats[seat] = nil
	t.public.Seats[seat] = nil
	t.public.PlayersSeatedCount--

	if t.public.PlayersSeatedCount < 2 {
		t.public.DealerSeat = -1
	}

	t.emitEvent("table-data", t.public)

	if t.gameIsOn {
		if t.playersInHandCount < 2 {
			t.endRound()
		} else if t.lastPlayerToAct == seat && t.public.ActiveSeat == seat {
			t.endPhase()
		}
	}
}
