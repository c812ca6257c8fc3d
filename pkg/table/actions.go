package table

import "fmt"

var bettingPhases = map[Phase]bool{
	PhasePreflop: true,
	PhaseFlop:    true,
	PhaseTurn:    true,
	PhaseRiver:   true,
}

var blindPhases = map[Phase]bool{
	PhaseSmallBlind: true,
	PhaseBigBlind:   true,
}

// validateTurn ensures a hand is running and seat holds the action
func (t *Table) validateTurn(seat int) error {
	if !t.gameIsOn {
		return ErrGameNotRunning
	}

	if seat < 0 || seat >= t.public.SeatsCount || t.seats[seat] == nil {
		return ErrNotSeated
	}

	if seat != t.public.ActiveSeat {
		return ErrNotYourTurn
	}

	return nil
}

// PostBlind posts the blind the active seat owes, or sits the player out
// when they decline
func (t *Table) PostBlind(seat int, post bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.validateTurn(seat); err != nil {
		return err
	}

	if !blindPhases[t.public.Phase] {
		return ErrInvalidPhase
	}

	if !post {
		t.playerSatOut(seat, false)
		return nil
	}

	if t.public.Phase == PhaseSmallBlind {
		t.playerPostedSmallBlind()
	} else {
		t.playerPostedBigBlind()
	}

	return nil
}

// Check passes the action without betting
func (t *Table) Check(seat int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.validateTurn(seat); err != nil {
		return err
	}

	if !bettingPhases[t.public.Phase] {
		return ErrInvalidPhase
	}

	pl := t.seats[seat]
	if t.public.BiggestBet > 0 && pl.Public.Bet != t.public.BiggestBet {
		return ErrCannotCheck
	}

	t.playerChecked()
	return nil
}

// Call matches the biggest bet
func (t *Table) Call(seat int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.validateTurn(seat); err != nil {
		return err
	}

	if !bettingPhases[t.public.Phase] {
		return ErrInvalidPhase
	}

	if t.public.BiggestBet == 0 || t.seats[seat].Public.Bet >= t.public.BiggestBet {
		return ErrNothingToCall
	}

	t.playerCalled()
	return nil
}

// Bet opens the betting in an unbet pot
func (t *Table) Bet(seat, amount int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.validateTurn(seat); err != nil {
		return err
	}

	if !bettingPhases[t.public.Phase] {
		return ErrInvalidPhase
	}

	if t.public.BiggestBet > 0 {
		return ErrPotAlreadyBet
	}

	if amount <= 0 {
		return ErrBetTooSmall
	}

	if amount > t.seats[seat].Public.ChipsInPlay {
		return ErrNotEnoughChips
	}

	t.playerBet(amount)
	return nil
}

// Raise increases the biggest bet by amount
func (t *Table) Raise(seat, amount int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.validateTurn(seat); err != nil {
		return err
	}

	if !bettingPhases[t.public.Phase] {
		return ErrInvalidPhase
	}

	if t.public.BiggestBet == 0 {
		return ErrPotNotBet
	}

	if amount <= 0 {
		return ErrBetTooSmall
	}

	if amount > t.seats[seat].Public.ChipsInPlay {
		return ErrNotEnoughChips
	}

	t.playerRaised(amount)
	return nil
}

// Fold gives up the hand
func (t *Table) Fold(seat int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.validateTurn(seat); err != nil {
		return err
	}

	if !bettingPhases[t.public.Phase] {
		return ErrInvalidPhase
	}

	t.playerFolded()
	return nil
}

func (t *Table) playerChecked() {
	pl := t.seats[t.public.ActiveSeat]

	t.log(LogEntry{
		Message: pl.Public.Name + " checked",
		Action:  "check",
		Seat:    t.public.ActiveSeat,
	})

	if t.lastPlayerToAct == t.public.ActiveSeat {
		t.emitEvent("table-data", t.public)
		t.endPhase()
	} else {
		t.actionToNextPlayer()
	}
}

func (t *Table) playerCalled() {
	pl := t.seats[t.public.ActiveSeat]
	pl.Bet(t.public.BiggestBet - pl.Public.Bet)

	t.log(LogEntry{
		Message: pl.Public.Name + " called",
		Action:  "call",
		Seat:    t.public.ActiveSeat,
	})

	if t.lastPlayerToAct == t.public.ActiveSeat || t.otherPlayersAreAllIn() {
		t.emitEvent("table-data", t.public)
		t.endPhase()
	} else {
		t.actionToNextPlayer()
	}
}

func (t *Table) playerBet(amount int) {
	pl := t.seats[t.public.ActiveSeat]
	pl.Bet(amount)
	t.public.BiggestBet = pl.Public.Bet

	t.log(LogEntry{
		Message:      fmt.Sprintf("%s betted %d", pl.Public.Name, t.public.BiggestBet),
		Action:       "bet",
		Seat:         t.public.ActiveSeat,
		Notification: fmt.Sprintf("Bet %d", t.public.BiggestBet),
	})

	t.reopenAction()
}

func (t *Table) playerRaised(amount int) {
	pl := t.seats[t.public.ActiveSeat]
	oldBiggestBet := t.public.BiggestBet
	pl.Raise(t.public.BiggestBet + amount - pl.Public.Bet)

	if pl.Public.Bet > t.public.BiggestBet {
		t.public.BiggestBet = pl.Public.Bet
	}

	t.log(LogEntry{
		Message:      fmt.Sprintf("%s raised to %d", pl.Public.Name, t.public.BiggestBet),
		Action:       "raise",
		Seat:         t.public.ActiveSeat,
		Notification: fmt.Sprintf("Raise %d", t.public.BiggestBet-oldBiggestBet),
	})

	t.reopenAction()
}

// reopenAction gives every other in-hand player the chance to respond to
// a bet or raise
func (t *Table) reopenAction() {
	previous := t.findPreviousPlayer(t.public.ActiveSeat, StatusInHand)
	if previous == t.public.ActiveSeat {
		t.emitEvent("table-data", t.public)
		t.endPhase()
		return
	}

	t.lastPlayerToAct = previous
	t.actionToNextPlayer()
}

func (t *Table) playerFolded() {
	seat := t.public.ActiveSeat
	pl := t.seats[seat]

	pl.Fold()
	t.playersInHandCount--
	t.pot.RemovePlayer(seat)

	t.log(LogEntry{
		Message: pl.Public.Name + " folded",
		Action:  "fold",
		Seat:    seat,
	})

	if t.playersInHandCount <= 1 {
		t.emitEvent("table-data", t.public)
		t.pot.AddTableBets(t.seats)
		winner := t.findNextPlayer(t.public.DealerSeat, StatusInHand)
		if winner >= 0 {
			t.log(LogEntry{Message: t.pot.GiveToWinner(t.seats[winner]), Seat: -1})
			t.emitEvent("table-data", t.public)
		}
		t.endRound()
		return
	}

	if t.lastPlayerToAct == seat {
		t.emitEvent("table-data", t.public)
		t.endPhase()
	} else {
		t.actionToNextPlayer()
	}
}
