package table

// initializeRound starts a new hand, or pauses the game when fewer than
// two players are sitting in
func (t *Table) initializeRound(changeDealer bool) {
	t.cancelTimer()

	if t.playersSittingInCount < 2 {
		t.gameIsOn = false
		return
	}

	t.gameIsOn = true
	t.public.Board = make([]string, 5)
	t.public.BiggestBet = 0
	t.playersInHandCount = 0

	for _, pl := range t.seats {
		if pl == nil || !pl.Public.SittingIn {
			continue
		}

		if pl.Public.ChipsInPlay > 0 {
			t.playersInHandCount++
			pl.PrepareForNewRound()
		} else {
			pl.SitOut()
			t.playersSittingInCount--
		}
	}

	t.headsUp = t.playersSittingInCount == 2

	dealer := t.public.DealerSeat
	if changeDealer || dealer < 0 || t.seats[dealer] == nil || !t.seats[dealer].Public.SittingIn {
		t.public.DealerSeat = t.findNextPlayer(dealer, StatusSittingIn)
	}

	t.deck.Shuffle(t.deckSeed)
	t.initializeSmallBlind()
}

func (t *Table) initializeSmallBlind() {
	t.public.Phase = PhaseSmallBlind

	if t.headsUp {
		// the dealer posts the small blind heads-up
		t.public.ActiveSeat = t.public.DealerSeat
	} else {
		t.public.ActiveSeat = t.findNextPlayer(t.public.DealerSeat, StatusInHand)
	}

	t.lastPlayerToAct = blindPhaseSentinel
	t.seats[t.public.ActiveSeat].Notify("postSmallBlind", nil)
	t.emitEvent("table-data", t.public)
}

func (t *Table) initializeBigBlind() {
	t.public.Phase = PhaseBigBlind
	t.actionToNextPlayer()
}

func (t *Table) playerPostedSmallBlind() {
	pl := t.seats[t.public.ActiveSeat]

	bet := t.public.SmallBlind
	if pl.Public.ChipsInPlay < bet {
		bet = pl.Public.ChipsInPlay
	}
	pl.Bet(bet)

	t.log(LogEntry{
		Message:      pl.Public.Name + " posted the small blind",
		Action:       "bet",
		Seat:         t.public.ActiveSeat,
		Notification: "Posted blind",
	})

	if pl.Public.Bet > t.public.BiggestBet {
		t.public.BiggestBet = pl.Public.Bet
	}

	t.emitEvent("table-data", t.public)
	t.initializeBigBlind()
}

func (t *Table) playerPostedBigBlind() {
	pl := t.seats[t.public.ActiveSeat]

	bet := t.public.BigBlind
	if pl.Public.ChipsInPlay < bet {
		bet = pl.Public.ChipsInPlay
	}
	pl.Bet(bet)

	t.log(LogEntry{
		Message:      pl.Public.Name + " posted the big blind",
		Action:       "bet",
		Seat:         t.public.ActiveSeat,
		Notification: "Posted blind",
	})

	if pl.Public.Bet > t.public.BiggestBet {
		t.public.BiggestBet = pl.Public.Bet
	}

	t.emitEvent("table-data", t.public)
	t.initializePreflop()
}

func (t *Table) initializePreflop() {
	t.public.Phase = PhasePreflop

	// the big blind acts last before the flop
	t.lastPlayerToAct = t.public.ActiveSeat

	current := t.public.ActiveSeat
	for i := 0; i < t.playersInHandCount; i++ {
		t.seats[current].GiveCards(t.dealCards(2))
		current = t.findNextPlayer(current, StatusInHand)
	}

	t.actionToNextPlayer()
}

func (t *Table) initializeNextPhase() {
	switch t.public.Phase {
	case PhasePreflop:
		t.public.Phase = PhaseFlop
		for i, card := range t.dealCards(3) {
			t.public.Board[i] = card.String()
		}
	case PhaseFlop:
		t.public.Phase = PhaseTurn
		t.public.Board[3] = t.dealCards(1)[0].String()
	case PhaseTurn:
		t.public.Phase = PhaseRiver
		t.public.Board[4] = t.dealCards(1)[0].String()
	default:
		panic("cannot advance phase: " + string(t.public.Phase))
	}

	t.pot.AddTableBets(t.seats)
	t.public.BiggestBet = 0
	t.public.ActiveSeat = t.findNextPlayer(t.public.DealerSeat, StatusInHand)
	t.lastPlayerToAct = t.findPreviousPlayer(t.public.ActiveSeat, StatusInHand)
	t.emitEvent("table-data", t.public)

	if t.otherPlayersAreAllIn() {
		t.schedule(t.options.AllInDelay, t.endPhase)
	} else {
		t.seats[t.public.ActiveSeat].Notify("actNotBettedPot", nil)
	}
}

// actionToNextPlayer advances the turn and prompts the newly active player
func (t *Table) actionToNextPlayer() {
	t.public.ActiveSeat = t.findNextPlayer(t.public.ActiveSeat, StatusInHand)
	pl := t.seats[t.public.ActiveSeat]

	switch t.public.Phase {
	case PhaseSmallBlind:
		pl.Notify("postSmallBlind", nil)
	case PhaseBigBlind:
		pl.Notify("postBigBlind", nil)
	case PhasePreflop:
		if t.otherPlayersAreAllIn() {
			pl.Notify("actOthersAllIn", nil)
		} else {
			pl.Notify("actBettedPot", nil)
		}
	case PhaseFlop, PhaseTurn, PhaseRiver:
		switch {
		case t.public.BiggestBet == 0:
			pl.Notify("actNotBettedPot", nil)
		case t.otherPlayersAreAllIn():
			pl.Notify("actOthersAllIn", nil)
		default:
			pl.Notify("actBettedPot", nil)
		}
	}

	t.emitEvent("table-data", t.public)
}

func (t *Table) endPhase() {
	switch t.public.Phase {
	case PhasePreflop, PhaseFlop, PhaseTurn:
		t.initializeNextPhase()
	case PhaseRiver:
		t.showdown()
	}
}

func (t *Table) showdown() {
	t.pot.AddTableBets(t.seats)

	first := t.findNextPlayer(t.public.DealerSeat, StatusInHand)
	current := first
	best := 0
	for i := 0; i < t.playersInHandCount; i++ {
		pl := t.seats[current]
		if err := pl.EvaluateHand(t.public.Board); err != nil {
			panic(err)
		}

		// only hands that beat the best shown so far are revealed
		if pl.EvaluatedHand().Rating > best {
			best = pl.EvaluatedHand().Rating
			pl.ShowCards()
		}

		current = t.findNextPlayer(current, StatusInHand)
	}

	for _, message := range t.pot.DistributeToWinners(t.seats, first) {
		t.log(LogEntry{Message: message, Seat: -1})
		t.emitEvent("table-data", t.public)
	}

	t.schedule(t.options.ShowdownDelay, func() {
		t.endRound()
	})
}

// endRound settles any remaining chips, sits out busted players, and either
// starts the next hand or stops the game
func (t *Table) endRound() {
	t.pot.AddTableBets(t.seats)

	if !t.pot.IsEmpty() {
		winner := t.findNextPlayer(t.public.DealerSeat, StatusInHand)
		if winner >= 0 {
			t.log(LogEntry{Message: t.pot.GiveToWinner(t.seats[winner]), Seat: -1})
			t.emitEvent("table-data", t.public)
		}
	}

	for _, pl := range t.seats {
		if pl == nil {
			continue
		}

		if pl.Public.SittingIn && pl.Public.ChipsInPlay == 0 {
			pl.SitOut()
			t.playersSittingInCount--
		}
	}

	if t.playersSittingInCount < 2 {
		t.stopGame()
	} else {
		t.initializeRound(true)
	}
}
