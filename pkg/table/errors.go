package table

import "errors"

// action and seating errors
var (
	ErrInvalidSeat      = errors.New("invalid seat")
	ErrSeatTaken        = errors.New("seat is already taken")
	ErrAlreadySeated    = errors.New("player is already on a table")
	ErrNotSeated        = errors.New("no player in that seat")
	ErrNotYourTurn      = errors.New("it is not your turn")
	ErrInvalidPhase     = errors.New("action is not allowed in the current phase")
	ErrGameNotRunning   = errors.New("no hand is currently being played")
	ErrCannotCheck      = errors.New("cannot check a bet")
	ErrNothingToCall    = errors.New("there is no bet to call")
	ErrBetTooSmall      = errors.New("amount must be greater than zero")
	ErrPotAlreadyBet    = errors.New("the pot has already been bet")
	ErrPotNotBet        = errors.New("there is no bet to raise")
	ErrNotEnoughChips   = errors.New("not enough chips")
	ErrAlreadySittingIn = errors.New("player is already sitting in")
	ErrNoChips          = errors.New("player has no chips in play")
)
