package table

import "pokerhall-server/pkg/player"

// Status is a seat predicate used when scanning for the next or previous player
type Status int

// status constants
const (
	StatusSittingIn Status = iota
	StatusInHand
	StatusHasCards
)

func (s Status) matches(d *player.Data) bool {
	switch s {
	case StatusSittingIn:
		return d.SittingIn
	case StatusInHand:
		return d.InHand
	case StatusHasCards:
		return d.HasCards
	default:
		panic("unknown status")
	}
}
