package handanalyzer

import (
	"pokerhall-server/pkg/deck"
)

// used to keep track of the straight progress
type straightTracker struct {
	high   int
	last   int
	length int
}

func (s *straightTracker) reset(rank int) {
	s.high = rank
	s.last = rank
	s.length = 1
}

// checkStraight will advance the run with the card
// If a straight has been found, the highest rank in the straight is assigned to "val"
func (h *HandAnalyzer) checkStraight(card *deck.Card, st *straightTracker, aceValue int, val *int) {
	rank := card.Rank
	if rank == deck.Ace && aceValue == deck.LowAce {
		rank = deck.LowAce
	}

	// gaps and duplicate ranks reset the run
	if st.length == 0 || st.last-rank != 1 {
		st.reset(rank)
	} else {
		st.last = rank
		st.length++
	}

	if st.length >= h.size {
		*val = st.high
	}
}
