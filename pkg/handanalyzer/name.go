package handanalyzer

import (
	"fmt"

	"pokerhall-server/pkg/deck"
)

var singularRankNames = map[int]string{
	2: "deuce", 3: "three", 4: "four", 5: "five", 6: "six", 7: "seven", 8: "eight", 9: "nine",
	deck.Ten: "ten", deck.Jack: "jack", deck.Queen: "queen", deck.King: "king", deck.Ace: "ace",
}

var pluralRankNames = map[int]string{
	2: "deuces", 3: "threes", 4: "fours", 5: "fives", 6: "sixes", 7: "sevens", 8: "eights", 9: "nines",
	deck.Ten: "tens", deck.Jack: "jacks", deck.Queen: "queens", deck.King: "kings", deck.Ace: "aces",
}

// Name returns the human-readable name of the hand, i.e., "a full house, fours full of sixes"
func (h *HandAnalyzer) Name() string {
	switch h.hand {
	case HighCard:
		return singularRankNames[h.cards[0].Rank] + " high"
	case OnePair:
		pair, _ := h.GetPair()
		return "a pair of " + pluralRankNames[pair]
	case TwoPair:
		twoPair, _ := h.GetTwoPair()
		return fmt.Sprintf("two pair, %s and %s", pluralRankNames[twoPair[0]], pluralRankNames[twoPair[1]])
	case ThreeOfAKind:
		trips, _ := h.GetThreeOfAKind()
		return "three of a kind, " + pluralRankNames[trips]
	case Straight:
		return "a straight to " + singularRankNames[h.straight]
	case Flush:
		return fmt.Sprintf("a flush, %s high", singularRankNames[h.flush[0]])
	case FullHouse:
		fh, _ := h.GetFullHouse()
		return fmt.Sprintf("a full house, %s full of %s", pluralRankNames[fh[0]], pluralRankNames[fh[1]])
	case FourOfAKind:
		fk, _ := h.GetFourOfAKind()
		return "four of a kind, " + pluralRankNames[fk]
	case StraightFlush:
		low := h.straightFlush - h.size + 1
		if low < 2 {
			// the wheel runs ace to five
			low = deck.Ace
		}

		return fmt.Sprintf("a straight flush, %s to %s", singularRankNames[low], singularRankNames[h.straightFlush])
	case RoyalFlush:
		return "a royal flush"
	}

	panic("unknown hand")
}
