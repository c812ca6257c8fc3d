package handanalyzer

import (
	"errors"
	"math"
	"sort"

	"pokerhall-server/pkg/deck"
)

// ErrTooManyOfRank is returned when more than four cards share a rank
var ErrTooManyOfRank = errors.New("more than four cards share a rank")

// ErrDuplicateCard is returned when a flush contains the same card twice
var ErrDuplicateCard = errors.New("duplicate card found in flush")

// HandAnalyzer can analyze a hand
type HandAnalyzer struct {
	size      int
	cards     deck.Hand
	flush     []int
	flushSuit deck.Suit
	quads     []int
	trips     []int
	pairs     []int
	straight  int

	straightFlush     int
	straightFlushSuit deck.Suit

	hand     Hand
	strength int
}

// New will return a new HandAnalyzer instance
// An error is returned if the cards could only come from a corrupted deck
func New(size int, cards []*deck.Card) (*HandAnalyzer, error) {
	// clone to prevent modifying original
	sortedCards := make(deck.Hand, len(cards))
	copy(sortedCards, cards)
	sort.SliceStable(sortedCards, func(i, j int) bool {
		return sortedCards[i].Rank > sortedCards[j].Rank
	})

	h := &HandAnalyzer{
		size:  size,
		cards: sortedCards,
	}

	if err := h.analyzeHand(); err != nil {
		return nil, err
	}

	h.calculateHand()
	return h, nil
}

// analyzeHand will loop through a players hand and calculate the various combinations
// This is required to be called in order for the public Get*() methods to return properly
// This method should only be called once from the constructor
func (h *HandAnalyzer) analyzeHand() error {
	// keeps track of flushes
	suitCounts := make(map[deck.Suit][]int)

	// straight-flush trackers
	sfTracker := map[deck.Suit]*straightTracker{
		deck.Clubs:    {},
		deck.Diamonds: {},
		deck.Hearts:   {},
		deck.Spades:   {},
	}

	// straight tracker
	sTracker := straightTracker{}

	// keeps track of pairs, trips, and quads
	prevRank := math.MaxInt8
	numOfRank := 1

	nCards := len(h.cards)
	for i, card := range h.cards {
		if h.straightFlush == 0 {
			h.checkStraight(card, sfTracker[card.Suit], deck.HighAce, &h.straightFlush)
			if h.straightFlush > 0 {
				h.straightFlushSuit = card.Suit
			}
		}

		if h.straight == 0 {
			h.checkStraight(card, &sTracker, deck.HighAce, &h.straight)
		}

		if err := h.checkFlush(card, suitCounts); err != nil {
			return err
		}

		isLastCard := i+1 == nCards
		if err := h.checkPairs(card, isLastCard, &prevRank, &numOfRank); err != nil {
			return err
		}
	}

	// check for straights and straight-flushes with a low-ace
	for _, card := range h.cards {
		if card.Rank != deck.Ace {
			break
		}

		if h.straightFlush == 0 {
			h.checkStraight(card, sfTracker[card.Suit], deck.LowAce, &h.straightFlush)
			if h.straightFlush > 0 {
				h.straightFlushSuit = card.Suit
			}
		}

		if h.straight == 0 {
			h.checkStraight(card, &sTracker, deck.LowAce, &h.straight)
		}
	}

	return nil
}

// GetHand will return the best possible hand the cards can make
func (h *HandAnalyzer) GetHand() Hand {
	return h.hand
}

// GetRoyalFlush will return true if there's a royal flush
func (h *HandAnalyzer) GetRoyalFlush() bool {
	return h.straightFlush == deck.Ace
}

// GetStraightFlush will return the best straight flush, if possible
func (h *HandAnalyzer) GetStraightFlush() (int, bool) {
	if h.straightFlush > 0 {
		return h.straightFlush, true
	}

	return 0, false
}

// GetFourOfAKind will return the best four of a kind, if possible
func (h *HandAnalyzer) GetFourOfAKind() (int, bool) {
	if len(h.quads) > 0 {
		return h.quads[0], true
	}

	return 0, false
}

// GetFullHouse will return the best full house, if possible
// The pair may come from a second set of trips
func (h *HandAnalyzer) GetFullHouse() ([]int, bool) {
	if len(h.trips) == 0 {
		return nil, false
	}

	trips := h.trips[0]

	pair, ok := h.GetPair()
	if !ok {
		if len(h.trips) == 1 {
			// could not find a pair from a second set of trips
			return nil, false
		}

		pair = h.trips[1]
	} else if len(h.trips) >= 2 && h.trips[1] > pair {
		// with seven cards we may have two sets of trips and a separate pair
		// in that case, let's make sure we grab the better pair from the trips
		pair = h.trips[1]
	}

	return []int{trips, pair}, true
}

// GetFlush will return the best possible flush, if possible
func (h *HandAnalyzer) GetFlush() ([]int, bool) {
	if h.flush != nil {
		return h.flush, true
	}

	return nil, false
}

// GetStraight will return the best straight, if possible
func (h *HandAnalyzer) GetStraight() (int, bool) {
	if h.straight > 0 {
		return h.straight, true
	}

	return 0, false
}

// GetThreeOfAKind will return the best three of a kind, if possible
func (h *HandAnalyzer) GetThreeOfAKind() (int, bool) {
	if len(h.trips) > 0 {
		return h.trips[0], true
	}

	return 0, false
}

// GetTwoPair will return the best two pairs, if possible
func (h *HandAnalyzer) GetTwoPair() ([]int, bool) {
	if len(h.pairs) >= 2 {
		return h.pairs[0:2], true
	}

	return nil, false
}

// GetPair will return the best pair, if possible
func (h *HandAnalyzer) GetPair() (int, bool) {
	if len(h.pairs) > 0 {
		return h.pairs[0], true
	}

	return 0, false
}

// GetHighCard will return the high card
func (h *HandAnalyzer) GetHighCard() ([]int, bool) {
	cards := make([]int, h.size)
	for i := 0; i < h.size; i++ {
		if i < len(h.cards) {
			cards[i] = h.cards[i].Rank
		}
	}
	return cards, true
}

func calculateStrength(hand Hand, cards []int) int {
	fiveCards := make([]int, 5)
	copy(fiveCards, cards)

	strength := math.Pow(15, 5) * float64(hand)
	for i := 0; i < 5; i++ {
		val := fiveCards[4-i]
		strength += math.Pow(15, float64(i)) * float64(val)
	}

	return int(strength)
}

// GetStrength returns the strength of the hand
func (h *HandAnalyzer) GetStrength() int {
	if h.strength > 0 {
		return h.strength
	}

	h.strength = h.getStrength()
	return h.strength
}

func (h *HandAnalyzer) getStrength() int {
	hand := h.GetHand()

	switch hand {
	case HighCard:
		c, _ := h.GetHighCard()
		return calculateStrength(hand, c)
	case OnePair:
		pair, _ := h.GetPair()
		return calculateStrength(hand, append([]int{pair}, h.kickerRanks(h.size-2, pair)...))
	case TwoPair:
		twoPair, _ := h.GetTwoPair()
		kickers := h.kickerRanks(1, twoPair[0], twoPair[1])
		return calculateStrength(hand, append([]int{twoPair[0], twoPair[1]}, kickers...))
	case ThreeOfAKind:
		trips, _ := h.GetThreeOfAKind()
		return calculateStrength(hand, append([]int{trips}, h.kickerRanks(2, trips)...))
	case Straight:
		s, _ := h.GetStraight()
		return calculateStrength(hand, []int{s})
	case Flush:
		f, _ := h.GetFlush()
		return calculateStrength(hand, f)
	case FullHouse:
		fh, _ := h.GetFullHouse()
		return calculateStrength(hand, fh)
	case FourOfAKind:
		fk, _ := h.GetFourOfAKind()
		return calculateStrength(hand, append([]int{fk}, h.kickerRanks(1, fk)...))
	case StraightFlush:
		s, _ := h.GetStraightFlush()
		return calculateStrength(hand, []int{s})
	case RoyalFlush:
		return calculateStrength(hand, []int{})
	}

	panic("unknown hand")
}

// kickerRanks returns up to n ranks not matching any of the excluded ranks
func (h *HandAnalyzer) kickerRanks(n int, exclude ...int) []int {
	ranks := make([]int, 0, n)

Loop:
	for _, card := range h.cards {
		for _, ex := range exclude {
			if card.Rank == ex {
				continue Loop
			}
		}

		ranks = append(ranks, card.Rank)
		if len(ranks) == n {
			break
		}
	}

	return ranks
}

func (h *HandAnalyzer) checkFlush(card *deck.Card, suitCounts map[deck.Suit][]int) error {
	ranks := append(suitCounts[card.Suit], card.Rank)
	suitCounts[card.Suit] = ranks

	if len(ranks) >= h.size {
		for i := 1; i < len(ranks); i++ {
			if ranks[i] == ranks[i-1] {
				return ErrDuplicateCard
			}
		}

		if h.flush == nil {
			h.flush = ranks[0:h.size]
			h.flushSuit = card.Suit
		}
	}

	return nil
}

func (h *HandAnalyzer) checkPairs(card *deck.Card, isLastCard bool, prevRank, numOfRank *int) error {
	if card.Rank == *prevRank {
		*numOfRank++
		if *numOfRank > 4 {
			return ErrTooManyOfRank
		}
	}

	// if the card is no longer the same rank, or we're at the end
	// check the longest group of cards we can form
	if card.Rank != *prevRank || isLastCard {
		// make sure this isn't the first card
		if *prevRank != math.MaxInt8 || isLastCard {
			if isLastCard && *prevRank == math.MaxInt8 {
				*prevRank = card.Rank
			}

			switch *numOfRank {
			case 4:
				h.quads = append(h.quads, *prevRank)
			case 3:
				h.trips = append(h.trips, *prevRank)
			case 2:
				h.pairs = append(h.pairs, *prevRank)
			}
		}

		// reset back to 1 since we changed rank
		*numOfRank = 1
	}

	*prevRank = card.Rank
	return nil
}

// calculateHand will determine the best hand
// This must be called after analyzeHand() has been called
func (h *HandAnalyzer) calculateHand() {
	if h.GetRoyalFlush() {
		h.hand = RoyalFlush
	} else if _, ok := h.GetStraightFlush(); ok {
		h.hand = StraightFlush
	} else if _, ok := h.GetFourOfAKind(); ok {
		h.hand = FourOfAKind
	} else if _, ok := h.GetFullHouse(); ok {
		h.hand = FullHouse
	} else if _, ok := h.GetFlush(); ok {
		h.hand = Flush
	} else if _, ok := h.GetStraight(); ok {
		h.hand = Straight
	} else if _, ok := h.GetThreeOfAKind(); ok {
		h.hand = ThreeOfAKind
	} else if _, ok := h.GetTwoPair(); ok {
		h.hand = TwoPair
	} else if _, ok := h.GetPair(); ok {
		h.hand = OnePair
	} else {
		h.hand = HighCard
	}
}

// GetCards returns the exact five cards forming the hand, from high to low.
// A wheel is returned as 5,4,3,2,A
func (h *HandAnalyzer) GetCards() deck.Hand {
	switch h.hand {
	case HighCard:
		n := h.size
		if n > len(h.cards) {
			n = len(h.cards)
		}
		return h.cards[0:n]
	case OnePair:
		pair, _ := h.GetPair()
		return append(h.cardsOfRank(pair, 2), h.kickerCards(h.size-2, pair)...)
	case TwoPair:
		twoPair, _ := h.GetTwoPair()
		cards := append(h.cardsOfRank(twoPair[0], 2), h.cardsOfRank(twoPair[1], 2)...)
		return append(cards, h.kickerCards(1, twoPair[0], twoPair[1])...)
	case ThreeOfAKind:
		trips, _ := h.GetThreeOfAKind()
		return append(h.cardsOfRank(trips, 3), h.kickerCards(2, trips)...)
	case Straight:
		return h.straightCards(h.straight, "")
	case Flush:
		return h.cardsOfSuit(h.flushSuit, h.size)
	case FullHouse:
		fh, _ := h.GetFullHouse()
		return append(h.cardsOfRank(fh[0], 3), h.cardsOfRank(fh[1], 2)...)
	case FourOfAKind:
		fk, _ := h.GetFourOfAKind()
		return append(h.cardsOfRank(fk, 4), h.kickerCards(1, fk)...)
	case StraightFlush, RoyalFlush:
		return h.straightCards(h.straightFlush, h.straightFlushSuit)
	}

	panic("unknown hand")
}

// cardsOfRank picks the first n cards of the given rank
func (h *HandAnalyzer) cardsOfRank(rank, n int) deck.Hand {
	cards := make(deck.Hand, 0, n)
	for _, card := range h.cards {
		if card.Rank == rank {
			cards = append(cards, card)
			if len(cards) == n {
				break
			}
		}
	}

	return cards
}

// cardsOfSuit picks the highest n cards of the given suit
func (h *HandAnalyzer) cardsOfSuit(suit deck.Suit, n int) deck.Hand {
	cards := make(deck.Hand, 0, n)
	for _, card := range h.cards {
		if card.Suit == suit {
			cards = append(cards, card)
			if len(cards) == n {
				break
			}
		}
	}

	return cards
}

// kickerCards picks up to n cards not matching any of the excluded ranks
func (h *HandAnalyzer) kickerCards(n int, exclude ...int) deck.Hand {
	cards := make(deck.Hand, 0, n)

Loop:
	for _, card := range h.cards {
		for _, ex := range exclude {
			if card.Rank == ex {
				continue Loop
			}
		}

		cards = append(cards, card)
		if len(cards) == n {
			break
		}
	}

	return cards
}

// straightCards picks one card per rank from high down.
// An empty suit matches any suit
func (h *HandAnalyzer) straightCards(high int, suit deck.Suit) deck.Hand {
	cards := make(deck.Hand, 0, h.size)
	for i := 0; i < h.size; i++ {
		rank := high - i
		if rank == deck.LowAce {
			rank = deck.Ace
		}

		for _, card := range h.cards {
			if card.Rank != rank {
				continue
			}

			if suit != "" && card.Suit != suit {
				continue
			}

			cards = append(cards, card)
			break
		}
	}

	return cards
}
