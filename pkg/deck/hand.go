package deck

import "strings"

// Hand represents a collection of cards
type Hand []*Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h *Hand) HasCard(card *Card) bool {
	for _, c := range *h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// Strings returns the short string form of each card
func (h Hand) Strings() []string {
	s := make([]string, len(h))
	for i, c := range h {
		s[i] = c.String()
	}

	return s
}

// HTML renders the hand like "Ah, Kd" with the suits as HTML entities
func (h Hand) HTML() string {
	s := make([]string, len(h))
	for i, c := range h {
		s[i] = c.HTML()
	}

	return strings.Join(s, ", ")
}
