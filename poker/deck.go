package poker

import (
	rand "math/rand/v2"
)

// Deck is the set of cards remaining to be dealt. Randomness is injected so
// deals are reproducible under a fixed seed.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a full 52-card deck, shuffled with the provided RNG.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("poker: deck requires an rng")
	}
	d := &Deck{
		cards: make([]Card, 0, NumCards),
		rng:   rng,
	}
	for c := Card(0); c < NumCards; c++ {
		d.cards = append(d.cards, c)
	}
	d.Shuffle()
	return d
}

// Shuffle reorders the remaining cards with Fisher-Yates.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card. The second return is false when the
// deck is exhausted.
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return 0, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// DealN deals up to n cards.
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	out := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, ok := d.Deal()
		if !ok {
			break
		}
		out = append(out, card)
	}
	return out
}

// Remove deletes specific cards from the deck, used to seed replay decks where
// hole cards or board cards are already known. Removing an absent card is a
// no-op.
func (d *Deck) Remove(cards ...Card) {
	for _, target := range cards {
		for i, c := range d.cards {
			if c == target {
				d.cards = append(d.cards[:i], d.cards[i+1:]...)
				break
			}
		}
	}
}

// Replace returns a card to the deck unless it is already present.
func (d *Deck) Replace(card Card) {
	for _, c := range d.cards {
		if c == card {
			return
		}
	}
	d.cards = append(d.cards, card)
}

// Contains reports whether the card is still in the deck.
func (d *Deck) Contains(card Card) bool {
	for _, c := range d.cards {
		if c == card {
			return true
		}
	}
	return false
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}
