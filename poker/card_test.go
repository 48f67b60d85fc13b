package poker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardEncoding(t *testing.T) {
	// Card identity is 13*suit + value.
	assert.Equal(t, Card(0), NewCard(Two, Spades))
	assert.Equal(t, Card(12), NewCard(Ace, Spades))
	assert.Equal(t, Card(13), NewCard(Two, Clubs))
	assert.Equal(t, Card(51), NewCard(Ace, Diamonds))

	for c := Card(0); c < NumCards; c++ {
		assert.Equal(t, c, NewCard(c.Value(), c.Suit()))
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		in    string
		value uint8
		suit  uint8
	}{
		{"As", Ace, Spades},
		{"as", Ace, Spades},
		{"Td", Ten, Diamonds},
		{"2c", Two, Clubs},
		{"Kh", King, Hearts},
	}
	for _, tc := range tests {
		card, err := ParseCard(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.value, card.Value(), tc.in)
		assert.Equal(t, tc.suit, card.Suit(), tc.in)
	}

	for _, bad := range []string{"", "A", "Xs", "Ax", "AsKs"} {
		_, err := ParseCard(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("AsKs Qd")
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "AsKsQd", NewHand(cards...).Notation())

	_, err = ParseCards("AsK")
	assert.Error(t, err)
}

func TestCardJSONRoundTrip(t *testing.T) {
	hand := MustParseCards("AsTd2c")
	data, err := json.Marshal(NewHand(hand...))
	require.NoError(t, err)
	assert.JSONEq(t, `["As","Td","2c"]`, string(data))

	var decoded Hand
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, NewHand(hand...), decoded)
}

func TestHandMaskAndContains(t *testing.T) {
	hand := NewHand(MustParseCards("2s2c")...)
	assert.True(t, hand.Contains(NewCard(Two, Spades)))
	assert.False(t, hand.Contains(NewCard(Two, Hearts)))
	assert.Equal(t, uint64(1)|uint64(1)<<13, hand.Mask())
}
