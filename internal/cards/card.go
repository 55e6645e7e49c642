// Package cards parses and formats the two-character card codes used by the
// remote card-game service. The service owns the deck; this package only
// gives the client something to render and reason about.
package cards

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return string(rune('0' + int(r)))
		}
		return "?"
	}
}

// BlackjackValue returns the counting value of the rank. Aces count as 11
// here; soft/hard adjustment happens in HandValue.
func (r Rank) BlackjackValue() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// Card represents a single playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// String returns the display form of the card, e.g. "A♠" or "10♥"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Code returns the service's wire form of the card, e.g. "AS" or "0H"
// (the service abbreviates ten to "0")
func (c Card) Code() string {
	rank := c.Rank.String()
	if c.Rank == Ten {
		rank = "0"
	}
	return rank + suitCode(c.Suit)
}

// IsRed returns true if the card's suit is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

func suitCode(s Suit) string {
	switch s {
	case Spades:
		return "S"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	default:
		return "C"
	}
}

// Parse parses a single card code as sent by the service. Both "0H" and
// "10H" forms of a ten are accepted.
func Parse(code string) (Card, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 2 || len(code) > 3 {
		return Card{}, fmt.Errorf("invalid card code %q", code)
	}

	rankStr, suitStr := code[:len(code)-1], code[len(code)-1:]

	var rank Rank
	switch rankStr {
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = Rank(rankStr[0] - '0')
	case "0", "10", "T":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank %q in card code %q", rankStr, code)
	}

	var suit Suit
	switch suitStr {
	case "S":
		suit = Spades
	case "H":
		suit = Hearts
	case "D":
		suit = Diamonds
	case "C":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit %q in card code %q", suitStr, code)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// ParseAll parses a slice of card codes, failing on the first invalid one
func ParseAll(codes []string) ([]Card, error) {
	parsed := make([]Card, 0, len(codes))
	for _, code := range codes {
		card, err := Parse(code)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, card)
	}
	return parsed, nil
}
