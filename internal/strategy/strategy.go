// Package strategy provides basic-strategy hints for the player's current
// hand. It is advisory display text only; nothing here feeds back into
// game flow.
package strategy

import "github.com/lox/blackjack21/internal/cards"

// Advice is a suggested play
type Advice int

const (
	Hit Advice = iota
	Stand
	Double
)

// String returns the display text for an advice value
func (a Advice) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double down"
	default:
		return "?"
	}
}

// Suggest returns basic-strategy advice for the player's hand against the
// dealer's up-card. Splits and surrender are not offered by the service,
// so pairs get the plain hard-total treatment.
func Suggest(hand []cards.Card, upCard cards.Card) Advice {
	value := cards.HandValue(hand)
	dealer := upCard.Rank.BlackjackValue()

	if value.Soft {
		return suggestSoft(value.Total, dealer, len(hand))
	}
	return suggestHard(value.Total, dealer, len(hand))
}

func suggestHard(total, dealer, cardCount int) Advice {
	switch {
	case total >= 17:
		return Stand
	case total >= 13:
		if dealer <= 6 {
			return Stand
		}
		return Hit
	case total == 12:
		if dealer >= 4 && dealer <= 6 {
			return Stand
		}
		return Hit
	case total == 11:
		if cardCount == 2 {
			return Double
		}
		return Hit
	case total == 10:
		if cardCount == 2 && dealer <= 9 {
			return Double
		}
		return Hit
	case total == 9:
		if cardCount == 2 && dealer >= 3 && dealer <= 6 {
			return Double
		}
		return Hit
	default:
		return Hit
	}
}

func suggestSoft(total, dealer, cardCount int) Advice {
	switch {
	case total >= 19:
		return Stand
	case total == 18:
		if dealer >= 3 && dealer <= 6 && cardCount == 2 {
			return Double
		}
		if dealer <= 8 {
			return Stand
		}
		return Hit
	case total == 17:
		if dealer >= 3 && dealer <= 6 && cardCount == 2 {
			return Double
		}
		return Hit
	default:
		if dealer >= 4 && dealer <= 6 && cardCount == 2 {
			return Double
		}
		return Hit
	}
}
