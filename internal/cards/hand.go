package cards

// Value describes a blackjack hand total as computed client-side. The
// service's snapshot carries authoritative values; this mirror exists so
// the UI can label hands ("soft 17") and feed strategy hints.
type Value struct {
	Total int
	Soft  bool // an ace is currently counted as 11
}

// HandValue computes the best blackjack total for a hand, counting aces
// as 11 and demoting them to 1 while the hand would otherwise bust.
func HandValue(hand []Card) Value {
	total := 0
	aces := 0

	for _, c := range hand {
		total += c.Rank.BlackjackValue()
		if c.Rank == Ace {
			aces++
		}
	}

	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}

	return Value{Total: total, Soft: aces > 0}
}

// IsBlackjack returns true for a two-card 21
func IsBlackjack(hand []Card) bool {
	return len(hand) == 2 && HandValue(hand).Total == 21
}

// IsBust returns true when the best total exceeds 21
func IsBust(hand []Card) bool {
	return HandValue(hand).Total > 21
}
