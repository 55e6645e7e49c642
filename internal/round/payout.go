package round

import "github.com/lox/blackjack21/internal/gameservice"

// Payout returns the amount credited back for a settled bet. Blackjack
// pays 3:2, a regular win pays 1:1, a push returns the stake, and a loss
// or bust returns nothing. The returned amount includes the stake, so a
// 10-chip winning bet credits 20.
func Payout(result string, bet int) int {
	switch result {
	case gameservice.ResultBlackjack:
		return bet * 5 / 2
	case gameservice.ResultWin:
		return bet * 2
	case gameservice.ResultPush:
		return bet
	default:
		return 0
	}
}
