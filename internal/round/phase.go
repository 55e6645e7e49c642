package round

// Phase is the orchestrator's coarse state within a round. Phases only
// move forward; the sole back-edges are the setup-failure rollback and an
// explicit reset.
type Phase int

const (
	// Betting accepts a bet; no remote game exists yet
	Betting Phase = iota

	// Creating runs the setup sequence: create game, add player, shuffle, deal
	Creating

	// Playing accepts hit/stand while the remote game is live
	Playing

	// Finished holds the settled outcome until the round is reset
	Finished
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case Betting:
		return "betting"
	case Creating:
		return "creating"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}
