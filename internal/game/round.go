package game

// Round is the phase of a hand. Betting happens in Preflop through River;
// Starting, Ante, Showdown and Complete are bookkeeping phases.
type Round int

const (
	RoundStarting Round = iota
	RoundAnte
	RoundPreflop
	RoundFlop
	RoundTurn
	RoundRiver
	RoundShowdown
	RoundComplete
)

func (r Round) String() string {
	switch r {
	case RoundStarting:
		return "starting"
	case RoundAnte:
		return "ante"
	case RoundPreflop:
		return "preflop"
	case RoundFlop:
		return "flop"
	case RoundTurn:
		return "turn"
	case RoundRiver:
		return "river"
	case RoundShowdown:
		return "showdown"
	case RoundComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// IsBetting reports whether agents act during this round.
func (r Round) IsBetting() bool {
	return r >= RoundPreflop && r <= RoundRiver
}

// BoardSize returns how many community cards are on the board once this round
// is reached.
func (r Round) BoardSize() int {
	switch r {
	case RoundFlop:
		return 3
	case RoundTurn:
		return 4
	case RoundRiver, RoundShowdown, RoundComplete:
		return 5
	default:
		return 0
	}
}

// next returns the following round in the normal hand sequence.
func (r Round) next() Round {
	if r >= RoundComplete {
		return RoundComplete
	}
	return r + 1
}

// MarshalText encodes the round as its name for the wire format.
func (r Round) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a round name.
func (r *Round) UnmarshalText(text []byte) error {
	for candidate := RoundStarting; candidate <= RoundComplete; candidate++ {
		if candidate.String() == string(text) {
			*r = candidate
			return nil
		}
	}
	return errUnknownRound(string(text))
}
