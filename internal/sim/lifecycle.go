package sim

// Match end reasons, stable strings for logs and reports.
const (
	ReasonBaseDestroyed = "base_destroyed"
	ReasonMutual        = "mutual_destruction"
	ReasonTimeLimit     = "time_limit"
	ReasonSurrender     = "surrender"
)

// MatchResult is the terminal state of a match. Winner is a player index,
// or -1 for a draw.
type MatchResult struct {
	Over   bool
	Winner int
	Reason string
}

// Surrender records an external concession for the given player. The match
// ends on the next victory check, so a surrender arriving mid-tick still
// resolves after that tick's combat.
func (s *State) Surrender(owner int) {
	if owner < 0 || owner > 1 || s.Result.Over {
		return
	}
	s.surrendered[owner] = true
}

// checkVictory runs after every other phase of the tick. Surrender wins
// over base state; simultaneous base destruction is a draw; the time limit
// resolves by remaining base health fraction.
func (s *State) checkVictory() {
	if s.Result.Over {
		return
	}
	switch {
	case s.surrendered[0] && s.surrendered[1]:
		s.finish(-1, ReasonSurrender)
		return
	case s.surrendered[0]:
		s.finish(1, ReasonSurrender)
		return
	case s.surrendered[1]:
		s.finish(0, ReasonSurrender)
		return
	}

	alive0, alive1 := s.Bases[0].Alive(), s.Bases[1].Alive()
	switch {
	case !alive0 && !alive1:
		s.finish(-1, ReasonMutual)
		return
	case !alive0:
		s.finish(1, ReasonBaseDestroyed)
		return
	case !alive1:
		s.finish(0, ReasonBaseDestroyed)
		return
	}

	if s.TimeLimit > 0 && s.Elapsed >= s.TimeLimit {
		f0, f1 := s.Bases[0].HPFraction(), s.Bases[1].HPFraction()
		switch {
		case f0 > f1:
			s.finish(0, ReasonTimeLimit)
		case f1 > f0:
			s.finish(1, ReasonTimeLimit)
		default:
			s.finish(-1, ReasonTimeLimit)
		}
	}
}

func (s *State) finish(winner int, reason string) {
	s.Result = MatchResult{Over: true, Winner: winner, Reason: reason}
}
