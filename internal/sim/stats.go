package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlayerStats is the per-owner slice of a match's statistics.
type PlayerStats struct {
	UnitsTrained int
	UnitsKilled  int
	DamageDealt  float64
	PhotonsSpent float64
}

// MatchStats accumulates across a match and is read at victory time to
// populate the end-of-match report. It is never consulted by simulation
// decisions.
type MatchStats struct {
	MatchID   string
	StartedAt time.Time
	Players   [2]PlayerStats
}

func newMatchStats() MatchStats {
	return MatchStats{
		MatchID:   uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// Report renders the statistics as a text block in the style the viewer
// copies to the clipboard and the headless runner prints.
func (m MatchStats) Report(result MatchResult, elapsed float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Match Report %s ===\n", m.MatchID)
	fmt.Fprintf(&sb, "duration: %.1fs  outcome: %s\n", elapsed, result.Reason)
	switch result.Winner {
	case -1:
		sb.WriteString("winner: draw\n")
	default:
		fmt.Fprintf(&sb, "winner: player %d\n", result.Winner)
	}
	for i, ps := range m.Players {
		fmt.Fprintf(&sb, "player %d: trained=%d killed=%d damage=%.0f spent=%.0f\n",
			i, ps.UnitsTrained, ps.UnitsKilled, ps.DamageDealt, ps.PhotonsSpent)
	}
	return sb.String()
}
