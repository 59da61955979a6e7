package render

import (
	"testing"

	"github.com/photonforge/arena/internal/sim"
)

func newScriptedState(t *testing.T) *sim.State {
	t.Helper()
	layout, ok := sim.LayoutByName("open-field")
	if !ok {
		t.Fatal("open-field layout missing")
	}
	s, err := sim.NewState(layout, 1, 0)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return s
}

func TestScriptedOpponent_TrainsOnCadence(t *testing.T) {
	s := newScriptedState(t)
	o := newScriptedOpponent(1, 1)

	// Two training windows plus slack.
	for i := 0; i < int(2.5*opponentTrainEvery/simDT); i++ {
		o.act(s)
		s.Update(simDT)
	}
	if got := len(s.UnitsOf(1)); got < 2 {
		t.Fatalf("opponent trained %d units, want at least 2", got)
	}
	if got := len(s.UnitsOf(0)); got != 0 {
		t.Fatalf("opponent trained for the wrong owner: %d units", got)
	}
}

func TestScriptedOpponent_KeepsUnitsOrdered(t *testing.T) {
	s := newScriptedState(t)
	o := newScriptedOpponent(1, 1)

	for i := 0; i < int(opponentTrainEvery/simDT)+60; i++ {
		o.act(s)
		s.Update(simDT)
	}
	units := s.UnitsOf(1)
	if len(units) == 0 {
		t.Fatal("opponent never trained")
	}
	for _, u := range units {
		if u.Queue.Len() == 0 {
			t.Fatalf("unit %d left idle by the opponent", u.ID)
		}
	}
}

func TestScriptedOpponent_StopsAfterMatchEnd(t *testing.T) {
	s := newScriptedState(t)
	o := newScriptedOpponent(1, 1)
	s.Surrender(0)
	s.Update(simDT)
	if !s.Result.Over {
		t.Fatal("surrender did not end the match")
	}

	before := len(s.UnitsOf(1))
	for i := 0; i < int(2*opponentTrainEvery/simDT); i++ {
		o.act(s)
		s.Update(simDT)
	}
	if got := len(s.UnitsOf(1)); got != before {
		t.Fatalf("opponent kept training after the match ended: %d -> %d", before, got)
	}
}
