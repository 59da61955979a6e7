package sim

// Player is a per-owner resource pool. Photons are monotonically
// non-negative; income steps up over elapsed match time.
type Player struct {
	ID         int
	Photons    float64
	IncomeRate float64
	Color      [3]uint8 // cosmetic only
}

var defaultColors = [2][3]uint8{
	{230, 90, 60},  // warm red
	{70, 130, 235}, // cool blue
}

func newPlayer(id int) *Player {
	return &Player{ID: id, IncomeRate: 1, Color: defaultColors[id%2]}
}

// CanAfford reports whether the player can pay the given cost.
func (p *Player) CanAfford(cost float64) bool { return p.Photons >= cost }

// spend deducts cost, clamping at zero. Callers check affordability first.
func (p *Player) spend(cost float64) {
	p.Photons -= cost
	if p.Photons < 0 {
		p.Photons = 0
	}
}
