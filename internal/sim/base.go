package sim

// Base constants. One base per player exists for the whole match; its
// destruction ends the match.
const (
	BaseRadius      = 3.0
	BaseMaxHP       = 2000.0
	baseSpeed       = 1.5 // m/s while being relocated
	baseArrive      = 0.5
	LaserCooldown   = 10.0
	LaserRange      = 40.0
	laserUnitDamage = 120.0
	laserBaseDamage = 300.0
)

// Base is a per-player structure. It accepts the same command protocol as
// units: move nodes set the relocation target, ability nodes trigger the
// laser.
type Base struct {
	ID    int
	Owner int
	Pos   Vec2
	HP    float64
	MaxHP float64

	MoveTarget *Vec2 // nil when parked
	IsSelected bool  // UI-facing selection flag, lives on the entity

	LaserCooldown float64
	Queue         CommandQueue
}

func newBase(id, owner int, pos Vec2) *Base {
	return &Base{
		ID:    id,
		Owner: owner,
		Pos:   pos,
		HP:    BaseMaxHP,
		MaxHP: BaseMaxHP,
	}
}

// Alive reports whether the base still stands.
func (b *Base) Alive() bool { return b.HP > 0 }

// HPFraction is the remaining health ratio used by time-limit resolution.
func (b *Base) HPFraction() float64 {
	if b.MaxHP <= 0 {
		return 0
	}
	return b.HP / b.MaxHP
}
