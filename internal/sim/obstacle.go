package sim

import "errors"

// ObstacleKind distinguishes obstacle visuals. Collision treats every kind
// as the same axis-aligned rectangle.
type ObstacleKind int

const (
	ObstacleWall ObstacleKind = iota
	ObstaclePillar
	ObstacleDebris
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleWall:
		return "wall"
	case ObstaclePillar:
		return "pillar"
	case ObstacleDebris:
		return "debris"
	default:
		return "unknown"
	}
}

// Obstacle is a static axis-aligned rectangle, immutable for the match.
// Pos is the rectangle centre; Width/Height are full extents in meters.
type Obstacle struct {
	ID     int
	Kind   ObstacleKind
	Pos    Vec2
	Width  float64
	Height float64
}

// contains reports whether p falls inside the rectangle expanded by radius
// on every side. This is the legacy point-in-expanded-AABB approximation:
// it overcounts near corners compared to true circle-rectangle intersection.
func (o Obstacle) contains(p Vec2, radius float64) bool {
	hw := o.Width/2 + radius
	hh := o.Height/2 + radius
	return p.X > o.Pos.X-hw && p.X < o.Pos.X+hw &&
		p.Y > o.Pos.Y-hh && p.Y < o.Pos.Y+hh
}

// Collides reports whether a disc of the given radius at p overlaps any
// obstacle, using the expanded-rectangle point test.
func Collides(p Vec2, radius float64, obstacles []Obstacle) bool {
	for _, o := range obstacles {
		if o.contains(p, radius) {
			return true
		}
	}
	return false
}

// inBounds reports whether a disc at p fits inside the arena.
func inBounds(p Vec2, radius, arenaW, arenaH float64) bool {
	return p.X >= radius && p.X <= arenaW-radius &&
		p.Y >= radius && p.Y <= arenaH-radius
}

// baseScanStep is the grid pitch used when searching for base positions.
const baseScanStep = 2.0

// ErrNoBasePositions is returned when a layout cannot host two bases.
// Playing without two valid bases is not recoverable by the simulation,
// so match setup must surface this to the map-selection layer.
var ErrNoBasePositions = errors.New("sim: fewer than two valid base positions on this layout")

// ValidBasePositions scans a coarse position grid and returns up to two
// base positions clear of obstacles and bounds, one on each side of the
// arena for fairness. Pathological layouts may yield fewer than two.
func ValidBasePositions(obstacles []Obstacle, arenaW, arenaH float64) []Vec2 {
	margin := BaseRadius * 2
	valid := func(p Vec2) bool {
		return inBounds(p, BaseRadius+1, arenaW, arenaH) && !Collides(p, BaseRadius, obstacles)
	}

	// Scan columns inward from each edge; within a column prefer the row
	// closest to the vertical midline.
	scanSide := func(fromLeft bool) (Vec2, bool) {
		for off := margin; off < arenaW/2; off += baseScanStep {
			x := off
			if !fromLeft {
				x = arenaW - off
			}
			bestDist := arenaH
			var best Vec2
			found := false
			for y := margin; y <= arenaH-margin; y += baseScanStep {
				p := Vec2{x, y}
				if !valid(p) {
					continue
				}
				d := p.Y - arenaH/2
				if d < 0 {
					d = -d
				}
				if d < bestDist {
					bestDist = d
					best = p
					found = true
				}
			}
			if found {
				return best, true
			}
		}
		return Vec2{}, false
	}

	var out []Vec2
	if p, ok := scanSide(true); ok {
		out = append(out, p)
	}
	if p, ok := scanSide(false); ok {
		out = append(out, p)
	}
	return out
}
