package sim

// ArenaLayout bundles the static match geometry supplied at match start.
type ArenaLayout struct {
	Name      string
	Width     float64 // meters
	Height    float64
	Obstacles []Obstacle
}

// Built-in layouts. Obstacle IDs are per-layout.
var layouts = []ArenaLayout{
	{
		Name:   "open-field",
		Width:  160,
		Height: 90,
		Obstacles: []Obstacle{
			{ID: 0, Kind: ObstacleDebris, Pos: Vec2{60, 30}, Width: 4, Height: 3},
			{ID: 1, Kind: ObstacleDebris, Pos: Vec2{100, 60}, Width: 3, Height: 4},
		},
	},
	{
		Name:   "pillars",
		Width:  160,
		Height: 90,
		Obstacles: []Obstacle{
			{ID: 0, Kind: ObstaclePillar, Pos: Vec2{55, 25}, Width: 5, Height: 5},
			{ID: 1, Kind: ObstaclePillar, Pos: Vec2{55, 65}, Width: 5, Height: 5},
			{ID: 2, Kind: ObstaclePillar, Pos: Vec2{105, 25}, Width: 5, Height: 5},
			{ID: 3, Kind: ObstaclePillar, Pos: Vec2{105, 65}, Width: 5, Height: 5},
			{ID: 4, Kind: ObstaclePillar, Pos: Vec2{80, 45}, Width: 6, Height: 6},
		},
	},
	{
		Name:   "crossfire",
		Width:  160,
		Height: 90,
		Obstacles: []Obstacle{
			{ID: 0, Kind: ObstacleWall, Pos: Vec2{80, 20}, Width: 2.5, Height: 28},
			{ID: 1, Kind: ObstacleWall, Pos: Vec2{80, 70}, Width: 2.5, Height: 28},
			{ID: 2, Kind: ObstacleDebris, Pos: Vec2{50, 45}, Width: 4, Height: 3},
			{ID: 3, Kind: ObstacleDebris, Pos: Vec2{110, 45}, Width: 4, Height: 3},
		},
	},
}

// Layouts returns the built-in arena layouts.
func Layouts() []ArenaLayout {
	out := make([]ArenaLayout, len(layouts))
	copy(out, layouts)
	return out
}

// LayoutByName returns the named layout, or false if unknown.
func LayoutByName(name string) (ArenaLayout, bool) {
	for _, l := range layouts {
		if l.Name == name {
			return l, true
		}
	}
	return ArenaLayout{}, false
}
