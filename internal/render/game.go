package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/photonforge/arena/internal/sim"
)

// Screen geometry. The arena is drawn at a fixed meters-to-pixels scale
// with a HUD strip along the top.
const (
	PixelsPerMeter = 8.0
	hudHeight      = 24
	simDT          = 1.0 / 60.0
)

// Game is the ebiten front end: it owns the simulation state, the local
// player's input, and a scripted opponent driving the other side.
type Game struct {
	state    *sim.State
	opponent *scriptedOpponent

	localOwner int
	selected   []int // unit IDs under selection
	baseSel    bool

	dragStart  sim.Vec2
	dragging   bool
	flash      string // transient HUD message
	flashTimer float64

	splashes []splash // decaying visual echoes of sim effects

	// Previous-frame input state for edge detection.
	prevMouseLeft  bool
	prevMouseRight bool
	prevKeys       map[ebiten.Key]bool
}

// splash is a short-lived marker spawned from one sim.Effect.
type splash struct {
	kind sim.EffectKind
	pos  sim.Vec2
	to   sim.Vec2
	age  float64
	ttl  float64
}

// New builds the viewer on the named built-in layout.
func New(layoutName string, seed int64, timeLimit float64) (*Game, error) {
	layout, ok := sim.LayoutByName(layoutName)
	if !ok {
		return nil, fmt.Errorf("render: unknown layout %q", layoutName)
	}
	state, err := sim.NewState(layout, seed, timeLimit)
	if err != nil {
		return nil, err
	}
	return &Game{
		state:      state,
		opponent:   newScriptedOpponent(1, seed),
		localOwner: 0,
		prevKeys:   map[ebiten.Key]bool{},
	}, nil
}

// State exposes the underlying simulation, mainly for tests.
func (g *Game) State() *sim.State { return g.state }

func (g *Game) Update() error {
	g.handleInput()
	g.opponent.act(g.state)
	g.state.Update(simDT)
	g.drainEffects()

	if g.flashTimer > 0 {
		g.flashTimer -= simDT
	}
	alive := g.splashes[:0]
	for _, sp := range g.splashes {
		sp.age += simDT
		if sp.age < sp.ttl {
			alive = append(alive, sp)
		}
	}
	g.splashes = alive
	return nil
}

// drainEffects converts the tick's effect log into transient visuals.
// The log is the sole channel between combat resolution and drawing.
func (g *Game) drainEffects() {
	for _, e := range g.state.Effects {
		ttl := 0.25
		switch e.Kind {
		case sim.EffectTelegraph:
			ttl = e.Value // show the warning for the whole telegraph
		case sim.EffectDeath, sim.EffectLaser:
			ttl = 0.5
		case sim.EffectPromotion:
			ttl = 0.8
		}
		g.splashes = append(g.splashes, splash{
			kind: e.Kind, pos: e.Pos, to: e.To, ttl: ttl,
		})
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{24, 26, 30, 255})
	g.drawArena(screen)
	g.drawBases(screen)
	g.drawUnits(screen)
	g.drawSplashes(screen)
	g.drawDragBox(screen)
	g.drawHUD(screen)
}

func (g *Game) drawDragBox(screen *ebiten.Image) {
	if !g.dragging {
		return
	}
	mx, my := ebiten.CursorPosition()
	x1, y1 := toScreen(g.dragStart)
	x2, y2 := float32(mx), float32(my)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	vector.StrokeRect(screen, x1, y1, x2-x1, y2-y1, 1, color.RGBA{255, 255, 255, 120}, false)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.state.ArenaWidth * PixelsPerMeter),
		int(g.state.ArenaHeight*PixelsPerMeter) + hudHeight
}

// toScreen converts arena meters to screen pixels.
func toScreen(p sim.Vec2) (float32, float32) {
	return float32(p.X * PixelsPerMeter), float32(p.Y*PixelsPerMeter) + hudHeight
}

func toWorld(x, y int) sim.Vec2 {
	return sim.Vec2{
		X: float64(x) / PixelsPerMeter,
		Y: (float64(y) - hudHeight) / PixelsPerMeter,
	}
}

func playerColor(s *sim.State, owner int) color.RGBA {
	c := s.Players[owner].Color
	return color.RGBA{c[0], c[1], c[2], 255}
}

func (g *Game) drawArena(screen *ebiten.Image) {
	w, h := toScreen(sim.Vec2{X: g.state.ArenaWidth, Y: g.state.ArenaHeight})
	vector.StrokeRect(screen, 0, hudHeight, w, h-hudHeight, 1, color.RGBA{70, 74, 82, 255}, false)

	for _, o := range g.state.Obstacles {
		x, y := toScreen(o.Pos.Sub(sim.Vec2{X: o.Width / 2, Y: o.Height / 2}))
		pw := float32(o.Width * PixelsPerMeter)
		ph := float32(o.Height * PixelsPerMeter)
		col := color.RGBA{90, 88, 80, 255}
		if o.Kind == sim.ObstacleDebris {
			col = color.RGBA{72, 66, 58, 255}
		}
		vector.FillRect(screen, x, y, pw, ph, col, false)
	}
}

func (g *Game) drawBases(screen *ebiten.Image) {
	for _, b := range g.state.Bases {
		if !b.Alive() {
			continue
		}
		x, y := toScreen(b.Pos)
		col := playerColor(g.state, b.Owner)
		vector.FillCircle(screen, x, y, float32(sim.BaseRadius*PixelsPerMeter), col, true)
		if b.IsSelected {
			vector.StrokeCircle(screen, x, y, float32(sim.BaseRadius*PixelsPerMeter)+3, 2,
				color.RGBA{255, 255, 255, 200}, true)
		}
		g.drawHealthBar(screen, b.Pos, sim.BaseRadius, b.HP/b.MaxHP)

		if b.LaserCooldown > 0 {
			label := fmt.Sprintf("%.0f", b.LaserCooldown)
			text.Draw(screen, label, basicfont.Face7x13, int(x)-4, int(y)+4,
				color.RGBA{0, 0, 0, 255})
		}
	}
}

func (g *Game) drawUnits(screen *ebiten.Image) {
	for _, u := range g.state.Units {
		st := u.Kind.Stats()
		x, y := toScreen(u.Pos)
		r := float32(st.Radius * PixelsPerMeter)
		col := playerColor(g.state, u.Owner)
		if u.Cloaked() {
			col.A = 90
		}

		// Cosmetic trail first so the body overdraws it.
		for _, p := range u.Particles {
			px, py := toScreen(p.Pos)
			a := uint8(120 * (1 - p.Age/p.Lifetime))
			vector.FillCircle(screen, px, py, 1.5, color.RGBA{col.R, col.G, col.B, a}, false)
		}

		if st.Flying {
			vector.StrokeCircle(screen, x, y, r+2, 1, col, true)
		}
		vector.FillCircle(screen, x, y, r, col, true)

		if g.isSelected(u.ID) {
			vector.StrokeCircle(screen, x, y, r+3, 1.5, color.RGBA{255, 255, 255, 220}, true)
			g.drawWaypoints(screen, u)
		}
		if u.ShieldTimer > 0 {
			vector.StrokeCircle(screen, x, y, r+4, 1, color.RGBA{120, 200, 255, 180}, true)
		}
		g.drawHealthBar(screen, u.Pos, st.Radius, u.HP/st.MaxHP)
	}
}

func (g *Game) drawWaypoints(screen *ebiten.Image, u *sim.Unit) {
	prev := u.Pos
	for _, n := range u.Queue.Nodes() {
		if n.Kind != sim.CommandMove {
			continue
		}
		x1, y1 := toScreen(prev)
		x2, y2 := toScreen(n.Position)
		vector.StrokeLine(screen, x1, y1, x2, y2, 1, color.RGBA{255, 255, 255, 70}, false)
		prev = n.Position
	}
}

func (g *Game) drawHealthBar(screen *ebiten.Image, pos sim.Vec2, radius, frac float64) {
	if frac >= 1 {
		return
	}
	if frac < 0 {
		frac = 0
	}
	x, y := toScreen(pos)
	w := float32(radius * 2 * PixelsPerMeter)
	bx := x - w/2
	by := y - float32(radius*PixelsPerMeter) - 5
	vector.FillRect(screen, bx, by, w, 2, color.RGBA{40, 40, 40, 255}, false)
	vector.FillRect(screen, bx, by, w*float32(frac), 2, color.RGBA{90, 220, 90, 255}, false)
}

func (g *Game) drawSplashes(screen *ebiten.Image) {
	for _, sp := range g.splashes {
		x, y := toScreen(sp.pos)
		fade := 1 - sp.age/sp.ttl
		switch sp.kind {
		case sim.EffectHitSpark, sim.EffectAbilityHit:
			vector.StrokeCircle(screen, x, y, 4, 1, color.RGBA{255, 220, 120, uint8(200 * fade)}, true)
		case sim.EffectTelegraph:
			vector.StrokeCircle(screen, x, y, 10, 1.5, color.RGBA{255, 80, 80, uint8(160 * fade)}, true)
		case sim.EffectHeal:
			vector.StrokeCircle(screen, x, y, 5, 1, color.RGBA{120, 255, 140, uint8(180 * fade)}, true)
		case sim.EffectLaser:
			x2, y2 := toScreen(sp.to)
			vector.StrokeLine(screen, x, y, x2, y2, 2, color.RGBA{255, 60, 60, uint8(230 * fade)}, false)
		case sim.EffectDeath:
			vector.StrokeCircle(screen, x, y, 6*float32(sp.age/sp.ttl)+2, 1,
				color.RGBA{220, 220, 220, uint8(180 * fade)}, true)
		case sim.EffectPromotion:
			text.Draw(screen, "+", basicfont.Face7x13, int(x)-3, int(y)-10,
				color.RGBA{255, 240, 140, 255})
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, float32(g.state.ArenaWidth*PixelsPerMeter), hudHeight,
		color.RGBA{16, 17, 20, 255}, false)

	p := g.state.Players[g.localOwner]
	hud := fmt.Sprintf("photons %.0f  (+%.0f/s)  t=%.0fs", p.Photons, p.IncomeRate, g.state.Elapsed)
	text.Draw(screen, hud, basicfont.Face7x13, 8, 16, color.White)

	keys := "1-7 train  RMB move  Q ability  E laser  B base  F1 surrender  F2 copy report"
	ebitenutil.DebugPrintAt(screen, keys, 320, 4)

	if g.state.Result.Over {
		msg := "draw"
		if w := g.state.Result.Winner; w >= 0 {
			msg = fmt.Sprintf("player %d wins", w)
		}
		msg += " (" + g.state.Result.Reason + ")"
		text.Draw(screen, msg, basicfont.Face7x13,
			int(g.state.ArenaWidth*PixelsPerMeter/2)-60, 16, color.RGBA{255, 230, 120, 255})
	} else if g.flashTimer > 0 {
		text.Draw(screen, g.flash, basicfont.Face7x13,
			int(g.state.ArenaWidth*PixelsPerMeter/2)-60, 16, color.RGBA{200, 200, 200, 255})
	}
}

func (g *Game) isSelected(id int) bool {
	for _, s := range g.selected {
		if s == id {
			return true
		}
	}
	return false
}

func (g *Game) setFlash(msg string) {
	g.flash = msg
	g.flashTimer = 2.0
}
