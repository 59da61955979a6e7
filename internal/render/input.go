package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/photonforge/arena/internal/sim"
)

// Key bindings for the local player. Training keys map 1..7 onto the
// unit roster in declaration order.
var trainKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7,
}

// handleInput runs once per frame before the sim tick. All edges are
// detected against the previous frame's state so a held button issues
// exactly one command.
func (g *Game) handleInput() {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	mx, my := ebiten.CursorPosition()
	world := toWorld(mx, my)

	if left && !g.prevMouseLeft {
		g.dragStart = world
		g.dragging = true
	}
	if !left && g.prevMouseLeft && g.dragging {
		g.finishSelection(g.dragStart, world)
		g.dragging = false
	}
	if right && !g.prevMouseRight {
		g.issueMove(world)
	}

	for i, k := range trainKeys {
		if g.keyPressed(k) {
			kind := sim.AllKinds()[i]
			if g.state.SpawnUnit(g.localOwner, kind, g.state.RallyPoint(g.localOwner)) {
				g.setFlash(fmt.Sprintf("trained %s", kind))
			} else {
				g.setFlash(fmt.Sprintf("cannot afford %s", kind))
			}
		}
	}
	if g.keyPressed(ebiten.KeyQ) {
		g.issueAbility(world)
	}
	if g.keyPressed(ebiten.KeyE) {
		g.issueLaser(world)
	}
	if g.keyPressed(ebiten.KeyB) {
		g.selectBase()
	}
	if g.keyPressed(ebiten.KeyF1) {
		g.state.Surrender(g.localOwner)
	}
	if g.keyPressed(ebiten.KeyF2) {
		g.copyReport()
	}

	g.prevMouseLeft = left
	g.prevMouseRight = right
}

// keyPressed reports a fresh press of k this frame.
func (g *Game) keyPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := g.prevKeys[k]
	g.prevKeys[k] = down
	return down && !was
}

// finishSelection picks every friendly unit inside the drag rectangle.
// A click without a drag selects the single nearest unit within a small
// pick radius instead.
func (g *Game) finishSelection(a, b sim.Vec2) {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}

	g.selected = g.selected[:0]
	g.baseSel = false
	g.state.Bases[g.localOwner].IsSelected = false

	if maxX-minX < 0.5 && maxY-minY < 0.5 {
		if u := g.nearestOwn(b, 1.5); u != nil {
			g.selected = append(g.selected, u.ID)
		}
		return
	}
	for _, u := range g.state.UnitsOf(g.localOwner) {
		if u.Pos.X >= minX && u.Pos.X <= maxX && u.Pos.Y >= minY && u.Pos.Y <= maxY {
			g.selected = append(g.selected, u.ID)
		}
	}
}

func (g *Game) nearestOwn(p sim.Vec2, within float64) *sim.Unit {
	var best *sim.Unit
	bestD := within
	for _, u := range g.state.UnitsOf(g.localOwner) {
		if d := u.Pos.Dist(p); d < bestD {
			best, bestD = u, d
		}
	}
	return best
}

func (g *Game) selectBase() {
	g.selected = g.selected[:0]
	g.baseSel = true
	g.state.Bases[g.localOwner].IsSelected = true
}

// issueMove queues a waypoint on everything selected. The base accepts
// relocation orders through the same queue.
func (g *Game) issueMove(target sim.Vec2) {
	if g.baseSel {
		g.state.EnqueueBaseCommand(g.localOwner, sim.MoveCommand(target))
		return
	}
	for _, id := range g.selected {
		g.state.EnqueueUnitCommand(id, sim.MoveCommand(target))
	}
}

// issueAbility queues each selected unit's ability aimed at the cursor.
func (g *Game) issueAbility(target sim.Vec2) {
	for _, id := range g.selected {
		u := g.state.UnitByID(id)
		if u == nil {
			continue
		}
		dir := target.Sub(u.Pos)
		if !g.state.EnqueueUnitCommand(id, sim.AbilityCommand(target, dir)) {
			g.setFlash("command queue full")
		}
	}
}

// issueLaser queues a base laser shot toward the cursor.
func (g *Game) issueLaser(target sim.Vec2) {
	b := g.state.Bases[g.localOwner]
	dir := target.Sub(b.Pos)
	if b.Queue.Len() == 0 && b.LaserCooldown > 0 {
		g.setFlash(fmt.Sprintf("laser recharging %.0fs", b.LaserCooldown))
	}
	g.state.EnqueueBaseCommand(g.localOwner, sim.AbilityCommand(b.Pos, dir))
}
