package render

import (
	"github.com/atotto/clipboard"
)

// copyReport puts the running match report on the system clipboard so a
// result can be pasted straight into a bug report or balance note.
func (g *Game) copyReport() {
	report := g.state.Stats.Report(g.state.Result, g.state.Elapsed)
	if err := clipboard.WriteAll(report); err != nil {
		g.setFlash("clipboard unavailable")
		return
	}
	g.setFlash("report copied to clipboard")
}
