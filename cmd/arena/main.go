package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/photonforge/arena/internal/render"
)

func main() {
	layout := flag.String("layout", "pillars", "built-in arena layout")
	seed := flag.Int64("seed", 1, "simulation seed")
	limit := flag.Float64("time-limit", 300, "match time limit in seconds, 0 for none")
	flag.Parse()

	g, err := render.New(*layout, *seed, *limit)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Photon Arena")
	ebiten.SetWindowSize(1280, 744)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
