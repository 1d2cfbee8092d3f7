//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"therm-ca/internal/app"
	"therm-ca/internal/core"
	"therm-ca/internal/sims/particle"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	var sim core.Sim
	if cfg.File != "" && cfg.Sim == "particle" {
		worldCfg, err := particle.LoadConfig(cfg.File)
		if err != nil {
			log.Fatal(err)
		}
		world, err := particle.NewWithConfig(worldCfg)
		if err != nil {
			log.Fatal(err)
		}
		sim = world
	} else {
		factory, ok := core.Sims()[cfg.Sim]
		if !ok {
			log.Fatalf("unknown sim %q", cfg.Sim)
		}
		sim = factory(nil)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.HUDWidth, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("therm-ca — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
