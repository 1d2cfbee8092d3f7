package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"therm-ca/internal/core"
	"therm-ca/internal/metrics"
	"therm-ca/internal/sims/particle"
)

// soak runs the world headless at full speed for long stretches, publishing
// aggregates over Prometheus so drift in energy or mass totals shows up on a
// dashboard instead of in a debugger.
func main() {
	configPath := flag.String("config", "", "optional YAML world configuration")
	steps := flag.Int("steps", 0, "ticks to run, 0 means until interrupted")
	seed := flag.Int64("seed", 1337, "world seed")
	addr := flag.String("metrics", ":2112", "Prometheus listen address")
	every := flag.Int("report", 600, "ticks between checkpoints")
	realtime := flag.Bool("realtime", false, "pace ticks at the configured tick rate instead of running flat out")
	level := flag.String("log-level", "info", "logrus level")
	flag.Parse()

	log := logrus.New()
	if parsed, err := logrus.ParseLevel(*level); err == nil {
		log.SetLevel(parsed)
	}

	cfg := particle.DefaultConfig()
	if *configPath != "" {
		loaded, err := particle.LoadConfig(*configPath)
		if err != nil {
			log.WithError(err).Fatal("load config")
		}
		cfg = loaded
	}

	world, err := particle.NewWithConfig(cfg)
	if err != nil {
		log.WithError(err).Fatal("build world")
	}
	world.SetLogger(log)
	world.Reset(*seed)

	exporter := metrics.NewExporter(world, log, time.Second)
	exporter.StartHTTP(*addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(logrus.Fields{
		"width": cfg.Width, "height": cfg.Height, "seed": *seed,
	}).Info("soak run starting")

	var timer *core.FixedStep
	if *realtime {
		tps := 60
		if cfg.Params.TickSeconds > 0 {
			tps = int(1/cfg.Params.TickSeconds + 0.5)
		}
		timer = core.NewFixedStep(tps)
	}

	start := time.Now()
	ticks := 0
	for *steps == 0 || ticks < *steps {
		select {
		case <-ctx.Done():
			report(log, world, start, ticks, "soak run interrupted")
			return
		default:
		}

		due := 1
		if timer != nil {
			due = timer.StepsDue()
			if due == 0 {
				time.Sleep(time.Millisecond)
				continue
			}
		}
		for i := 0; i < due && (*steps == 0 || ticks < *steps); i++ {
			world.Step()
			ticks++
			if *every > 0 && ticks%*every == 0 {
				exporter.Refresh()
				report(log, world, start, ticks, "soak checkpoint")
			}
		}
	}
	exporter.Refresh()
	report(log, world, start, ticks, "soak run complete")
}

func report(log logrus.FieldLogger, world *particle.World, start time.Time, ticks int, msg string) {
	elapsed := time.Since(start)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(ticks) / elapsed.Seconds()
	}
	s := world.Stats()
	log.WithFields(logrus.Fields{
		"ticks":          ticks,
		"ticks_per_sec":  rate,
		"total_energy_j": s.TotalEnergyJ,
		"total_mass_kg":  s.TotalMassKg,
		"solid_cells":    s.SolidCells,
		"liquid_cells":   s.LiquidCells,
		"vapor_cells":    s.VaporCells,
	}).Info(msg)
}
