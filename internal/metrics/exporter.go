package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"therm-ca/internal/sims/particle"
)

// StatsProvider is the slice of the world the exporter reads. It is an
// interface so the exporter never holds a concrete world.
type StatsProvider interface {
	Stats() particle.Stats
}

// Exporter publishes world aggregates as Prometheus metrics and refreshes
// them on a fixed interval.
type Exporter struct {
	provider StatsProvider
	log      logrus.FieldLogger
	interval time.Duration
	quit     chan struct{}
	done     chan struct{}

	ticks       prometheus.Gauge
	totalEnergy prometheus.Gauge
	totalMass   prometheus.Gauge
	solidCells  prometheus.Gauge
	liquidCells prometheus.Gauge
	gasCells    prometheus.Gauge
	vaporCells  prometheus.Gauge
}

// NewExporter builds an exporter and registers its metrics with the default
// Prometheus registry.
func NewExporter(provider StatsProvider, log logrus.FieldLogger, interval time.Duration) *Exporter {
	if interval <= 0 {
		interval = time.Second
	}
	e := &Exporter{
		provider: provider,
		log:      log,
		interval: interval,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		ticks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "ticks",
			Help:      "Simulation ticks advanced since reset.",
		}),
		totalEnergy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "total_energy_joules",
			Help:      "Sum of cell enthalpy over the whole grid.",
		}),
		totalMass: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "total_mass_kg",
			Help:      "Sum of cell mass over the whole grid.",
		}),
		solidCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "solid_cells",
			Help:      "Number of cells currently in the solid phase.",
		}),
		liquidCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "liquid_cells",
			Help:      "Number of cells currently in the liquid phase.",
		}),
		gasCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "gas_cells",
			Help:      "Number of cells currently in the gas phase.",
		}),
		vaporCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "vapor_cells",
			Help:      "Number of gas cells other than plain air.",
		}),
	}
	prometheus.MustRegister(e.ticks, e.totalEnergy, e.totalMass,
		e.solidCells, e.liquidCells, e.gasCells, e.vaporCells)
	return e
}

// Refresh reads one stats snapshot into the gauges.
func (e *Exporter) Refresh() {
	s := e.provider.Stats()
	e.ticks.Set(float64(s.Tick))
	e.totalEnergy.Set(s.TotalEnergyJ)
	e.totalMass.Set(s.TotalMassKg)
	e.solidCells.Set(float64(s.SolidCells))
	e.liquidCells.Set(float64(s.LiquidCells))
	e.gasCells.Set(float64(s.GasCells))
	e.vaporCells.Set(float64(s.VaporCells))
}

// StartHTTP serves the Prometheus endpoint on addr in its own goroutine.
// Call Refresh from the loop that owns the world, or StartPeriodic when the
// provider is safe for concurrent reads.
func (e *Exporter) StartHTTP(addr string) {
	go func() {
		if e.log != nil {
			e.log.WithField("addr", addr).Info("metrics endpoint listening")
		}
		if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
			if e.log != nil {
				e.log.WithError(err).Error("metrics endpoint failed")
			}
		}
	}()
}

// StartPeriodic begins the background refresh loop.
func (e *Exporter) StartPeriodic() {
	go e.loop()
}

// Stop ends the refresh loop and waits for it to drain.
func (e *Exporter) Stop() {
	close(e.quit)
	<-e.done
}

func (e *Exporter) loop() {
	defer close(e.done)
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			e.Refresh()
		case <-e.quit:
			return
		}
	}
}
