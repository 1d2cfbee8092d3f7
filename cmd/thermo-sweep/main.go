package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"therm-ca/internal/material"
	"therm-ca/internal/sims/particle"
)

type paramSet struct {
	couplingRate   float64
	radiationScale float64
	pressureScale  float64
	ventMax        float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("coupling=%.2f radiation=%.2f pressure=%.1f ventMax=%.3f",
		p.couplingRate, p.radiationScale, p.pressureScale, p.ventMax)
}

type scenarioResult struct {
	params paramSet

	// boiloffStep is the tick at which the last liquid cell vanished, or 0
	// when the pool survived the whole run.
	boiloffStep  int
	peakGasCells int
	finalLiquid  int
	finalEnergyJ float64
}

func main() {
	steps := flag.Int("steps", 1200, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	csvPath := flag.String("csv", "", "optional CSV output path")
	jsonPath := flag.String("json", "", "optional JSON output path")
	flag.Parse()

	baseCfg := particle.DefaultConfig()
	baseCfg.Width = 96
	baseCfg.Height = 96
	baseCfg.Terrain.Enabled = false

	couplingOptions := []float64{0.75, 1.5, 3.0}
	radiationOptions := []float64{0.5, 1.0, 2.0}
	pressureOptions := []float64{10, 50, 150}
	ventOptions := []float64{0.02, 0.05, 0.1}

	var sets []paramSet
	for _, coupling := range couplingOptions {
		for _, radiation := range radiationOptions {
			for _, pressure := range pressureOptions {
				for _, vent := range ventOptions {
					sets = append(sets, paramSet{
						couplingRate:   coupling,
						radiationScale: radiation,
						pressureScale:  pressure,
						ventMax:        vent,
					})
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(baseCfg, params, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
		if res.boiloffStep > 0 {
			fmt.Printf("Pool boiled away at step %d with %s\n", res.boiloffStep, res.params)
		}
	}

	// Fastest full boiloff first; scenarios that never boiled off sort last.
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i].boiloffStep, all[j].boiloffStep
		if (a > 0) != (b > 0) {
			return a > 0
		}
		if a != b {
			return a < b
		}
		return all[i].peakGasCells > all[j].peakGasCells
	})
	elapsed := time.Since(start)

	fmt.Printf("\nTop 5 results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) boiloff=%d peakGas=%d finalLiquid=%d finalEnergy=%.3e params=%s\n",
			i+1, res.boiloffStep, res.peakGasCells, res.finalLiquid, res.finalEnergyJ, res.params)
	}

	if *csvPath != "" {
		if err := writeCSV(*csvPath, all); err != nil {
			log.Fatalf("write csv: %v", err)
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(all), *csvPath)
	}
	if *jsonPath != "" {
		if err := writeJSON(*jsonPath, all); err != nil {
			log.Fatalf("write json: %v", err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(all), *jsonPath)
	}
}

// runScenario drops a molten rock mass above a water pool and watches how
// the tuning set drives the pool through boiling.
func runScenario(base particle.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Params.AmbientCouplingRate = params.couplingRate
	cfg.Params.RadiationScale = params.radiationScale
	cfg.Params.PressureScale = params.pressureScale
	cfg.Params.VentMaxFraction = params.ventMax

	world, err := particle.NewWithConfig(cfg)
	if err != nil {
		log.Fatalf("build world: %v", err)
	}
	world.Reset(1337)

	for y := cfg.Height - 8; y < cfg.Height-1; y++ {
		for x := 1; x < cfg.Width-1; x++ {
			world.SetCell(x, y, material.Water)
		}
	}
	world.PaintCircleWithTemperature(cfg.Width/2, cfg.Height/4, 7, material.MoltenRock, 2500)

	res := scenarioResult{params: params}
	for step := 1; step <= steps; step++ {
		world.Step()
		s := world.Stats()
		if s.VaporCells > res.peakGasCells {
			res.peakGasCells = s.VaporCells
		}
		if s.LiquidCells == 0 {
			res.boiloffStep = step
			break
		}
	}

	final := world.Stats()
	res.finalLiquid = final.LiquidCells
	res.finalEnergyJ = final.TotalEnergyJ
	return res
}

func writeCSV(path string, all []scenarioResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	header := []string{"coupling_rate", "radiation_scale", "pressure_scale",
		"vent_max_fraction", "boiloff_step", "peak_gas_cells", "final_liquid", "final_energy_j"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, res := range all {
		row := []string{
			strconv.FormatFloat(res.params.couplingRate, 'f', -1, 64),
			strconv.FormatFloat(res.params.radiationScale, 'f', -1, 64),
			strconv.FormatFloat(res.params.pressureScale, 'f', -1, 64),
			strconv.FormatFloat(res.params.ventMax, 'f', -1, 64),
			strconv.Itoa(res.boiloffStep),
			strconv.Itoa(res.peakGasCells),
			strconv.Itoa(res.finalLiquid),
			strconv.FormatFloat(res.finalEnergyJ, 'e', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

type resultRow struct {
	CouplingRate   float64 `json:"coupling_rate"`
	RadiationScale float64 `json:"radiation_scale"`
	PressureScale  float64 `json:"pressure_scale"`
	VentMax        float64 `json:"vent_max_fraction"`
	BoiloffStep    int     `json:"boiloff_step"`
	PeakGasCells   int     `json:"peak_gas_cells"`
	FinalLiquid    int     `json:"final_liquid"`
	FinalEnergyJ   float64 `json:"final_energy_j"`
}

func writeJSON(path string, all []scenarioResult) error {
	rows := make([]resultRow, len(all))
	for i, res := range all {
		rows[i] = resultRow{
			CouplingRate:   res.params.couplingRate,
			RadiationScale: res.params.radiationScale,
			PressureScale:  res.params.pressureScale,
			VentMax:        res.params.ventMax,
			BoiloffStep:    res.boiloffStep,
			PeakGasCells:   res.peakGasCells,
			FinalLiquid:    res.finalLiquid,
			FinalEnergyJ:   res.finalEnergyJ,
		}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
