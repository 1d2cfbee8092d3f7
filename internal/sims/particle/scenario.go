package particle

import (
	"github.com/aquilax/go-perlin"

	"therm-ca/internal/material"
)

// generateTerrain paints the procedural starting scene: a perlin-noise
// stone surface, sand dunes on top of it, and water pooled in the surface
// depressions. Only the interior is touched; Reset has already laid the
// bedrock border.
func (w *World) generateTerrain(seed int64) {
	t := w.cfg.Terrain
	noise := perlin.NewPerlin(t.NoiseAlpha, t.NoiseBeta, t.NoiseOctaves, seed)

	surface := make([]int, w.w)
	for x := 1; x < w.w-1; x++ {
		// Noise1D returns roughly [-1, 1].
		n := noise.Noise1D(float64(x) * t.NoiseScale)
		level := t.SurfaceLevel + t.ReliefAmplitude*n
		surface[x] = clampInt(int(level*float64(w.h)), 2, w.h-2)
	}
	surface[0] = surface[1]
	surface[w.w-1] = surface[w.w-2]

	for x := 1; x < w.w-1; x++ {
		for y := surface[x]; y < w.h-1; y++ {
			w.SetCell(x, y, material.Stone)
		}
	}

	if t.SandDepth > 0 {
		for x := 1; x < w.w-1; x++ {
			// A second, offset noise octave decides the dune depth.
			n := noise.Noise2D(float64(x)*t.NoiseScale, 64.5)
			depth := int((n + 1) * 0.5 * float64(t.SandDepth+1))
			for d := 0; d < depth; d++ {
				y := surface[x] - 1 - d
				if y <= 0 {
					break
				}
				w.SetCell(x, y, material.Sand)
			}
		}
	}

	if t.WaterPools {
		w.fillPools(surface)
	}
}

// fillPools pours water into columns that sit below both horizontal
// water-level neighbors, up to the lower of the two rims.
func (w *World) fillPools(surface []int) {
	for x := 2; x < w.w-2; x++ {
		left, right := surface[x-1], surface[x+1]
		rim := left
		if right > rim {
			rim = right
		}
		// Deeper columns than both rims hold water above their floor.
		if surface[x] <= rim {
			continue
		}
		for y := surface[x] - 1; y >= rim && y > 0; y-- {
			if w.ids[w.index(x, y)] == material.Air {
				w.SetCell(x, y, material.Water)
			}
		}
	}
}
