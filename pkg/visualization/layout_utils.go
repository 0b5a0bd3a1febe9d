package visualization

import "math"

// normalizePositions scales positions to fit within bounds
func normalizePositions(positions Positions, width, height, padding float64) Positions {
	if len(positions) == 0 {
		return positions
	}

	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64

	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY

	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(Positions, len(positions))
	for id, pos := range positions {
		normalized[id] = Position{
			X: padding + ((pos.X-minX)/rangeX)*targetWidth,
			Y: padding + ((pos.Y-minY)/rangeY)*targetHeight,
		}
	}

	return normalized
}

// spread returns n evenly spaced coordinates strictly inside [lo, hi].
func spread(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n+1)
	for i := range out {
		out[i] = lo + step*float64(i+1)
	}
	return out
}
