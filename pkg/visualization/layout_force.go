package visualization

import (
	"math"
	"math/rand/v2"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

// ForceDirectedLayout implements force-directed graph layout. Edges attract
// regardless of direction; every pair of vertices repels.
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &ForceDirectedLayout{config: config}
}

func (fdl *ForceDirectedLayout) ComputeLayout(g *model.Graph) Positions {
	cfg := fdl.config
	if len(g.Vertices) == 0 {
		return make(Positions)
	}
	if len(g.Vertices) == 1 {
		return Positions{g.Vertices[0].ID: {X: cfg.Width / 2, Y: cfg.Height / 2}}
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	ids := make([]model.ElementID, len(g.Vertices))
	byKey := make(map[string]model.ElementID, len(g.Vertices))
	positions := make(Positions, len(g.Vertices))
	for i, v := range g.Vertices {
		ids[i] = v.ID
		byKey[v.Key] = v.ID
		positions[v.ID] = Position{
			X: rng.Float64()*(cfg.Width-2*cfg.Padding) + cfg.Padding,
			Y: rng.Float64()*(cfg.Height-2*cfg.Padding) + cfg.Padding,
		}
	}

	adjacent := make(map[model.ElementID]map[model.ElementID]bool, len(ids))
	for _, id := range ids {
		adjacent[id] = make(map[model.ElementID]bool)
	}
	for _, e := range g.Edges {
		from, to := byKey[e.From], byKey[e.To]
		if from == to {
			continue
		}
		adjacent[from][to] = true
		adjacent[to][from] = true
	}

	k := math.Sqrt((cfg.Width * cfg.Height) / float64(len(ids))) // optimal distance
	temperature := cfg.Width / 10.0

	for iter := 0; iter < cfg.Iterations; iter++ {
		forces := make(Positions, len(ids))

		for i, a := range ids {
			for _, b := range ids[i+1:] {
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Max(math.Sqrt(dx*dx+dy*dy), 0.01)

				force := (k * k) / dist
				fx, fy := (dx/dist)*force, (dy/dist)*force
				forces[a] = Position{X: forces[a].X + fx, Y: forces[a].Y + fy}
				forces[b] = Position{X: forces[b].X - fx, Y: forces[b].Y - fy}
			}
		}

		for _, a := range ids {
			for b := range adjacent[a] {
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					continue
				}
				force := (dist * dist) / k
				forces[a] = Position{X: forces[a].X - (dx/dist)*force, Y: forces[a].Y - (dy/dist)*force}
			}
		}

		cool := 1.0 - float64(iter)/float64(cfg.Iterations)
		for _, id := range ids {
			f := forces[id]
			mag := math.Sqrt(f.X*f.X + f.Y*f.Y)
			if mag > 0 {
				step := math.Min(mag, temperature) * cool
				positions[id] = Position{
					X: positions[id].X + (f.X/mag)*step,
					Y: positions[id].Y + (f.Y/mag)*step,
				}
			}
		}
		temperature *= 0.95
	}

	return normalizePositions(positions, cfg.Width, cfg.Height, cfg.Padding)
}
