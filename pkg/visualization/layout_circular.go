package visualization

import (
	"math"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

// CircularLayout arranges vertices on a circle in insertion order,
// starting at angle zero.
type CircularLayout struct {
	config *LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

func (cl *CircularLayout) ComputeLayout(g *model.Graph) Positions {
	positions := make(Positions, len(g.Vertices))
	if len(g.Vertices) == 0 {
		return positions
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding
	angleStep := 2 * math.Pi / float64(len(g.Vertices))

	for i, v := range g.Vertices {
		angle := float64(i) * angleStep
		positions[v.ID] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}
	return positions
}
