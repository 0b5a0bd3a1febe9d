package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	structureBoxStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("#FFFF00")).
				Padding(1, 2).
				MarginRight(2)

	listingBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	activeLineStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFFF00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)

	elementStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			Padding(0, 1)
)

var stateColors = map[model.VisualState]lipgloss.Color{
	model.StateDefault:     "#AAAAAA",
	model.StateComparing:   "#FFD700",
	model.StateSwapping:    "#FF4500",
	model.StateSorted:      "#32CD32",
	model.StatePivot:       "#FF00FF",
	model.StateMin:         "#00CED1",
	model.StateCurrent:     "#1E90FF",
	model.StateHighlighted: "#FFFF00",
	model.StateVisited:     "#9ACD32",
	model.StateFound:       "#00FF7F",
	model.StateDeleted:     "#DC143C",
	model.StateInserted:    "#7FFF00",
	model.StateQueued:      "#87CEFA",
	model.StateStacked:     "#DA70D6",
	model.StateTraversed:   "#40E0D0",
}

// elementBox renders one element in its state color.
func elementBox(e model.Element) string {
	c, ok := stateColors[e.State]
	if !ok {
		c = stateColors[model.StateDefault]
	}
	return elementStyle.BorderForeground(c).Foreground(c).Render(e.Label)
}
