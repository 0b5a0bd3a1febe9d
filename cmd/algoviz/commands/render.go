package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatPlain = "plain"
)

var stateColors = map[model.VisualState]*color.Color{
	model.StateComparing:   color.New(color.FgYellow, color.Bold),
	model.StateSwapping:    color.New(color.FgRed, color.Bold),
	model.StateSorted:      color.New(color.FgGreen),
	model.StatePivot:       color.New(color.FgMagenta, color.Bold),
	model.StateMin:         color.New(color.FgCyan, color.Bold),
	model.StateCurrent:     color.New(color.FgBlue, color.Bold),
	model.StateHighlighted: color.New(color.FgYellow),
	model.StateVisited:     color.New(color.FgGreen, color.Faint),
	model.StateFound:       color.New(color.FgGreen, color.Bold, color.Underline),
	model.StateDeleted:     color.New(color.FgRed, color.CrossedOut),
	model.StateInserted:    color.New(color.FgHiGreen, color.Bold),
	model.StateQueued:      color.New(color.FgHiBlue),
	model.StateStacked:     color.New(color.FgHiMagenta),
	model.StateTraversed:   color.New(color.FgHiCyan),
}

// colorize renders one element label in its state color. With colors off
// the state is spelled out next to non-default labels.
func colorize(e model.Element) string {
	if e.State == model.StateDefault || e.State == "" {
		return e.Label
	}
	if color.NoColor {
		return e.Label + "(" + string(e.State) + ")"
	}
	if c, ok := stateColors[e.State]; ok {
		return c.Sprint(e.Label)
	}
	return e.Label
}

func renderElements(elems []model.Element) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = colorize(e)
	}
	return strings.Join(parts, " ")
}

func frameLine(tr *trace.Trace, f trace.Frame) (string, string) {
	line, ok := f.HighlightedLine()
	if !ok {
		return "", ""
	}
	return strconv.Itoa(line + 1), tr.Listing().Line(line)
}

// writeFrame prints one frame as a single line, used during live playback.
func writeFrame(w io.Writer, tr *trace.Trace, index int, f trace.Frame) {
	no, code := frameLine(tr, f)
	msg, _ := f.Message()
	fmt.Fprintf(w, "%3d  %-3s %-40s %s", index+1, no, code, renderElements(f.Elements()))
	if msg != "" {
		fmt.Fprintf(w, "  %s", msg)
	}
	fmt.Fprintln(w)
}

// writeTrace prints every frame of tr in the chosen format.
func writeTrace(w io.Writer, tr *trace.Trace, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tr)
	case FormatPlain:
		for i, f := range tr.All() {
			writeFrame(w, tr, i, f)
		}
		return writeResult(w, tr)
	case FormatTable, "":
		tbl := table.NewWriter()
		tbl.SetOutputMirror(w)
		tbl.SetStyle(table.StyleLight)
		tbl.SetTitle("%s %s", tr.Kind(), tr.Operation())
		tbl.AppendHeader(table.Row{"#", "Line", "Step", "Structure", "Message"})
		for i, f := range tr.All() {
			no, code := frameLine(tr, f)
			msg, _ := f.Message()
			tbl.AppendRow(table.Row{i + 1, no, code, renderElements(f.Elements()), msg})
		}
		tbl.Render()
		return writeResult(w, tr)
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, FormatTable, FormatPlain, FormatJSON)
	}
}

func writeResult(w io.Writer, tr *trace.Trace) error {
	if res := tr.Result(); len(res) > 0 {
		_, err := fmt.Fprintf(w, "Result: %s\n", strings.Join(res, " -> "))
		return err
	}
	return nil
}

// writeListing prints a numbered pseudocode listing.
func writeListing(w io.Writer, l trace.Listing) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.SetTitle(l.Name)
	for i, line := range l.Lines {
		tbl.AppendRow(table.Row{i + 1, line})
	}
	tbl.Render()
}
