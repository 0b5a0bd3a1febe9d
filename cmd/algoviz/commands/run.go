// Package commands implements the algoviz CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-algoviz/pkg/player"
	"github.com/dd0wney/cluso-algoviz/pkg/session"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// ErrBadEdge is returned for an --edges entry that is not FROM-TO.
var ErrBadEdge = errors.New("edge must be written FROM-TO")

// RunCommand holds the flags of the run command.
type RunCommand struct {
	create session.CreateRequest
	edges  []string

	value    int
	key      int
	position int
	item     string
	vertex   string
	from     string
	to       string

	format  string
	play    bool
	noColor bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	rc := &RunCommand{}

	cmd := &cobra.Command{
		Use:   "run KIND OPERATION",
		Short: "Run one operation and print its frames",
		Long: `Run builds a structure, runs one operation on it and prints every frame
of the resulting trace. With --play the frames are shown one at a time at
the --speed delay.

Examples:
  algoviz run array quick --values 5,3,8,1
  algoviz run bst delete --sample --value 40
  algoviz run graph bfs --vertices A,B,C --edges A-B,B-C --vertex A
  algoviz run heap heapSort --random --seed 7 --play`,
		Args: cobra.ExactArgs(2),
		RunE: rc.Run,
	}

	f := cmd.Flags()
	f.IntSliceVar(&rc.create.Values, "values", nil, "initial values (array, list, trees, heap)")
	f.StringSliceVar(&rc.create.Items, "items", nil, "initial items (stack, queue)")
	f.StringSliceVar(&rc.create.Vertices, "vertices", nil, "initial graph vertices")
	f.StringSliceVar(&rc.edges, "edges", nil, "initial graph edges as FROM-TO")
	f.StringVar(&rc.create.Order, "order", "", "heap order: max or min")
	f.BoolVar(&rc.create.Unbuilt, "unbuilt", false, "keep heap values in the given slot order")
	f.BoolVar(&rc.create.Directed, "directed", false, "directed graph")
	f.BoolVar(&rc.create.Doubly, "doubly", false, "doubly linked list")
	f.BoolVar(&rc.create.Sample, "sample", false, "start from the built-in sample")
	f.BoolVar(&rc.create.Random, "random", false, "start from random data")
	f.Uint64("seed", 0, "seed for --random")
	f.IntVar(&rc.create.Speed, "speed", player.DefaultSpeed, "playback speed 1..100")

	f.IntVar(&rc.value, "value", 0, "operation value")
	f.IntVar(&rc.key, "key", 0, "operation key (insertAfterKey)")
	f.IntVar(&rc.position, "position", 0, "operation position (list)")
	f.StringVar(&rc.item, "item", "", "operation item (push, enqueue)")
	f.StringVar(&rc.vertex, "vertex", "", "operation vertex")
	f.StringVar(&rc.from, "from", "", "edge or path source")
	f.StringVar(&rc.to, "to", "", "edge or path target")

	f.StringVarP(&rc.format, "format", "f", FormatTable, "output format: table, plain or json")
	f.BoolVar(&rc.play, "play", false, "play frames one at a time")
	f.BoolVar(&rc.noColor, "no-color", false, "disable colors")

	return cmd
}

// Run executes the run command.
func (rc *RunCommand) Run(cmd *cobra.Command, args []string) error {
	if rc.noColor {
		color.NoColor = true //nolint:reassign // library global
	}

	create := rc.create
	create.Kind = args[0]
	if cmd.Flags().Changed("seed") {
		seed, err := cmd.Flags().GetUint64("seed")
		if err != nil {
			return err
		}
		create.Seed = &seed
	}
	edges, err := parseEdges(rc.edges)
	if err != nil {
		return err
	}
	create.Edges = edges

	req := rc.request(cmd, args[1])

	sess, err := session.New(create)
	if err != nil {
		return err
	}
	defer sess.Close()

	res, err := sess.Apply(req)
	if res == nil || res.Trace == nil {
		if err == nil {
			err = fmt.Errorf("%s produced no trace", req.Operation)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if rc.play {
		if perr := playTrace(cmd, out, res.Trace, sess.Delay()); perr != nil {
			return perr
		}
	} else if werr := writeTrace(out, res.Trace, rc.format); werr != nil {
		return werr
	}

	if res.Outcome != session.OutcomeApplied {
		color.New(color.FgYellow).Fprintf(out, "%s: %s\n", res.Outcome, res.Notice)
	}
	// Declined operations are explained by their trace and are not failures.
	if res.Outcome == session.OutcomeDeclined {
		return nil
	}
	return err
}

func (rc *RunCommand) request(cmd *cobra.Command, op string) session.Request {
	req := session.Request{
		Operation: op,
		Item:      rc.item,
		Vertex:    rc.vertex,
		From:      rc.from,
		To:        rc.to,
	}
	changed := cmd.Flags().Changed
	if changed("value") {
		req.Value = &rc.value
	}
	if changed("key") {
		req.Key = &rc.key
	}
	if changed("position") {
		req.Position = &rc.position
	}
	return req
}

// playTrace renders frames live until the trace ends or the command's
// context is cancelled.
func playTrace(cmd *cobra.Command, w io.Writer, tr *trace.Trace, delay time.Duration) error {
	p := player.New(tr, player.RendererFunc(func(i int, f trace.Frame) {
		writeFrame(w, tr, i, f)
	}))
	if err := p.Play(cmd.Context(), delay); err != nil {
		return err
	}
	p.Wait()
	return writeResult(w, tr)
}

func parseEdges(specs []string) ([]session.EdgeSpec, error) {
	edges := make([]session.EdgeSpec, 0, len(specs))
	for _, s := range specs {
		from, to, ok := strings.Cut(s, "-")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadEdge, s)
		}
		edges = append(edges, session.EdgeSpec{From: strings.TrimSpace(from), To: strings.TrimSpace(to)})
	}
	return edges, nil
}
