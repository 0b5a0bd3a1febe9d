package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

func TestMain(m *testing.M) {
	color.NoColor = true //nolint:reassign // deterministic output
	os.Exit(m.Run())
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRun_SortPlain(t *testing.T) {
	out, err := execute(t, NewRunCommand(), "array", "bubble", "--values", "3,1,2", "--format", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "1(sorted) 2(sorted) 3(sorted)")
}

func TestRun_JSON(t *testing.T) {
	out, err := execute(t, NewRunCommand(), "stack", "push", "--items", "a", "--item", "b", "--format", "json")
	require.NoError(t, err)

	var tr struct {
		Operation string            `json:"operation"`
		Kind      string            `json:"kind"`
		Frames    []json.RawMessage `json:"frames"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tr))
	assert.Equal(t, "push", tr.Operation)
	assert.Equal(t, "stack", tr.Kind)
	assert.NotEmpty(t, tr.Frames)
}

func TestRun_Table(t *testing.T) {
	out, err := execute(t, NewRunCommand(), "queue", "enqueue", "--items", "x", "--item", "y")
	require.NoError(t, err)
	assert.Contains(t, out, "Structure")
	assert.Contains(t, out, "x y")
}

func TestRun_DeclinedIsNotAnError(t *testing.T) {
	out, err := execute(t, NewRunCommand(), "stack", "pop", "--format", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Stack Underflow")
	assert.Contains(t, out, "declined")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing parameter", []string{"heap", "insert"}, "value"},
		{"unknown kind", []string{"trie", "insert", "--value", "1"}, "unknown structure"},
		{"unknown operation", []string{"stack", "shuffle"}, "shuffle"},
		{"bad edge", []string{"graph", "bfs", "--vertices", "A,B", "--edges", "AB", "--vertex", "A"}, "FROM-TO"},
		{"bad format", []string{"stack", "push", "--item", "a", "--format", "xml"}, "unknown format"},
		{"wrong arg count", []string{"stack"}, "accepts 2 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, NewRunCommand(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_GraphTraversal(t *testing.T) {
	out, err := execute(t, NewRunCommand(), "graph", "bfs",
		"--vertices", "A,B,C", "--edges", "A-B,B-C", "--vertex", "A", "--format", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Result: A -> B -> C")
}

func TestRun_Play(t *testing.T) {
	out, err := execute(t, NewRunCommand(), "heap", "peek", "--values", "9,4,7", "--play", "--speed", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "9(")
}

func TestParseEdges(t *testing.T) {
	edges, err := parseEdges([]string{"A-B", " C - D "})
	require.NoError(t, err)
	require.Len(t, edges, 2)
	assert.Equal(t, "A", edges[0].From)
	assert.Equal(t, "D", edges[1].To)

	for _, bad := range []string{"AB", "-B", "A-"} {
		_, err := parseEdges([]string{bad})
		assert.ErrorIs(t, err, ErrBadEdge, bad)
	}
}

func TestListing(t *testing.T) {
	out, err := execute(t, NewListingCommand(), "stack", "push")
	require.NoError(t, err)
	assert.Contains(t, out, "procedure push(stack, value)")

	_, err = execute(t, NewListingCommand(), "stack", "sort")
	assert.Error(t, err)
}

func TestOps(t *testing.T) {
	out, err := execute(t, NewOpsCommand(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "insertAfterKey")
	assert.NotContains(t, out, "heapSort")

	out, err = execute(t, NewOpsCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "heapSort")

	_, err = execute(t, NewOpsCommand(), "trie")
	assert.Error(t, err)
}

func TestAsk_Local(t *testing.T) {
	t.Setenv("ALGOVIZ_ASSISTANT_API_KEY", "")
	out, err := execute(t, NewAskCommand(), "--local", "what", "is", "bubble", "sort")
	require.NoError(t, err)
	assert.Contains(t, out, "bubble sort")
}

func TestColorize(t *testing.T) {
	assert.Equal(t, "5", colorize(model.Element{Label: "5", State: model.StateDefault}))
	assert.Equal(t, "5(pivot)", colorize(model.Element{Label: "5", State: model.StatePivot}))

	color.NoColor = false                   //nolint:reassign // exercise the colored path
	defer func() { color.NoColor = true }() //nolint:reassign // restore
	assert.Contains(t, colorize(model.Element{Label: "7", State: model.StateFound}), "7")
}
