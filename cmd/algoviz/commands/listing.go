package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-algoviz/pkg/algorithms"
	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

// NewListingCommand creates the listing command.
func NewListingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "listing KIND OPERATION",
		Short: "Print the pseudocode of an operation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, ok := algorithms.Lookup(model.Kind(args[0]), args[1])
			if !ok {
				return fmt.Errorf("unknown operation %q for %q", args[1], args[0])
			}
			writeListing(cmd.OutOrStdout(), spec.Listing)
			return nil
		},
	}
}

// NewOpsCommand creates the ops command. Without arguments it lists every
// structure.
func NewOpsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ops [KIND]",
		Short: "List the operations of a structure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := model.Kinds()
			if len(args) == 1 {
				kinds = []model.Kind{model.Kind(args[0])}
			}

			tbl := table.NewWriter()
			tbl.SetOutputMirror(cmd.OutOrStdout())
			tbl.SetStyle(table.StyleLight)
			tbl.AppendHeader(table.Row{"Structure", "Operation", "Needs", "Mutates"})
			for _, kind := range kinds {
				specs := algorithms.Operations(kind)
				if len(specs) == 0 {
					return fmt.Errorf("unknown structure %q", kind)
				}
				for _, spec := range specs {
					needs := "-"
					if len(spec.Needs) > 0 {
						needs = fmt.Sprint(spec.Needs)
					}
					tbl.AppendRow(table.Row{kind, spec.Name, needs, spec.Mutates})
				}
				tbl.AppendSeparator()
			}
			tbl.Render()
			return nil
		},
	}
}
