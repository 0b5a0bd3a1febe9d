package commands

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-algoviz/pkg/assistant"
	"github.com/dd0wney/cluso-algoviz/pkg/config"
)

// NewAskCommand creates the ask command.
func NewAskCommand() *cobra.Command {
	var (
		configPath string
		local      bool
	)

	cmd := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask the DSA assistant a question",
		Long: `Ask answers from the built-in notes first. Questions the notes do not
cover go to the configured remote model when ALGOVIZ_ASSISTANT_API_KEY or
the assistant section of the config enables it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			settings := cfg.AssistantSettings()
			if local {
				settings.Enabled = false
			}

			asst, err := assistant.New(settings, assistant.WithLogger(cfg.Logger()))
			if err != nil {
				return err
			}
			ans, err := asst.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ans.Topic != "" {
				color.New(color.FgCyan, color.Bold).Fprintf(out, "%s\n", ans.Topic)
			}
			_, err = out.Write([]byte(ans.Text + "\n"))
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (YAML)")
	cmd.Flags().BoolVar(&local, "local", false, "never call the remote model")
	return cmd
}
