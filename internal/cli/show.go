package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/convoview/internal/archive"
	"github.com/MikeSquared-Agency/convoview/internal/export"
)

func newShowCmd(a *app) *cobra.Command {
	var canonical bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one conversation as a transcript",
		Long: `Print the node-mapping messages of a conversation as a Human:/Assistant:
transcript. With --canonical, print the normalized conversation as Markdown
instead, which also covers exports without a node mapping.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arc, err := a.loadArchive(cmd)
			if err != nil {
				return err
			}
			entry, ok := arc.Find(args[0])
			if !ok {
				return fmt.Errorf("conversation %q not found", args[0])
			}

			out := cmd.OutOrStdout()
			if canonical {
				return (&export.MarkdownExporter{}).Export(entry.Canonical, out)
			}

			r := lipgloss.NewRenderer(out)
			fmt.Fprintln(out, r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Render(entry.Canonical.Title))
			fmt.Fprintln(out)

			msgs := entry.Messages()
			if len(msgs) == 0 {
				fmt.Fprintln(out, r.NewStyle().Italic(true).Render("No node-mapping messages, try --canonical"))
				return nil
			}
			fmt.Fprint(out, archive.FormatTranscript(msgs))
			return nil
		},
	}
	cmd.Flags().BoolVar(&canonical, "canonical", false, "print the normalized conversation as Markdown")
	return cmd
}
