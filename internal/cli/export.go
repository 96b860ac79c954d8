package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/convoview/internal/export"
	"github.com/MikeSquared-Agency/convoview/internal/normalize"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "export [id...]",
		Short: "Write normalized conversations as json, jsonl, yaml or md",
		Long: `Export normalized conversations. Without ids every conversation is exported.
With --out each conversation goes to its own file in that directory,
otherwise everything is written to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := export.NewExporter(format)
			if err != nil {
				return err
			}
			arc, err := a.loadArchive(cmd)
			if err != nil {
				return err
			}

			convs := arc.Conversations()
			if len(args) > 0 {
				convs = convs[:0:0]
				for _, id := range args {
					entry, ok := arc.Find(id)
					if !ok {
						return fmt.Errorf("conversation %q not found", id)
					}
					convs = append(convs, entry.Canonical)
				}
			}

			if outDir == "" || outDir == "-" {
				return exportToWriter(cmd, exp, convs)
			}

			paths, err := export.WriteAll(convs, exp, outDir)
			if err != nil {
				return err
			}
			a.logger.Info("export complete", "format", format, "dir", outDir, "files", len(paths))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d conversation(s) to %s\n", len(paths), outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, jsonl, yaml, md")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory, - or empty for stdout")
	return cmd
}

func exportToWriter(cmd *cobra.Command, exp export.Exporter, convs []normalize.Conversation) error {
	out := cmd.OutOrStdout()
	for _, conv := range convs {
		if err := exp.Export(conv, out); err != nil {
			return fmt.Errorf("export %s: %w", conv.ID, err)
		}
	}
	return nil
}
