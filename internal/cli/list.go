package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/MikeSquared-Agency/convoview/internal/archive"
)

const maxListTitle = 50

func newListCmd(a *app) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conversations, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			arc, err := a.loadArchive(cmd)
			if err != nil {
				return err
			}
			return printSummaries(cmd.OutOrStdout(), arc.Summaries(query))
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "only titles containing this text, case-insensitive")
	return cmd
}

func printSummaries(out io.Writer, summaries []archive.Summary) error {
	r := lipgloss.NewRenderer(out)
	header := r.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	dim := r.NewStyle().Foreground(lipgloss.Color("243"))

	if len(summaries) == 0 {
		fmt.Fprintln(out, header.Render("No conversations found"))
		return nil
	}
	fmt.Fprintln(out, header.Render(fmt.Sprintf("Found %d conversation(s)", len(summaries))))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tUPDATED")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, truncate(s.Title, maxListTitle), dim.Render(formatTime(s.UpdateTime)))
	}
	return w.Flush()
}

// formatTime renders a raw create_time/update_time value. Epoch seconds are
// shown in UTC, strings as-is.
func formatTime(raw []byte) string {
	v := gjson.ParseBytes(raw)
	switch v.Type {
	case gjson.Number:
		return time.Unix(int64(v.Num), 0).UTC().Format("2006-01-02 15:04")
	case gjson.String:
		return v.Str
	default:
		return "-"
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
