// Package cli provides the convoview command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/convoview/internal/archive"
	"github.com/MikeSquared-Agency/convoview/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries state shared by subcommands for one invocation.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
}

// NewRootCmd builds the command tree. Each call returns independent state.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var (
		file        string
		attachments string
		port        int
	)

	cmd := &cobra.Command{
		Use:   "convoview",
		Short: "Browse conversation exports",
		Long: `convoview loads a conversation export (ChatGPT style node mappings, flat
message lists, wrapper documents and more), normalizes it, and serves it
over a small read-only HTTP API.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			flags := cmd.Flags()
			if flags.Changed("file") {
				a.cfg.ConversationsFile = file
			}
			if flags.Changed("attachments") {
				a.cfg.AttachmentsDir = attachments
			}
			if flags.Changed("port") {
				a.cfg.Port = port
			}

			// serve logs to stdout, the rest keep stdout for their output
			out := cmd.ErrOrStderr()
			if cmd.Name() == "serve" {
				out = cmd.OutOrStdout()
			}
			a.logger, a.closeLog = config.SetupLogger(out, config.ParseLevel(a.cfg.LogLevel), a.cfg.LogFile)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog == nil {
				return nil
			}
			return a.closeLog()
		},
	}

	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "conversations export file, - for stdin (env CONVERSATIONS_FILE)")
	cmd.PersistentFlags().StringVar(&attachments, "attachments", "", "attachments directory (env ATTACHMENTS_DIR)")
	cmd.PersistentFlags().IntVarP(&port, "port", "p", 0, "HTTP port (env CONVOVIEW_PORT)")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newExportCmd(a))

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) loadArchive(cmd *cobra.Command) (*archive.Archive, error) {
	if a.cfg.ConversationsFile == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return archive.FromBytes(data, "stdin", a.logger), nil
	}
	return archive.Load(a.cfg.ConversationsFile, a.logger)
}
