package main

import (
	"fmt"
	"time"

	"github.com/nvm/sysinspect/internal/inspector"
	"github.com/nvm/sysinspect/internal/report"
	"github.com/spf13/cobra"
)

type dumpOptions struct {
	output    string
	separator string
}

func newDumpCmd(root *options) *cobra.Command {
	opts := &dumpOptions{}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print all values once and exit",
		Long: `Print the values of every selected category in the export format:
a title line, a line of dashes and one line per value, with an empty
line between categories.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, root, false)
			if err != nil || a == nil {
				return err
			}
			defer a.closeLog()
			return runDump(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write values to this file instead of stdout")
	cmd.Flags().StringVar(&opts.separator, "separator", "", "Separator between name and value (default: tab or export.separator)")

	return cmd
}

func runDump(cmd *cobra.Command, a *app, opts *dumpOptions) error {
	results := make(chan any, 1)
	inOpts := a.inspectorOptions(newProvider(a.cfg, a.log))
	inOpts.Poster = func(msg any) {
		select {
		case results <- msg:
		default:
		}
	}
	in, err := inspector.New(inOpts)
	if err != nil {
		return err
	}
	defer in.Close()

	// The full host name resolves in the background; its lookup posts a
	// result even when it times out.
	if a.flags&inspector.ViewMisc != 0 {
		select {
		case msg := <-results:
			in.ApplyAsync(msg)
		case <-time.After(a.cfg.GetHostLookupTimeoutOrDefault() + time.Second):
			a.log.Info("full host name lookup did not report back")
		}
	}

	sep := a.cfg.GetSeparatorOrDefault()
	if opts.separator != "" {
		sep = opts.separator
	}
	lines := in.Values(sep)

	if opts.output != "" {
		if err := report.Save(opts.output, lines); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d lines to %s\n", len(lines), opts.output)
		return nil
	}

	w := cmd.OutOrStdout()
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}
