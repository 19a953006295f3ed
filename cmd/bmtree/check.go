package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmtree/internal/linkcheck"
)

func newCheckCmd(flags *rootFlags) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <file.html>",
		Short: "Report dead or unreachable bookmark URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cleanup, err := setup(flags)
			defer cleanup()
			if err != nil {
				return err
			}

			tree, _, err := loadTree(cfg, args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			targets := linkcheck.Targets(tree)
			opts := linkcheck.Options{
				Concurrency:    cfg.LinkCheck.Concurrency,
				Timeout:        cfg.LinkCheck.Timeout,
				ExcludeDomains: cfg.LinkCheck.ExcludeDomains,
			}
			if !quiet {
				errOut := cmd.ErrOrStderr()
				opts.OnProgress = func(completed, total int) {
					fmt.Fprintf(errOut, "\rChecking %d/%d", completed, total)
				}
			}

			results, err := linkcheck.Check(ctx, targets, opts)
			if !quiet && len(targets) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			printResults(cmd.OutOrStdout(), results)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print progress")
	return cmd
}

// printResults lists every result that is not healthy, then a summary.
func printResults(w io.Writer, results []linkcheck.Result) {
	for _, r := range results {
		if r.Status == linkcheck.Healthy {
			continue
		}
		name := r.Target.Title
		if r.Target.Path != "" {
			name = r.Target.Path + " / " + name
		}
		detail := r.Error
		if r.StatusCode != 0 {
			detail = strings.TrimSpace(fmt.Sprintf("%d %s", r.StatusCode, r.Error))
		}
		fmt.Fprintf(w, "%-11s %s\n            %s (%s)\n", r.Status, name, r.Target.URL, detail)
	}

	s := linkcheck.Summarize(results)
	fmt.Fprintf(w, "%d checked: %d healthy, %d dead, %d unreachable\n",
		len(results), s.Healthy, s.Dead, s.Unreachable)
}
