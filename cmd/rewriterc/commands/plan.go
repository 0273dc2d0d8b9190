package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewPlanCmd creates a new plan command
func NewPlanCmd(opts *opts.RootOpts) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview rewrites without modifying any file",
		Long: `Plan computes what an apply would change and prints a diff per file.
Nothing is written to disk, so the preview can be reviewed before
committing the rewrite.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "plan").Logger().WithContext(ctx)

			op, err := operation.New(operation.Options{
				Config:     opts.Config,
				BaseDir:    opts.BaseDir,
				UserLogger: opts.UserLogger,
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			plans, err := op.Plan(ctx)
			if err != nil {
				return errors.Errorf("planning rewrites: %w", err)
			}

			pending := 0
			for _, plan := range plans {
				if !plan.Modified {
					continue
				}
				pending++
				if showDiff {
					fmt.Fprintf(cmd.OutOrStdout(), "--- %s\n%s\n", plan.Path, plan.Diff)
				}
			}

			if pending == 0 {
				opts.UserLogger.LogRunChange("No pending rewrites")
			} else {
				opts.UserLogger.LogRunChange(fmt.Sprintf("%d file(s) would be rewritten", pending))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", true, "print a diff of each pending rewrite")

	return cmd
}
