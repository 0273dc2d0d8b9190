package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check if any target file still needs rewriting",
		Long: `Status checks whether an apply would change any target file.
With --exit-code it fails when rewrites are pending, so it can gate CI
on a migration being fully applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "status").Logger().WithContext(ctx)

			op, err := operation.New(operation.Options{
				Config:     opts.Config,
				BaseDir:    opts.BaseDir,
				UserLogger: opts.UserLogger,
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			pending, err := op.Status(ctx)
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			if pending {
				opts.UserLogger.LogRunChange("Files need to be rewritten")
				if exitCode {
					return errors.Errorf("pending rewrites found")
				}
			} else {
				opts.UserLogger.LogRunChange("Files are up to date")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit non-zero when rewrites are pending")

	return cmd
}
