package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Rewrite the target files in place",
		Long: `Apply runs every configured rule against the target files.
It will:
1. Resolve the target file globs
2. Apply each rule's pattern across each file, in rule order
3. Write modified files back in place
4. Report a per-file summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "apply").Logger().WithContext(ctx)

			op, err := operation.New(operation.Options{
				Config:     opts.Config,
				BaseDir:    opts.BaseDir,
				UserLogger: opts.UserLogger,
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			if err := op.Apply(ctx); err != nil {
				return errors.Errorf("applying rewrites: %w", err)
			}

			return nil
		},
	}

	return cmd
}
