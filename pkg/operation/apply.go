package operation

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// Apply rewrites every target file in place. Each file is read fully,
// transformed in memory through the full rule list, then written back in a
// single bulk write. Unchanged files are not touched. No backup is kept.
func (o *operator) Apply(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Msg("applying rewrite rules")

	targets, err := o.resolveTargets(ctx)
	if err != nil {
		return err
	}

	runner := NewRunner(o.config.Async)
	err = runner.RunFiles(ctx, targets, func(ctx context.Context, path string) error {
		if err := o.applyFile(ctx, path); err != nil {
			logger.Debug().Msg(o.formatter.FormatError(err))
			o.user.LogFileChange(status.FileChange{
				Type:  status.FileError,
				Path:  o.relPath(path),
				Error: err,
			})
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	o.user.LogRunChange(o.formatter.FormatProgress(len(targets), len(targets)))
	return nil
}

func (o *operator) applyFile(ctx context.Context, path string) error {
	result, err := o.rewriteFile(ctx, path)
	if err != nil {
		return err
	}

	rel := o.relPath(path)
	zerolog.Ctx(ctx).Debug().Msg(o.formatter.FormatFileResult(rel, result.MatchCount(), result.WasModified))

	if !result.WasModified {
		o.user.LogFileChange(status.FileChange{
			Type: status.FileUnchanged,
			Path: rel,
		})
		return nil
	}

	mode, err := fileMode(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, result.ModifiedContent, mode); err != nil {
		return errors.Errorf("writing %s: %w", rel, err)
	}

	o.user.LogFileChange(status.FileChange{
		Type:        status.FileRewritten,
		Path:        rel,
		Description: fmt.Sprintf("%d matches", result.MatchCount()),
	})
	return nil
}

// fileMode preserves the target's existing permissions on rewrite
func fileMode(path string) (fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.Errorf("stating %s: %w", path, err)
	}
	return info.Mode().Perm(), nil
}
