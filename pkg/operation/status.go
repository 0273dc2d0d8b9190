package operation

import (
	"context"

	"github.com/rs/zerolog"
)

// Status reports whether any target file still matches a rule, i.e.
// whether an apply would change anything. Useful as a CI check that a
// migration has been fully applied.
func (o *operator) Status(ctx context.Context) (bool, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Msg("checking rewrite status")

	targets, err := o.resolveTargets(ctx)
	if err != nil {
		return false, err
	}

	pending := false
	for _, path := range targets {
		result, err := o.rewriteFile(ctx, path)
		if err != nil {
			return false, err
		}
		if result.WasModified {
			logger.Debug().Str("path", o.relPath(path)).Int("matches", result.MatchCount()).Msg("file has pending rewrites")
			pending = true
		}
	}

	return pending, nil
}
