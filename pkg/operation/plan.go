package operation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/rewriterc/pkg/status"
)

// Plan computes what an apply would change without writing anything. Each
// pending change carries a colored diff so the user can review the rewrite
// before committing the side effect.
func (o *operator) Plan(ctx context.Context) ([]FilePlan, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Msg("planning rewrites")

	targets, err := o.resolveTargets(ctx)
	if err != nil {
		return nil, err
	}

	var plans []FilePlan
	for _, path := range targets {
		result, err := o.rewriteFile(ctx, path)
		if err != nil {
			return nil, err
		}

		rel := o.relPath(path)
		plan := FilePlan{
			Path:     rel,
			Matches:  result.MatchCount(),
			Modified: result.WasModified,
		}

		if result.WasModified {
			dmp := diffmatchpatch.New()
			diffs := dmp.DiffMain(string(result.OriginalContent), string(result.ModifiedContent), false)
			plan.Diff = dmp.DiffPrettyText(diffs)
			o.user.LogFileChange(status.FileChange{
				Type:        status.FilePlanned,
				Path:        rel,
				Description: fmt.Sprintf("%d matches", plan.Matches),
			})
		} else {
			o.user.LogFileChange(status.FileChange{
				Type: status.FileUnchanged,
				Path: rel,
			})
		}

		plans = append(plans, plan)
	}

	return plans, nil
}
