package operation

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/config"
	"github.com/walteh/rewriterc/pkg/rewrite"
	"github.com/walteh/rewriterc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator defines the main interface for rewriterc operations
type Operator interface {
	// Apply rewrites the target files in place
	Apply(ctx context.Context) error
	// Plan computes the rewrites without writing, returning per-file diffs
	Plan(ctx context.Context) ([]FilePlan, error)
	// Status reports whether any target file would be changed by an apply
	Status(ctx context.Context) (bool, error)
}

// 📋 FilePlan describes what an apply would do to one file
type FilePlan struct {
	// Path is the target file, relative to the base directory
	Path string
	// Matches is the total number of rule matches in the file
	Matches int
	// Modified indicates if the file content would change
	Modified bool
	// Diff is a human-readable diff of the pending change
	Diff string
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the rewriterc configuration
	Config *config.Config
	// BaseDir is the directory target globs are resolved against
	BaseDir string
	// UserLogger reports per-file outcomes to the user
	UserLogger *status.UserLogger
	// Formatter renders per-file outcomes; defaults to the standard one
	Formatter status.FileFormatter
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.UserLogger == nil {
		return nil, errors.Errorf("user logger is required")
	}
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}
	if opts.Formatter == nil {
		opts.Formatter = status.NewDefaultFileFormatter()
	}

	rules, err := opts.Config.CompileRules()
	if err != nil {
		return nil, err
	}

	return &operator{
		config:    opts.Config,
		baseDir:   opts.BaseDir,
		user:      opts.UserLogger,
		formatter: opts.Formatter,
		rewriter:  rewrite.NewRewriter(rules),
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	config    *config.Config
	baseDir   string
	user      *status.UserLogger
	formatter status.FileFormatter
	rewriter  *rewrite.Rewriter
}

// resolveTargets expands the config's file globs against the base
// directory. A glob that matches nothing is an error: a missing target is
// fatal, not a silent no-op.
func (o *operator) resolveTargets(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var targets []string

	for _, glob := range o.config.Files {
		pattern := filepath.Join(o.baseDir, filepath.FromSlash(glob))
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Errorf("resolving target glob %q: %w", glob, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("no files match target %q", glob)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				targets = append(targets, m)
			}
		}
	}

	sort.Strings(targets)
	zerolog.Ctx(ctx).Debug().Int("count", len(targets)).Msg("resolved target files")
	return targets, nil
}

// rewriteFile loads one file and runs all rules over its content in memory
func (o *operator) rewriteFile(ctx context.Context, path string) (*rewrite.Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	rel, err := filepath.Rel(o.baseDir, path)
	if err != nil {
		rel = path
	}

	result, err := o.rewriter.Rewrite(ctx, content, rel)
	if err != nil {
		return nil, errors.Errorf("rewriting %s: %w", rel, err)
	}
	return result, nil
}

func (o *operator) relPath(path string) string {
	rel, err := filepath.Rel(o.baseDir, path)
	if err != nil {
		return path
	}
	return rel
}
