package rewrite

import (
	"bytes"
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// RuleMatches records how many times one rule matched
type RuleMatches struct {
	Name    string
	Matches int
}

// Result contains the outcome of applying rules to one piece of content
type Result struct {
	// WasModified indicates if any rule matched
	WasModified bool

	// OriginalContent is the content before rewriting
	OriginalContent []byte

	// ModifiedContent is the content after all rules were applied
	ModifiedContent []byte

	// RuleMatches holds per-rule match counts, in rule order
	RuleMatches []RuleMatches
}

// MatchCount returns the total number of matches across all rules
func (r *Result) MatchCount() int {
	total := 0
	for _, rm := range r.RuleMatches {
		total += rm.Matches
	}
	return total
}

// Rewriter applies an ordered list of compiled rules to content. Rules run
// sequentially: each rule sees the output of the one before it, and every
// non-overlapping match is replaced. Text outside matched spans passes
// through byte-identical.
type Rewriter struct {
	rules []*CompiledRule
}

// NewRewriter creates a Rewriter over the given rules
func NewRewriter(rules []*CompiledRule) *Rewriter {
	return &Rewriter{rules: rules}
}

// Rewrite applies all rules to content in order. A rule that matches
// nothing is a no-op, not an error.
func (rw *Rewriter) Rewrite(ctx context.Context, content []byte, relPath string) (*Result, error) {
	result := &Result{
		OriginalContent: content,
		RuleMatches:     make([]RuleMatches, 0, len(rw.rules)),
	}

	current := content
	for _, rule := range rw.rules {
		applies, err := rule.AppliesTo(relPath)
		if err != nil {
			return nil, err
		}
		if !applies {
			result.RuleMatches = append(result.RuleMatches, RuleMatches{Name: rule.Name})
			continue
		}

		next, count, err := rule.apply(current)
		if err != nil {
			return nil, errors.Errorf("applying rule %s: %w", rule.Name, err)
		}
		if count > 0 {
			zerolog.Ctx(ctx).Debug().
				Str("rule", rule.Name).
				Str("path", relPath).
				Int("matches", count).
				Msg("rule matched")
			result.WasModified = true
		}
		result.RuleMatches = append(result.RuleMatches, RuleMatches{Name: rule.Name, Matches: count})
		current = next
	}

	result.ModifiedContent = current
	return result, nil
}

// apply replaces every non-overlapping match of the rule's pattern in
// content and returns the new content with the match count
func (cr *CompiledRule) apply(content []byte) ([]byte, int, error) {
	if cr.template != nil {
		count := len(cr.re.FindAllIndex(content, -1))
		if count == 0 {
			return content, 0, nil
		}
		return cr.re.ReplaceAll(content, cr.template), count, nil
	}

	matches := cr.re.FindAllSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, 0, nil
	}

	var out bytes.Buffer
	out.Grow(len(content))
	last := 0
	for _, loc := range matches {
		groups := make([][]byte, 0, len(loc)/2)
		for i := 0; i < len(loc); i += 2 {
			if loc[i] < 0 {
				groups = append(groups, nil)
				continue
			}
			groups = append(groups, content[loc[i]:loc[i+1]])
		}

		repl, err := cr.transform(transform.NewMatch(groups))
		if err != nil {
			return nil, 0, err
		}

		out.Write(content[last:loc[0]])
		out.Write(repl)
		last = loc[1]
	}
	out.Write(content[last:])
	return out.Bytes(), len(matches), nil
}
