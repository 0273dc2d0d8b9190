package rewrite

import (
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/rewriterc/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// Rule defines a single pattern rewrite operation
type Rule struct {
	// Name identifies the rule in logs and reports
	Name string

	// Pattern is a regular expression with capture groups. Use (?m) for
	// line-anchored ^ and $; . never crosses newlines.
	Pattern string

	// Template is the replacement text with $1 / ${name} backreferences.
	// Exactly one of Template and Transform must be set.
	Template string

	// Transform names a registered transform that builds the replacement
	// from the capture groups of each match
	Transform string

	// Files is an optional list of glob patterns narrowing which target
	// files the rule applies to. Empty means all targets.
	Files []string
}

// CompiledRule is a Rule with its pattern compiled and its replacement
// resolved, ready to apply
type CompiledRule struct {
	Name string

	re        *regexp.Regexp
	template  []byte
	transform transform.Func
	files     []string
}

// templateRefs finds numbered backreferences like $1 and ${12}
var templateRefs = regexp.MustCompile(`\$(\d+)|\$\{(\d+)\}`)

// Compile validates the rule and compiles its pattern
func (r Rule) Compile() (*CompiledRule, error) {
	if r.Name == "" {
		return nil, errors.Errorf("rule name is required")
	}
	if r.Pattern == "" {
		return nil, errors.Errorf("rule %s: pattern is required", r.Name)
	}
	if r.Template == "" && r.Transform == "" {
		return nil, errors.Errorf("rule %s: template or transform is required", r.Name)
	}
	if r.Template != "" && r.Transform != "" {
		return nil, errors.Errorf("rule %s: template and transform are mutually exclusive", r.Name)
	}

	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return nil, errors.Errorf("rule %s: compiling pattern: %w", r.Name, err)
	}

	compiled := &CompiledRule{
		Name:  r.Name,
		re:    re,
		files: r.Files,
	}

	if r.Template != "" {
		// Reject backreferences to groups the pattern does not define
		for _, ref := range templateRefs.FindAllStringSubmatch(r.Template, -1) {
			digits := ref[1]
			if digits == "" {
				digits = ref[2]
			}
			n, err := strconv.Atoi(digits)
			if err != nil {
				continue
			}
			if n > re.NumSubexp() {
				return nil, errors.Errorf("rule %s: template references group %d, pattern defines %d", r.Name, n, re.NumSubexp())
			}
		}
		compiled.template = []byte(r.Template)
		return compiled, nil
	}

	fn := transform.Get(r.Transform)
	if fn == nil {
		return nil, errors.Errorf("rule %s: unknown transform %q (registered: %v)", r.Name, r.Transform, transform.Names())
	}
	compiled.transform = fn
	return compiled, nil
}

// AppliesTo reports whether the rule applies to the given target path,
// relative to the config's base directory
func (cr *CompiledRule) AppliesTo(relPath string) (bool, error) {
	if len(cr.files) == 0 {
		return true, nil
	}
	slashed := filepath.ToSlash(relPath)
	for _, pattern := range cr.files {
		matched, err := doublestar.Match(pattern, slashed)
		if err != nil {
			return false, errors.Errorf("rule %s: matching file pattern %q: %w", cr.Name, pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
