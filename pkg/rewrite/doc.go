/*
Package rewrite implements pattern-based text rewriting with ordered rules.

	+-----------+
	|   Rule    |
	| (pattern) |
	+-----+-----+
	      |
	+-----+-----+
	| Rewriter  |
	| (ordered) |
	+-----+-----+
	      |
	+-----+-----+
	|  Result   |
	| (content) |
	+-----------+

🎯 Purpose:
- Compiles rewrite rules (pattern + template or transform)
- Applies rules sequentially over full file content
- Reports per-rule match counts and modification status

🔄 Flow:
1. Rules are compiled and validated up front
2. Each rule scans the current content for all non-overlapping matches
3. Matches are replaced via template expansion or a transform callback
4. Later rules operate on the output of earlier rules

⚡ Key Responsibilities:
- Regex compilation and template validation
- Capture-group substitution
- Byte-identical passthrough of non-matching text
- Per-rule file filtering via globs

📝 Design Philosophy:
The rewriter is purely syntactic: it has no understanding of the language
being edited and performs no validation of the rewritten output. Rules are
expected to target trusted, narrow input shapes. Anything needing semantic
guarantees belongs in a proper parse/unparse pass, not here.
*/
package rewrite
