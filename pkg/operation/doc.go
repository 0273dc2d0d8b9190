/*
Package operation implements the apply, plan and status operations.

	+-------------+
	|  Operator   |
	| (Core Logic)|
	+------+------+
	       |
	+------+------+
	|  Rewriter   |
	| (Transform) |
	+------+------+

🎯 Purpose:
- Resolves target files from config globs
- Runs the rewriter over each target
- Writes modified files back in place (apply) or reports diffs (plan)

🔄 Flow:
1. Resolve target globs against the base directory
2. Read each file fully into memory
3. Apply every rule in order
4. Persist (apply), diff (plan) or report (status)

⚡ Key Responsibilities:
- Target resolution and fatal missing-target errors
- In-place writes preserving file mode
- Optional async fan-out across files
- User-facing per-file reporting

📝 Design Philosophy:
Each file is transformed fully in memory and written in a single bulk
operation. There is no partial-write protection and no backup: the rewrite
either lands whole or the process exits with the error. Dry-run previews
(plan) exist so the side effect can be reviewed before committing it.
*/
package operation
