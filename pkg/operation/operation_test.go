package operation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/rewriterc/pkg/config"
	"github.com/walteh/rewriterc/pkg/status"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func newTestOperator(t *testing.T, cfg *config.Config, baseDir string) Operator {
	t.Helper()
	op, err := New(Options{
		Config:     cfg,
		BaseDir:    baseDir,
		UserLogger: status.NewUserLogger(testContext(t)),
	})
	require.NoError(t, err)
	return op
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func swapConfig(async bool) *config.Config {
	return &config.Config{
		Files: []string{"*.txt"},
		Rules: []config.Rule{
			{Name: "swap", Pattern: `foo\((\d+)\)`, Template: "bar($1)"},
		},
		Async: async,
	}
}

func TestNew_Validation(t *testing.T) {
	ctx := testContext(t)

	_, err := New(Options{UserLogger: status.NewUserLogger(ctx)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")

	_, err = New(Options{Config: swapConfig(false)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user logger is required")

	_, err = New(Options{
		Config: &config.Config{
			Files: []string{"a.txt"},
			Rules: []config.Rule{{Name: "bad", Pattern: "([", Template: "x"}},
		},
		UserLogger: status.NewUserLogger(ctx),
	})
	require.Error(t, err, "malformed pattern must be fatal before any file is touched")
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	matching := writeFixture(t, dir, "a.txt", "foo(1) and foo(2)\n")
	untouched := writeFixture(t, dir, "b.txt", "nothing to see\n")

	op := newTestOperator(t, swapConfig(false), dir)
	require.NoError(t, op.Apply(testContext(t)))

	got, err := os.ReadFile(matching)
	require.NoError(t, err)
	assert.Equal(t, "bar(1) and bar(2)\n", string(got), "matching file should be rewritten in place")

	got, err = os.ReadFile(untouched)
	require.NoError(t, err)
	assert.Equal(t, "nothing to see\n", string(got), "non-matching file must pass through byte-identical")
}

func TestApply_PreservesFileMode(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "a.txt", "foo(1)\n")
	require.NoError(t, os.Chmod(path, 0o600))

	op := newTestOperator(t, swapConfig(false), dir)
	require.NoError(t, op.Apply(testContext(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "rewrite must keep the target's permissions")
}

func TestApply_Async(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.txt", "foo(1)\n")
	writeFixture(t, dir, "b.txt", "foo(2)\n")
	writeFixture(t, dir, "c.txt", "foo(3)\n")

	op := newTestOperator(t, swapConfig(true), dir)
	require.NoError(t, op.Apply(testContext(t)))

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(got), "bar(")
	}
}

func TestApply_MissingTarget(t *testing.T) {
	dir := t.TempDir()

	cfg := swapConfig(false)
	cfg.Files = []string{"does-not-exist.txt"}

	op := newTestOperator(t, cfg, dir)
	err := op.Apply(testContext(t))
	require.Error(t, err, "a target that matches no file is fatal")
	assert.Contains(t, err.Error(), "no files match")
}

func TestApply_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "a.txt", "foo(1)\n")

	op := newTestOperator(t, swapConfig(false), dir)
	require.NoError(t, op.Apply(testContext(t)))
	require.NoError(t, op.Apply(testContext(t)), "second apply must be a no-op")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bar(1)\n", string(got))
}

func TestPlan(t *testing.T) {
	dir := t.TempDir()
	matching := writeFixture(t, dir, "a.txt", "foo(1)\n")
	writeFixture(t, dir, "b.txt", "clean\n")

	op := newTestOperator(t, swapConfig(false), dir)
	plans, err := op.Plan(testContext(t))
	require.NoError(t, err)
	require.Len(t, plans, 2)

	byPath := map[string]FilePlan{}
	for _, p := range plans {
		byPath[p.Path] = p
	}

	assert.True(t, byPath["a.txt"].Modified)
	assert.Equal(t, 1, byPath["a.txt"].Matches)
	assert.NotEmpty(t, byPath["a.txt"].Diff, "pending change should carry a diff")
	assert.False(t, byPath["b.txt"].Modified)
	assert.Empty(t, byPath["b.txt"].Diff)

	// plan must not write anything
	got, err := os.ReadFile(matching)
	require.NoError(t, err)
	assert.Equal(t, "foo(1)\n", string(got), "plan is a dry run")
}

func TestStatus(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.txt", "foo(1)\n")

	op := newTestOperator(t, swapConfig(false), dir)

	pending, err := op.Status(testContext(t))
	require.NoError(t, err)
	assert.True(t, pending, "file still matching the pattern means rewrites are pending")

	require.NoError(t, op.Apply(testContext(t)))

	pending, err = op.Status(testContext(t))
	require.NoError(t, err)
	assert.False(t, pending, "after apply nothing should be pending")
}

func TestApply_RuleFileFilter(t *testing.T) {
	dir := t.TempDir()
	filtered := writeFixture(t, dir, "skip.txt", "foo(1)\n")
	rewritten := writeFixture(t, dir, "take.txt", "foo(1)\n")

	cfg := &config.Config{
		Files: []string{"*.txt"},
		Rules: []config.Rule{
			{Name: "swap", Pattern: `foo\((\d+)\)`, Template: "bar($1)", Files: []string{"take.txt"}},
		},
	}

	op := newTestOperator(t, cfg, dir)
	require.NoError(t, op.Apply(testContext(t)))

	got, err := os.ReadFile(filtered)
	require.NoError(t, err)
	assert.Equal(t, "foo(1)\n", string(got), "rule must not apply outside its file filter")

	got, err = os.ReadFile(rewritten)
	require.NoError(t, err)
	assert.Equal(t, "bar(1)\n", string(got))
}

func TestApply_NestedSubdirectories(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, filepath.Join("src", "deep", "a.txt"), "foo(9)\n")

	cfg := swapConfig(false)
	cfg.Files = []string{"src/**/*.txt"}

	op := newTestOperator(t, cfg, dir)
	require.NoError(t, op.Apply(testContext(t)))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bar(9)\n", string(got))
}
