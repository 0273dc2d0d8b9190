package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHCLParser_CanParse(t *testing.T) {
	p := &HCLParser{}
	assert.True(t, p.CanParse(".rewriterc.hcl"))
	assert.False(t, p.CanParse(".rewriterc.yaml"))
	assert.False(t, p.CanParse("config.json"))
}

func TestLoad_HCL(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_config",
			config: `
files = ["src/**/*.test.ts", "lib/*.ts"]
async = true

rule "swap" {
  pattern  = "foo-(\\d+)"
  template = "bar-$1"
}

rule "nest_results" {
  pattern   = "x"
  transform = "nest_extraction_result"
  files     = ["**/*.test.ts"]
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"src/**/*.test.ts", "lib/*.ts"}, cfg.Files)
				assert.True(t, cfg.Async)
				require.Len(t, cfg.Rules, 2)
				assert.Equal(t, "swap", cfg.Rules[0].Name, "rule label becomes the name")
				assert.Equal(t, `foo-(\d+)`, cfg.Rules[0].Pattern)
				assert.Equal(t, "bar-$1", cfg.Rules[0].Template)
				assert.Equal(t, "nest_extraction_result", cfg.Rules[1].Transform)
				assert.Equal(t, []string{"**/*.test.ts"}, cfg.Rules[1].Files)
			},
		},
		{
			name: "invalid_syntax",
			config: `
files = [
`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name: "rule_fails_validation",
			config: `
files = ["a.txt"]

rule "bad" {
  pattern = "x"
}
`,
			wantErr:     true,
			errContains: "template or transform is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, ".rewriterc.hcl")
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644))

			cfg, err := Load(context.Background(), path)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
