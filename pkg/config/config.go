// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule represents one pattern rewrite in the config. Rules are applied
// in the order they appear; later rules see earlier rules' output.
type Rule struct {
	Name      string   `json:"name" yaml:"name"`
	Pattern   string   `json:"pattern" yaml:"pattern"`
	Template  string   `json:"template,omitempty" yaml:"template,omitempty"`
	Transform string   `json:"transform,omitempty" yaml:"transform,omitempty"`
	Files     []string `json:"files,omitempty" yaml:"files,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	// Files are doublestar globs selecting the target files to rewrite
	Files []string `json:"files" yaml:"files"`

	// Rules is the ordered list of rewrites to apply
	Rules []Rule `json:"rules" yaml:"rules"`

	// Async fans the per-file work out across goroutines
	Async bool `json:"async,omitempty" yaml:"async,omitempty"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid. Malformed patterns and
// unknown transforms are caught here, before any file is touched.
func (cfg *Config) Validate() error {
	if len(cfg.Files) == 0 {
		return errors.Errorf("at least one target file glob is required")
	}
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}

	seen := map[string]bool{}
	for i, r := range cfg.Rules {
		if r.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if seen[r.Name] {
			return errors.Errorf("rule %d: duplicate name %q", i, r.Name)
		}
		seen[r.Name] = true

		if _, err := r.rewriteRule().Compile(); err != nil {
			return err
		}
	}
	return nil
}

// 🔨 CompileRules compiles the config's rules in order
func (cfg *Config) CompileRules() ([]*rewrite.CompiledRule, error) {
	compiled := make([]*rewrite.CompiledRule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		cr, err := r.rewriteRule().Compile()
		if err != nil {
			return nil, errors.Errorf("compiling rules: %w", err)
		}
		compiled = append(compiled, cr)
	}
	return compiled, nil
}

func (r Rule) rewriteRule() rewrite.Rule {
	return rewrite.Rule{
		Name:      r.Name,
		Pattern:   r.Pattern,
		Template:  r.Template,
		Transform: r.Transform,
		Files:     r.Files,
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	names := make([]string, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		names = append(names, r.Name)
	}
	return fmt.Sprintf("%d files, rules: %s", len(cfg.Files), strings.Join(names, ", "))
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
