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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/commands"
	"github.com/walteh/rewriterc/pkg/status"
)

func main() {
	// Parse the persistent flags early so logging is configured before
	// the config file is loaded
	rootCmd := &cobra.Command{
		Use:   "rewriterc",
		Short: "A tool for rewriting files with configured pattern rules",
		Long: `rewriterc applies an ordered list of regex rewrite rules to a set of
target files, replacing every match with a templated or transform-built
replacement. Rules and target globs live in a .rewriterc.yaml or
.rewriterc.hcl config file.`,
		SilenceUsage: true,
	}
	addRootFlags(rootCmd)
	rootCmd.PersistentFlags().ParseErrorsWhitelist.UnknownFlags = true
	_ = rootCmd.PersistentFlags().Parse(os.Args[1:])

	setupLogging()
	ctx := zerolog.DefaultContextLogger.WithContext(context.Background())

	// Create user logger
	userLogger := status.NewUserLogger(ctx)

	// Create root options
	opts, err := newRootOpts(ctx)
	if err != nil {
		userLogger.LogValidation(false, "Failed to initialize", err)
		os.Exit(1)
	}

	// Add commands
	rootCmd.AddCommand(
		commands.NewApplyCmd(opts),
		commands.NewPlanCmd(opts),
		commands.NewStatusCmd(opts),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(FormatVersion())
		},
	}
}
