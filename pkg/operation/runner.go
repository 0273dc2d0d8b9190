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

package operation

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes per-file work sequentially or fanned out
type Runner struct {
	async bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(async bool) *Runner {
	return &Runner{async: async}
}

// 🏃 RunFiles invokes fn for every file. In async mode the files are
// processed concurrently and the first error cancels the rest.
func (r *Runner) RunFiles(ctx context.Context, files []string, fn func(ctx context.Context, path string) error) error {
	if !r.async {
		for _, file := range files {
			if err := fn(ctx, file); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, file := range files {
		file := file
		g.Go(func() error {
			return fn(ctx, file)
		})
	}
	return g.Wait()
}
