// Package scan expands content patterns against a project tree, the same
// way the CSS build tool's content scanner discovers candidate files.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/sofmeright/twconf/src/config"
	twlog "github.com/sofmeright/twconf/src/log"
	"golang.org/x/sync/errgroup"
)

// Scanner expands content patterns under Root.
type Scanner struct {
	Root             string
	RespectGitignore bool
	Concurrency      int // max patterns expanded at once (default: NumCPU)
}

// PatternResult lists the files one pattern matched.
type PatternResult struct {
	Pattern string
	Files   []string
}

// Result is the outcome of a scan.
type Result struct {
	Patterns []PatternResult // same order as the input patterns
	Files    []string        // sorted union of all matches
	Ignored  int             // matches dropped by .gitignore
}

// Unmatched returns the patterns that matched no files.
func (r *Result) Unmatched() []string {
	var out []string
	for _, p := range r.Patterns {
		if len(p.Files) == 0 {
			out = append(out, p.Pattern)
		}
	}
	return out
}

// Scan expands every pattern concurrently. Patterns are expected to be
// validated; an invalid pattern fails the whole scan.
func (s *Scanner) Scan(ctx context.Context, patterns []string) (*Result, error) {
	logger := twlog.WithComponent("scan")

	root := s.Root
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	var matcher gitignore.Matcher
	if s.RespectGitignore {
		ps, err := gitignore.ReadPatterns(osfs.New(root), nil)
		if err != nil {
			return nil, fmt.Errorf("reading .gitignore: %w", err)
		}
		matcher = gitignore.NewMatcher(ps)
		logger.Debug().Int("patterns", len(ps)).Msg("loaded gitignore patterns")
	}

	limit := s.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	fsys := os.DirFS(root)
	results := make([]PatternResult, len(patterns))
	ignored := make([]int, len(patterns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, pattern := range patterns {
		g.Go(func() error {
			files, dropped, err := expand(gctx, fsys, pattern, matcher)
			if err != nil {
				return fmt.Errorf("expanding %q: %w", pattern, err)
			}
			results[i] = PatternResult{Pattern: pattern, Files: files}
			ignored[i] = dropped
			logger.Debug().
				Str("pattern", pattern).
				Int("files", len(files)).
				Int("ignored", dropped).
				Msg("pattern expanded")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Patterns: results}
	seen := make(map[string]bool)
	for i, pr := range results {
		res.Ignored += ignored[i]
		for _, f := range pr.Files {
			if !seen[f] {
				seen[f] = true
				res.Files = append(res.Files, f)
			}
		}
	}
	sort.Strings(res.Files)
	return res, nil
}

func expand(ctx context.Context, fsys fs.FS, pattern string, matcher gitignore.Matcher) ([]string, int, error) {
	norm := config.NormalizePattern(pattern)
	if !doublestar.ValidatePattern(norm) {
		return nil, 0, doublestar.ErrBadPattern
	}

	files := []string{}
	dropped := 0
	err := doublestar.GlobWalk(fsys, norm, func(p string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(p, ".git/") {
			return nil
		}
		if matcher != nil && matcher.Match(strings.Split(p, "/"), false) {
			dropped++
			return nil
		}
		files = append(files, p)
		return nil
	}, doublestar.WithFilesOnly())
	if err != nil {
		return nil, 0, err
	}

	sort.Strings(files)
	return files, dropped, nil
}
