package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sofmeright/twconf/src/config"
	"github.com/sofmeright/twconf/src/scan"
)

// IsCI reports whether we run inside a CI job.
func IsCI() bool {
	return os.Getenv("CI") == "true"
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// StderrIsTerminal reports whether stderr is attached to a terminal.
func StderrIsTerminal() bool { return isTerminal(os.Stderr) }

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal(os.Stdout) || IsCI()
}

// ResolvedSection summarizes where a configuration came from.
func ResolvedSection(w io.Writer, res *config.Resolved, color bool) {
	sec := NewSection(w, "Config", 0, color)
	sec.KV("mode", res.Mode.String())
	sec.KV("source", orNone(res.SourcePath, color))
	sec.KV("env file", orNone(res.EnvPath, color))
	sec.Separator()
	for i, p := range res.Config.Content {
		key := ""
		if i == 0 {
			key = "content"
		}
		sec.KV(key, p)
	}
	sec.KV("theme", fmt.Sprintf("%d extension keys", len(res.Config.Theme.Extend)))
	sec.KV("plugins", fmt.Sprintf("%d", len(res.Config.Plugins)))
	sec.Close()
}

// ValidationSection lists warnings and the final verdict.
func ValidationSection(w io.Writer, warnings []string, err error, color bool) {
	sec := NewSection(w, "Validate", 0, color)
	for _, warn := range warnings {
		sec.Row("%s %s", StatusIcon(StatusWarn, color), warn)
	}
	if err != nil {
		sec.Row("%s %v", StatusIcon(StatusFail, color), err)
	} else {
		sec.Row("%s configuration is valid", StatusIcon(StatusOK, color))
	}
	sec.Close()
}

// ScanSection renders per-pattern match counts and, when verbose, the files.
func ScanSection(w io.Writer, res *scan.Result, elapsed time.Duration, verbose, color bool) {
	sec := NewSection(w, "Scan", elapsed, color)
	sec.Row("%-46s%6s", "pattern", "files")
	for _, p := range res.Patterns {
		status := StatusOK
		if len(p.Files) == 0 {
			status = StatusWarn
		}
		sec.Row("%-46s%6d  %s", p.Pattern, len(p.Files), StatusIcon(status, color))
		if verbose {
			for _, f := range p.Files {
				sec.Row("  %s", Dimmed(f, color))
			}
		}
	}
	sec.Separator()
	line := fmt.Sprintf("%d files from %d patterns", len(res.Files), len(res.Patterns))
	if res.Ignored > 0 {
		line += fmt.Sprintf(" (%d gitignored)", res.Ignored)
	}
	sec.Row("%s", line)
	sec.Close()
}

func orNone(s string, color bool) string {
	if s == "" {
		return Dimmed("none", color)
	}
	return s
}
