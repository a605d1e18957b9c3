package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sofmeright/twconf/src/config"
	"github.com/sofmeright/twconf/src/scan"
)

func TestSectionFrame(t *testing.T) {
	var buf bytes.Buffer
	sec := NewSection(&buf, "Config", 1500*time.Millisecond, false)
	sec.KV("mode", "production")
	sec.Separator()
	sec.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "── Config ") || !strings.HasSuffix(lines[0], " 1.5s ──") {
		t.Errorf("header = %q", lines[0])
	}
	if got := len([]rune(lines[0])); got != sectionWidth+4 {
		t.Errorf("header width = %d, want %d", got, sectionWidth+4)
	}
	if lines[1] != "    │ mode        production" {
		t.Errorf("kv row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "    └─") {
		t.Errorf("footer = %q", lines[3])
	}
}

func TestFormatElapsed(t *testing.T) {
	for d, want := range map[time.Duration]string{
		500 * time.Microsecond:  "<1ms",
		42 * time.Millisecond:   "42ms",
		2500 * time.Millisecond: "2.5s",
		90 * time.Second:        "1m30.0s",
	} {
		if got := formatElapsed(d); got != want {
			t.Errorf("formatElapsed(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestUseColorRespectsNoColor(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("NO_COLOR", "1")
	if UseColor() {
		t.Error("UseColor() = true with NO_COLOR set")
	}
}

func TestResolvedSection(t *testing.T) {
	var buf bytes.Buffer
	res := &config.Resolved{Config: config.New(config.ModeDevelopment), Mode: config.ModeDevelopment}
	ResolvedSection(&buf, res, false)

	out := buf.String()
	for _, want := range []string{"development", "./src/**/*.cljs", "cljs-runtime/*.js", "source      none", "0 extension keys"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidationSection(t *testing.T) {
	var buf bytes.Buffer
	ValidationSection(&buf, []string{"content[1]: duplicate pattern"}, errors.New("content[0]: pattern is empty"), false)
	out := buf.String()
	if !strings.Contains(out, "! content[1]: duplicate pattern") || !strings.Contains(out, "✗ content[0]") {
		t.Errorf("unexpected output:\n%s", out)
	}

	buf.Reset()
	ValidationSection(&buf, nil, nil, false)
	if !strings.Contains(buf.String(), "✓ configuration is valid") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestScanSection(t *testing.T) {
	res := &scan.Result{
		Patterns: []scan.PatternResult{
			{Pattern: "src/**/*.cljs", Files: []string{"src/a.cljs"}},
			{Pattern: "dist/*.js", Files: []string{}},
		},
		Files:   []string{"src/a.cljs"},
		Ignored: 2,
	}

	var buf bytes.Buffer
	ScanSection(&buf, res, 0, true, false)
	out := buf.String()
	for _, want := range []string{"src/**/*.cljs", "  src/a.cljs", "dist/*.js", "1 files from 2 patterns (2 gitignored)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		st    Status
		plain string
	}{
		{StatusOK, "✓"},
		{StatusWarn, "!"},
		{StatusFail, "✗"},
		{StatusSkip, "⊘"},
		{Status(42), "⊘"},
	}
	for _, tt := range tests {
		if got := StatusIcon(tt.st, false); got != tt.plain {
			t.Errorf("StatusIcon(%d, false) = %q, want %q", tt.st, got, tt.plain)
		}
		colored := StatusIcon(tt.st, true)
		if !strings.HasPrefix(colored, "\033[") || !strings.Contains(colored, tt.plain) {
			t.Errorf("StatusIcon(%d, true) = %q", tt.st, colored)
		}
	}
}

func TestScanSectionMarksUnmatched(t *testing.T) {
	res := &scan.Result{Patterns: []scan.PatternResult{{Pattern: "dist/*.js", Files: []string{}}}}

	var buf bytes.Buffer
	ScanSection(&buf, res, 0, false, false)
	if !strings.Contains(buf.String(), "dist/*.js") || !strings.Contains(buf.String(), "0  !") {
		t.Errorf("unmatched pattern not flagged:\n%s", buf.String())
	}
}
