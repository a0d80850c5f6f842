package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pandiff/pkg/decorate"
	"github.com/matzehuels/pandiff/pkg/diff"
	"github.com/matzehuels/pandiff/pkg/pipeline"
)

func TestRenderStats(t *testing.T) {
	res := &pipeline.Result{
		Summary:   diff.Summary{Unchanged: 5, Added: 2, Removed: 1, Changed: 1},
		Decorated: decorate.Stats{Added: 2, Removed: 1},
		Stats: pipeline.Stats{
			BeforeBlocks: 6,
			AfterBlocks:  7,
			DiffTime:     3 * time.Millisecond,
		},
		CacheInfo: pipeline.CacheInfo{DiffHit: true},
	}

	out := renderStats(res)
	for _, want := range []string{"6 blocks", "7 blocks", "1 pairs", "+2 -1", "3ms (cached)", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderStats() missing %q:\n%s", want, out)
		}
	}
}

func TestPrintDiffLine(t *testing.T) {
	buf := captureUI(t)
	printDiffLine(&pipeline.Result{Summary: diff.Summary{Unchanged: 3, Added: 1, Removed: 2}})
	out := buf.String()
	for _, want := range []string{"3 unchanged", "+1", "-2", iconFresh} {
		if !strings.Contains(out, want) {
			t.Errorf("printDiffLine() missing %q: %q", want, out)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "-"},
		{1500 * time.Nanosecond, "2µs"},
		{1234 * time.Microsecond, "1ms"},
		{2 * time.Second, "2s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRenderBatch(t *testing.T) {
	results := []pipeline.BatchResult{
		{Index: 0, Options: pipeline.Options{Before: "/x/a1.json", After: "/x/a2.json"}, Result: &pipeline.Result{Summary: diff.Summary{Added: 4}}},
		{Index: 1, Options: pipeline.Options{Before: "/x/b1.json", After: "/x/b2.json"}, Err: errTest},
	}
	out := renderBatch(results)
	for _, want := range []string{"a1.json", "+4", "failed", "b2.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderBatch() missing %q:\n%s", want, out)
		}
	}
}

var errTest = errors.New("boom")
