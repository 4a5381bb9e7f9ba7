package metrics

import (
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 || snap.sum != 555 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("expected one observation per bucket, got %v", snap.counts)
	}
}

func TestRenderIncludesParseSeries(t *testing.T) {
	IncParseStarted()
	IncParseFailed("unparseable_pdf")
	ObserveParseDurationMs(12)

	out := Render()
	for _, want := range []string{
		"# TYPE resume_parse_started_total counter",
		"resume_parse_failed_by_code_total{code=\"unparseable_pdf\"}",
		"resume_parse_duration_ms_bucket{le=\"+Inf\"}",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}
