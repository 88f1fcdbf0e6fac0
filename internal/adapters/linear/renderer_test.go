package linear_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go.trai.ch/packsweep/internal/adapters/linear"
	"go.trai.ch/zerr"
)

func TestRenderer_SpanLifecycle(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	ctx := context.Background()
	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Plan
	r.OnPlanEmit([]string{"EP1/Objects.package", "EP2/Objects.package"})

	if !strings.Contains(stderr.String(), "Planning to rewrite 2 archive(s)") {
		t.Errorf("Expected plan message in stderr, got: %s", stderr.String())
	}
	if !strings.Contains(stderr.String(), "EP1/Objects.package") {
		t.Errorf("Expected archive path in stderr, got: %s", stderr.String())
	}

	// Span start
	startTime := time.Now()
	r.OnSpanStart("span1", "", "rewrite EP1/Objects.package", startTime)

	if !strings.Contains(stderr.String(), "[rewrite EP1/Objects.package]") {
		t.Errorf("Expected span start message, got: %s", stderr.String())
	}

	// Span logs
	r.OnSpanLog("span1", []byte("removing 3 entries\n"))
	r.OnSpanLog("span1", []byte("verified\n"))

	stdoutStr := stdout.String()
	if !strings.Contains(stdoutStr, "removing 3 entries") {
		t.Errorf("Expected prefixed first line in stdout, got: %s", stdoutStr)
	}
	if !strings.Contains(stdoutStr, "verified") {
		t.Errorf("Expected prefixed second line in stdout, got: %s", stdoutStr)
	}

	// Span end
	endTime := startTime.Add(100 * time.Millisecond)
	r.OnSpanEnd("span1", endTime, nil)

	if !strings.Contains(stderr.String(), "Completed") {
		t.Errorf("Expected completion message, got: %s", stderr.String())
	}

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestRenderer_PartialLines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	startTime := time.Now()
	r.OnSpanStart("span1", "", "scan", startTime)

	// Send partial line
	r.OnSpanLog("span1", []byte("partial"))
	if strings.Contains(stdout.String(), "partial") {
		t.Errorf("Partial line should not be printed immediately")
	}

	// Complete the line
	r.OnSpanLog("span1", []byte(" line\n"))
	if !strings.Contains(stdout.String(), "partial line") {
		t.Errorf("Expected complete line, got: %s", stdout.String())
	}

	// Flush on end
	r.OnSpanLog("span1", []byte("unflushed"))
	endTime := startTime.Add(50 * time.Millisecond)
	r.OnSpanEnd("span1", endTime, nil)

	if !strings.Contains(stdout.String(), "unflushed") {
		t.Errorf("Expected flushed partial line on end, got: %s", stdout.String())
	}
}

func TestRenderer_SpanError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	startTime := time.Now()
	r.OnSpanStart("span1", "", "rewrite EP3/Objects.package", startTime)

	r.OnSpanLog("span1", []byte("error output\n"))

	endTime := startTime.Add(50 * time.Millisecond)
	err := zerr.New("verification mismatch")
	r.OnSpanEnd("span1", endTime, err)

	stderrStr := stderr.String()
	if !strings.Contains(stderrStr, "Failed") {
		t.Errorf("Expected failure message, got: %s", stderrStr)
	}
	if !strings.Contains(stderrStr, "verification mismatch") {
		t.Errorf("Expected error message, got: %s", stderrStr)
	}
}

func TestRenderer_ConcurrentSpans(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	startTime := time.Now()
	r.OnSpanStart("span1", "", "rewrite1", startTime)
	r.OnSpanStart("span2", "", "rewrite2", startTime)

	// Interleaved logs
	r.OnSpanLog("span1", []byte("rewrite1 line 1\n"))
	r.OnSpanLog("span2", []byte("rewrite2 line 1\n"))
	r.OnSpanLog("span1", []byte("rewrite1 line 2\n"))
	r.OnSpanLog("span2", []byte("rewrite2 line 2\n"))

	stdoutStr := stdout.String()
	lines := strings.Split(strings.TrimSpace(stdoutStr), "\n")

	expectedPrefixes := map[string]int{
		"[rewrite1]": 2,
		"[rewrite2]": 2,
	}
	got := map[string]int{}
	for _, line := range lines {
		for prefix := range expectedPrefixes {
			if strings.HasPrefix(line, prefix) {
				got[prefix]++
			}
		}
	}
	for prefix, want := range expectedPrefixes {
		if got[prefix] != want {
			t.Errorf("Expected %d lines with prefix %s, got %d", want, prefix, got[prefix])
		}
	}
}

func TestRenderer_UnknownSpanIgnored(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnSpanLog("ghost", []byte("never printed\n"))
	r.OnSpanEnd("ghost", time.Now(), nil)

	if stdout.Len() != 0 {
		t.Errorf("Expected no stdout output for unknown span, got: %s", stdout.String())
	}
}
