package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = old })
	return &buf
}

func TestSpinnerBasic(t *testing.T) {
	buf := captureUI(t)

	s := newSpinner(context.Background(), "Diffing...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.SetMessage("Diffing %d/%d", 1, 2)
	time.Sleep(200 * time.Millisecond)
	s.StopWithSuccess("done")

	if s.Cancelled() {
		t.Error("Stop() should not count as cancellation")
	}
	out := buf.String()
	if !strings.Contains(out, "Diffing 1/2") {
		t.Errorf("updated message not drawn: %q", out)
	}
	if !strings.Contains(out, "done") {
		t.Errorf("success message missing: %q", out)
	}
}

func TestSpinnerWithContext(t *testing.T) {
	captureUI(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, "Testing with context...")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureUI(t)
	s := newSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner(context.Background(), "never started")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() blocked on a spinner that never started")
	}
}
