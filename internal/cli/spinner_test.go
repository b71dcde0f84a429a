package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func quietSpinner(t *testing.T) {
	t.Helper()
	prevSpin, prevOut := spinnerOut, stdout
	spinnerOut, stdout = io.Discard, io.Discard
	t.Cleanup(func() { spinnerOut, stdout = prevSpin, prevOut })
}

func TestSpinnerStop(t *testing.T) {
	quietSpinner(t)

	s := newSpinner("Rendering card.toml...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	s.Stop()

	if s.Cancelled() {
		t.Error("a stopped spinner is not cancelled")
	}
}

func TestSpinnerContextCancellation(t *testing.T) {
	quietSpinner(t)

	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerWithContext(ctx, "Rendering...")
			s.Start()
			time.Sleep(100 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("spinner should report cancellation of its context")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopWithStatus(t *testing.T) {
	quietSpinner(t)
	var buf bytes.Buffer
	stdout = &buf

	s := newSpinner("Rendering...")
	s.Start()
	s.StopWithSuccess("Rendered card")
	s = newSpinner("Rendering...")
	s.Start()
	s.StopWithError("Render failed")

	out := buf.String()
	if !strings.Contains(out, "Rendered card") || !strings.Contains(out, "Render failed") {
		t.Errorf("status output = %q", out)
	}
}
