package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/scene"
)

func frame(x, y, angle float64) dynamo.Frame {
	return dynamo.Frame{Bodies: []dynamo.BodyState{
		{Name: "ground"},
		{Name: "box", X: x, Y: y, Angle: angle},
	}}
}

func TestPrinterFormats(t *testing.T) {
	tests := []struct {
		format scene.OutputFormat
		want   string
	}{
		{scene.OutputPose, "0.00 19.97 0.00\n"},
		{scene.OutputPosition, "0.00 19.97\n"},
		{"", "0.00 19.97 0.00\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		p := NewPrinter(&buf, tt.format, "box")
		p.OnFrame(frame(0, 19.9663, 0))
		if buf.String() != tt.want {
			t.Errorf("format %q: expected %q, got %q", tt.format, tt.want, buf.String())
		}
	}
}

func TestPrinterPadsNarrowValues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, scene.OutputPosition, "box")
	p.OnFrame(frame(1.5, -2, 0))

	if buf.String() != "1.50 -2.00\n" {
		t.Errorf("unexpected line %q", buf.String())
	}
}

func TestPrinterOneLinePerFrame(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, scene.OutputPose, "box")
	for i := 0; i < 60; i++ {
		p.OnFrame(frame(0, float64(i), 0))
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 60 || p.Lines() != 60 {
		t.Errorf("expected 60 lines, got %d (counted %d)", len(lines), p.Lines())
	}
}

func TestPrinterSkipsMissingBody(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, scene.OutputPose, "ghost")
	p.OnFrame(frame(1, 2, 3))

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestPrinterStopsAfterWriteError(t *testing.T) {
	w := &failingWriter{}
	p := NewPrinter(w, scene.OutputPose, "box")
	p.OnFrame(frame(0, 0, 0))
	p.OnFrame(frame(0, 0, 0))

	if p.Err() == nil {
		t.Error("expected write error to be kept")
	}
	if w.calls != 1 {
		t.Errorf("expected a single write attempt, got %d", w.calls)
	}
}
