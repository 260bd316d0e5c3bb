package report

import (
	"fmt"
	"io"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/scene"
)

// Printer writes one line per frame for a single body.
type Printer struct {
	w      io.Writer
	format scene.OutputFormat
	body   string
	lines  int
	err    error
}

func NewPrinter(w io.Writer, format scene.OutputFormat, body string) *Printer {
	if format == "" {
		format = scene.OutputPose
	}
	return &Printer{w: w, format: format, body: body}
}

func (p *Printer) OnFrame(f dynamo.Frame) {
	if p.err != nil {
		return
	}
	b, ok := f.Body(p.body)
	if !ok {
		return
	}

	switch p.format {
	case scene.OutputPosition:
		_, p.err = fmt.Fprintf(p.w, "%4.2f %4.2f\n", b.X, b.Y)
	default:
		_, p.err = fmt.Fprintf(p.w, "%4.2f %4.2f %4.2f\n", b.X, b.Y, b.Angle)
	}
	if p.err == nil {
		p.lines++
	}
}

// Lines is the number of lines written so far.
func (p *Printer) Lines() int { return p.lines }

// Err returns the first write error, after which the printer goes quiet.
func (p *Printer) Err() error { return p.err }
