package metrics

import (
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/scene"
)

// Descent counts frames past the apex where a body failed to drop. A
// projectile on a parabola scores zero.
type Descent struct {
	name       string
	body       string
	samples    int
	prevY      float64
	apexY      float64
	pastApex   bool
	violations int
}

func NewDescent(name, body string) *Descent {
	if name == "" {
		name = body + "_descent"
	}
	return &Descent{name: name, body: body}
}

func (d *Descent) Name() string { return d.name }

func (d *Descent) Observe(f dynamo.Frame) {
	b, ok := f.Body(d.body)
	if !ok {
		return
	}

	if d.samples > 0 {
		switch {
		case d.pastApex:
			if b.Y >= d.prevY {
				d.violations++
			}
		case b.Y < d.prevY:
			d.pastApex = true
			d.apexY = d.prevY
		}
	}
	d.prevY = b.Y
	d.samples++
}

func (d *Descent) Value() float64 { return float64(d.violations) }

// Apex returns the highest y seen before the body started to fall, and
// whether that point was reached.
func (d *Descent) Apex() (float64, bool) { return d.apexY, d.pastApex }

func (d *Descent) Reset() {
	d.samples = 0
	d.prevY = 0
	d.apexY = 0
	d.pastApex = false
	d.violations = 0
}

// StepCount counts observed frames.
type StepCount struct {
	name  string
	count int
}

func NewStepCount(name string) *StepCount {
	if name == "" {
		name = scene.StepsCheckName
	}
	return &StepCount{name: name}
}

func (s *StepCount) Name() string           { return s.name }
func (s *StepCount) Observe(f dynamo.Frame) { s.count++ }
func (s *StepCount) Value() float64         { return float64(s.count) }
func (s *StepCount) Reset()                 { s.count = 0 }
