package metrics

import (
	"math"

	"github.com/san-kum/rigidsim/internal/dynamo"
)

// AxisDrift tracks how far one coordinate of a body strays from its value
// in the first observed frame.
type AxisDrift struct {
	name     string
	body     string
	axis     string
	initial  float64
	samples  int
	maxDrift float64
}

func NewAxisDrift(name, body, axis string) *AxisDrift {
	if name == "" {
		name = body + "_" + axis + "_drift"
	}
	return &AxisDrift{name: name, body: body, axis: axis}
}

func (d *AxisDrift) Name() string { return d.name }

func (d *AxisDrift) Observe(f dynamo.Frame) {
	b, ok := f.Body(d.body)
	if !ok {
		return
	}
	v := b.X
	if d.axis == "y" {
		v = b.Y
	}

	if d.samples == 0 {
		d.initial = v
	}
	d.samples++
	d.maxDrift = math.Max(d.maxDrift, math.Abs(v-d.initial))
}

func (d *AxisDrift) Value() float64 { return d.maxDrift }

func (d *AxisDrift) Reset() {
	d.initial = 0
	d.samples = 0
	d.maxDrift = 0
}

// Separation tracks the largest change in distance between two bodies.
type Separation struct {
	name     string
	a, b     string
	initial  float64
	samples  int
	maxDrift float64
}

func NewSeparation(name, a, b string) *Separation {
	if name == "" {
		name = a + "_" + b + "_separation"
	}
	return &Separation{name: name, a: a, b: b}
}

func (s *Separation) Name() string { return s.name }

func (s *Separation) Observe(f dynamo.Frame) {
	ba, okA := f.Body(s.a)
	bb, okB := f.Body(s.b)
	if !okA || !okB {
		return
	}
	d := math.Hypot(ba.X-bb.X, ba.Y-bb.Y)

	if s.samples == 0 {
		s.initial = d
	}
	s.samples++
	s.maxDrift = math.Max(s.maxDrift, math.Abs(d-s.initial))
}

func (s *Separation) Value() float64 { return s.maxDrift }

func (s *Separation) Reset() {
	s.initial = 0
	s.samples = 0
	s.maxDrift = 0
}

// PulleyLength tracks |a-groundA| + ratio*|b-groundB|, which a pulley joint
// keeps constant.
type PulleyLength struct {
	name     string
	a, b     string
	gA, gB   string
	ratio    float64
	initial  float64
	samples  int
	maxDrift float64
}

func NewPulleyLength(name, a, b, groundA, groundB string, ratio float64) *PulleyLength {
	if name == "" {
		name = "pulley_length"
	}
	if ratio == 0 {
		ratio = 1
	}
	return &PulleyLength{name: name, a: a, b: b, gA: groundA, gB: groundB, ratio: ratio}
}

func (p *PulleyLength) Name() string { return p.name }

func (p *PulleyLength) Observe(f dynamo.Frame) {
	a, ok1 := f.Body(p.a)
	b, ok2 := f.Body(p.b)
	ga, ok3 := f.Body(p.gA)
	gb, ok4 := f.Body(p.gB)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return
	}
	length := math.Hypot(a.X-ga.X, a.Y-ga.Y) + p.ratio*math.Hypot(b.X-gb.X, b.Y-gb.Y)

	if p.samples == 0 {
		p.initial = length
	}
	p.samples++
	p.maxDrift = math.Max(p.maxDrift, math.Abs(length-p.initial))
}

func (p *PulleyLength) Value() float64 { return p.maxDrift }

func (p *PulleyLength) Reset() {
	p.initial = 0
	p.samples = 0
	p.maxDrift = 0
}
