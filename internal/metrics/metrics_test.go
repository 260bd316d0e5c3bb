package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/scene"
)

func frame(bodies ...dynamo.BodyState) dynamo.Frame {
	return dynamo.Frame{Bodies: bodies}
}

func TestAxisDrift(t *testing.T) {
	m := NewAxisDrift("", "box", "x")
	m.Observe(frame(dynamo.BodyState{Name: "box", X: 1, Y: 10}))
	m.Observe(frame(dynamo.BodyState{Name: "box", X: 1.2, Y: 9}))
	m.Observe(frame(dynamo.BodyState{Name: "box", X: 0.9, Y: 8}))

	if math.Abs(m.Value()-0.2) > 1e-12 {
		t.Errorf("expected drift 0.2, got %f", m.Value())
	}
	if m.Name() != "box_x_drift" {
		t.Errorf("unexpected default name %q", m.Name())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestSeparation(t *testing.T) {
	m := NewSeparation("sep", "a", "b")
	m.Observe(frame(dynamo.BodyState{Name: "a", Y: 6}, dynamo.BodyState{Name: "b"}))
	m.Observe(frame(dynamo.BodyState{Name: "a", X: 3, Y: 4}, dynamo.BodyState{Name: "b"}))
	m.Observe(frame(dynamo.BodyState{Name: "a", Y: 6.5}, dynamo.BodyState{Name: "b"}))

	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Errorf("expected max separation change 1.0, got %f", m.Value())
	}
}

func TestPulleyLength(t *testing.T) {
	m := NewPulleyLength("", "a", "b", "ga", "gb", 1)
	ground := []dynamo.BodyState{{Name: "ga", Y: 10}, {Name: "gb", X: 5, Y: 10}}

	observe := func(ya, yb float64) {
		bodies := append([]dynamo.BodyState{{Name: "a", Y: ya}, {Name: "b", X: 5, Y: yb}}, ground...)
		m.Observe(frame(bodies...))
	}
	observe(5, 0)
	observe(4, 1)
	observe(6, -1)

	if m.Value() > 1e-12 {
		t.Errorf("expected conserved rope length, got drift %f", m.Value())
	}

	observe(6, 0)
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected drift 1, got %f", m.Value())
	}
}

func TestDescent(t *testing.T) {
	tests := []struct {
		name       string
		ys         []float64
		violations float64
		apex       bool
	}{
		{"parabola", []float64{1, 2, 2.5, 2.4, 2, 1}, 0, true},
		{"still rising", []float64{1, 2, 3}, 0, false},
		{"bounce", []float64{3, 2, 1, 1.5, 1}, 1, true},
		{"plateau", []float64{3, 2, 2, 1}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewDescent("", "p")
			for _, y := range tt.ys {
				m.Observe(frame(dynamo.BodyState{Name: "p", Y: y}))
			}
			if m.Value() != tt.violations {
				t.Errorf("expected %v violations, got %v", tt.violations, m.Value())
			}
			if _, ok := m.Apex(); ok != tt.apex {
				t.Errorf("expected apex reached=%v", tt.apex)
			}
		})
	}
}

func TestMissingBodyIsIgnored(t *testing.T) {
	m := NewAxisDrift("", "ghost", "y")
	m.Observe(frame(dynamo.BodyState{Name: "box", Y: 3}))
	if m.Value() != 0 {
		t.Errorf("expected no drift for missing body, got %f", m.Value())
	}
}

func TestFromCheck(t *testing.T) {
	tests := []struct {
		check scene.Check
		ok    bool
	}{
		{scene.Check{Name: "a", Kind: scene.CheckAxisDrift, Bodies: []string{"box"}}, true},
		{scene.Check{Name: "b", Kind: scene.CheckAxisDrift, Bodies: []string{"box"}, Axis: "z"}, false},
		{scene.Check{Name: "c", Kind: scene.CheckSeparation, Bodies: []string{"a"}}, false},
		{scene.Check{Name: "d", Kind: scene.CheckPulley, Bodies: []string{"a", "b", "c", "d"}}, true},
		{scene.Check{Name: "e", Kind: scene.CheckSteps}, true},
		{scene.Check{Name: "f", Kind: "energy"}, false},
	}

	for _, tt := range tests {
		_, err := FromCheck(tt.check)
		if (err == nil) != tt.ok {
			t.Errorf("check %s: expected ok=%v, got err=%v", tt.check.Name, tt.ok, err)
		}
	}
}

func TestEvaluate(t *testing.T) {
	checks := []scene.Check{
		{Name: "drift", Kind: scene.CheckAxisDrift, Bodies: []string{"box"}, Tolerance: 0.1},
		{Name: "steps", Kind: scene.CheckSteps, Expect: 60},
		{Name: "missing", Kind: scene.CheckDescent, Bodies: []string{"p"}},
	}
	values := map[string]float64{"drift": 0.05, "steps": 60}

	out := Evaluate(checks, values)
	if len(out) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(out))
	}
	if !out[0].Passed || !out[1].Passed {
		t.Errorf("expected drift and steps to pass: %+v", out[:2])
	}
	if out[2].Passed {
		t.Error("expected missing metric to fail")
	}
	if AllPassed(out) {
		t.Error("AllPassed should be false")
	}
}
