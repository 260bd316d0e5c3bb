package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/scene"
)

// FromCheck builds the metric that measures a scene check.
func FromCheck(c scene.Check) (dynamo.Metric, error) {
	need := func(n int) error {
		if len(c.Bodies) < n {
			return fmt.Errorf("check %q (%s) needs %d bodies, got %d", c.Name, c.Kind, n, len(c.Bodies))
		}
		return nil
	}

	switch c.Kind {
	case scene.CheckAxisDrift:
		if err := need(1); err != nil {
			return nil, err
		}
		axis := c.Axis
		if axis == "" {
			axis = "x"
		}
		if axis != "x" && axis != "y" {
			return nil, fmt.Errorf("check %q: unknown axis %q", c.Name, axis)
		}
		return NewAxisDrift(c.Name, c.Bodies[0], axis), nil
	case scene.CheckSeparation:
		if err := need(2); err != nil {
			return nil, err
		}
		return NewSeparation(c.Name, c.Bodies[0], c.Bodies[1]), nil
	case scene.CheckDescent:
		if err := need(1); err != nil {
			return nil, err
		}
		return NewDescent(c.Name, c.Bodies[0]), nil
	case scene.CheckPulley:
		if err := need(4); err != nil {
			return nil, err
		}
		return NewPulleyLength(c.Name, c.Bodies[0], c.Bodies[1], c.Bodies[2], c.Bodies[3], c.Ratio), nil
	case scene.CheckSteps:
		return NewStepCount(c.Name), nil
	default:
		return nil, fmt.Errorf("check %q: unknown kind %q", c.Name, c.Kind)
	}
}

// ForScene builds one metric per check of sc.
func ForScene(sc *scene.Scene) ([]dynamo.Metric, error) {
	ms := make([]dynamo.Metric, 0, len(sc.Checks))
	for _, c := range sc.Checks {
		m, err := FromCheck(c)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

type Outcome struct {
	Check  scene.Check
	Value  float64
	Passed bool
}

// Evaluate compares measured metric values to each check's tolerance.
// Steps checks compare against Expect; the others must stay within
// Tolerance of zero.
func Evaluate(checks []scene.Check, values map[string]float64) []Outcome {
	out := make([]Outcome, 0, len(checks))
	for _, c := range checks {
		m, err := FromCheck(c)
		if err != nil {
			out = append(out, Outcome{Check: c, Value: math.NaN()})
			continue
		}
		v, ok := values[m.Name()]
		if !ok {
			out = append(out, Outcome{Check: c, Value: math.NaN()})
			continue
		}

		target := 0.0
		if c.Kind == scene.CheckSteps {
			target = c.Expect
		}
		out = append(out, Outcome{Check: c, Value: v, Passed: math.Abs(v-target) <= c.Tolerance})
	}
	return out
}

// AllPassed reports whether every outcome passed.
func AllPassed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if !o.Passed {
			return false
		}
	}
	return true
}
