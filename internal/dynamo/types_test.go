package dynamo

import (
	"math"
	"testing"
)

func TestBodyState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state BodyState
		valid bool
	}{
		{"zero", BodyState{}, true},
		{"normal", BodyState{X: 1, Y: 2, Angle: 0.5}, true},
		{"NaN position", BodyState{X: math.NaN()}, false},
		{"+Inf velocity", BodyState{VY: math.Inf(1)}, false},
		{"-Inf angle", BodyState{Angle: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestFrame_Body(t *testing.T) {
	f := Frame{Bodies: []BodyState{{Name: "a", X: 1}, {Name: "b", X: 2}}}

	if b, ok := f.Body("b"); !ok || b.X != 2 {
		t.Errorf("expected body b at x=2, got %+v (ok=%v)", b, ok)
	}
	if _, ok := f.Body("missing"); ok {
		t.Error("expected missing body to be absent")
	}
}

func TestFrame_Clone(t *testing.T) {
	f := Frame{Step: 3, Bodies: []BodyState{{Name: "a", X: 1}}}
	c := f.Clone()
	c.Bodies[0].X = 9

	if f.Bodies[0].X != 1 {
		t.Error("clone shares body storage with original")
	}
}
