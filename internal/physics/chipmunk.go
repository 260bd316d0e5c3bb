package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/scene"
)

// ChipmunkWorld runs joint-free scenes on a Chipmunk2D space.
type ChipmunkWorld struct {
	space  *cp.Space
	names  []string
	bodies map[string]*cp.Body
}

func NewChipmunk(sc *scene.Scene) (*ChipmunkWorld, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if sc.HasJoints() {
		return nil, fmt.Errorf("%w: chipmunk adapter has no %s joint", ErrUnsupportedJoint, sc.Joints[0].Kind)
	}

	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: sc.Gravity.X, Y: sc.Gravity.Y})

	cw := &ChipmunkWorld{
		space:  space,
		names:  make([]string, 0, len(sc.Bodies)),
		bodies: make(map[string]*cp.Body, len(sc.Bodies)),
	}

	for _, b := range sc.Bodies {
		var body *cp.Body
		if b.Kind == scene.Static {
			body = cp.NewStaticBody()
		} else {
			mass := b.Density * b.Width * b.Height
			if mass == 0 {
				mass = 1
			}
			body = cp.NewBody(mass, cp.MomentForBox(mass, b.Width, b.Height))
			v := sc.InitialVelocity(b.Name)
			body.SetVelocity(v.X, v.Y)
		}
		body.SetPosition(cp.Vector{X: b.X, Y: b.Y})
		body.SetAngle(b.Angle())
		space.AddBody(body)

		shape := space.AddShape(cp.NewBox(body, b.Width, b.Height, 0))
		shape.SetFriction(friction(b))

		cw.names = append(cw.names, b.Name)
		cw.bodies[b.Name] = body
	}

	return cw, nil
}

// Step advances the space. Chipmunk has a single solver iteration count, so
// positionIterations is ignored. Positions are integrated with the velocity
// from before gravity is applied, so poses lag box2d by one step: a body
// dropped from rest has not moved after the first step.
func (cw *ChipmunkWorld) Step(dt float64, velocityIterations, positionIterations int) {
	cw.space.Iterations = uint(velocityIterations)
	cw.space.Step(dt)
}

func (cw *ChipmunkWorld) Bodies() []dynamo.BodyState {
	states := make([]dynamo.BodyState, 0, len(cw.names))
	for _, name := range cw.names {
		b := cw.bodies[name]
		p, v := b.Position(), b.Velocity()
		states = append(states, dynamo.BodyState{
			Name:  name,
			X:     p.X,
			Y:     p.Y,
			Angle: b.Angle(),
			VX:    v.X,
			VY:    v.Y,
		})
	}
	return states
}
