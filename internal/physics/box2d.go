package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/scene"
)

// Box2DWorld is a box2d world built from a scene.
type Box2DWorld struct {
	world  *box2d.B2World
	names  []string
	bodies map[string]*box2d.B2Body
	joints map[string]box2d.B2JointInterface
}

// NewBox2D creates every body of sc, then its joints in declaration order.
func NewBox2D(sc *scene.Scene) (*Box2DWorld, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	w := box2d.MakeB2World(box2d.MakeB2Vec2(sc.Gravity.X, sc.Gravity.Y))
	bw := &Box2DWorld{
		world:  &w,
		names:  make([]string, 0, len(sc.Bodies)),
		bodies: make(map[string]*box2d.B2Body, len(sc.Bodies)),
		joints: make(map[string]box2d.B2JointInterface, len(sc.Joints)),
	}

	for _, b := range sc.Bodies {
		bw.createBody(b, sc.InitialVelocity(b.Name))
	}

	for _, j := range sc.Joints {
		if err := bw.createJoint(j); err != nil {
			return nil, err
		}
	}

	return bw, nil
}

func (bw *Box2DWorld) createBody(b scene.Body, v scene.Vec2) {
	bd := box2d.MakeB2BodyDef()
	if b.Kind == scene.Dynamic {
		bd.Type = box2d.B2BodyType.B2_dynamicBody
		bd.LinearVelocity = box2d.MakeB2Vec2(v.X, v.Y)
	}
	bd.Position.Set(b.X, b.Y)
	bd.Angle = b.Angle()

	body := bw.world.CreateBody(&bd)
	body.SetUserData(b.Name)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(b.Width/2, b.Height/2)

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = b.Density
	fd.Friction = friction(b)
	body.CreateFixtureFromDef(&fd)

	bw.names = append(bw.names, b.Name)
	bw.bodies[b.Name] = body
}

func (bw *Box2DWorld) createJoint(j scene.Joint) error {
	a, b := bw.bodies[j.BodyA], bw.bodies[j.BodyB]

	var joint box2d.B2JointInterface
	switch j.Kind {
	case scene.DistanceJoint:
		jd := box2d.MakeB2DistanceJointDef()
		jd.Initialize(a, b, a.GetWorldCenter(), b.GetWorldCenter())
		joint = bw.world.CreateJoint(&jd)

	case scene.PulleyJoint:
		ga, gb := bw.bodies[j.GroundA], bw.bodies[j.GroundB]
		jd := box2d.MakeB2PulleyJointDef()
		jd.Initialize(a, b, ga.GetPosition(), gb.GetPosition(), a.GetWorldCenter(), b.GetWorldCenter(), j.Ratio)
		joint = bw.world.CreateJoint(&jd)

	case scene.PrismaticJoint:
		jd := box2d.MakeB2PrismaticJointDef()
		jd.Initialize(a, b, b.GetWorldCenter(), box2d.MakeB2Vec2(j.Axis.X, j.Axis.Y))
		jd.LowerTranslation = j.Lower
		jd.UpperTranslation = j.Upper
		jd.EnableLimit = j.EnableLimit
		joint = bw.world.CreateJoint(&jd)

	case scene.RevoluteJoint:
		jd := box2d.MakeB2RevoluteJointDef()
		jd.Initialize(a, b, a.GetPosition())
		jd.EnableLimit = j.EnableLimit
		joint = bw.world.CreateJoint(&jd)

	case scene.GearJoint:
		j1, ok1 := bw.joints[j.Joint1]
		j2, ok2 := bw.joints[j.Joint2]
		if !ok1 || !ok2 {
			return fmt.Errorf("gear joint %q: coupled joints must be created first", j.Name)
		}
		jd := box2d.MakeB2GearJointDef()
		jd.BodyA = a
		jd.BodyB = b
		jd.Joint1 = j1
		jd.Joint2 = j2
		jd.Ratio = j.Ratio
		joint = bw.world.CreateJoint(&jd)

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedJoint, j.Kind)
	}

	bw.joints[j.Name] = joint
	return nil
}

func (bw *Box2DWorld) Step(dt float64, velocityIterations, positionIterations int) {
	bw.world.Step(dt, velocityIterations, positionIterations)
}

func (bw *Box2DWorld) Bodies() []dynamo.BodyState {
	states := make([]dynamo.BodyState, 0, len(bw.names))
	for _, name := range bw.names {
		states = append(states, bodyState(name, bw.bodies[name]))
	}
	return states
}

// Body returns the state of one body.
func (bw *Box2DWorld) Body(name string) (dynamo.BodyState, bool) {
	b, ok := bw.bodies[name]
	if !ok {
		return dynamo.BodyState{}, false
	}
	return bodyState(name, b), true
}

func bodyState(name string, b *box2d.B2Body) dynamo.BodyState {
	p := b.GetPosition()
	v := b.GetLinearVelocity()
	return dynamo.BodyState{
		Name:  name,
		X:     p.X,
		Y:     p.Y,
		Angle: b.GetAngle(),
		VX:    v.X,
		VY:    v.Y,
	}
}
