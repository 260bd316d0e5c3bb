package physics

// Mass reports the mass box2d derived from the body's fixtures.
func (bw *Box2DWorld) Mass(name string) float64 {
	if b, ok := bw.bodies[name]; ok {
		return b.GetMass()
	}
	return 0
}

func (bw *Box2DWorld) JointCount() int { return len(bw.joints) }
