package physics_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/physics"
	"github.com/san-kum/rigidsim/internal/scene"
)

func run(w dynamo.World, steps int) *dynamo.Result {
	cfg := dynamo.DefaultConfig()
	cfg.Steps = steps
	result, err := dynamo.New(w).Run(context.Background(), cfg)
	Expect(err).NotTo(HaveOccurred())
	Expect(result.Errors).To(BeEmpty())
	return result
}

func body(f dynamo.Frame, name string) dynamo.BodyState {
	b, ok := f.Body(name)
	Expect(ok).To(BeTrue(), "body %s missing from frame", name)
	return b
}

func dist(a, b dynamo.BodyState) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

var _ = Describe("Box2DWorld", func() {
	Describe("moon drop", func() {
		var result *dynamo.Result

		BeforeEach(func() {
			w, err := physics.NewBox2D(scene.NewMoon())
			Expect(err).NotTo(HaveOccurred())
			result = run(w, 60)
		})

		It("steps exactly sixty frames", func() {
			Expect(result.Frames).To(HaveLen(60))
		})

		It("keeps the box on its vertical line", func() {
			for _, f := range result.Frames {
				Expect(body(f, "box").X).To(BeNumerically("~", 0, 1e-9))
			}
		})

		It("falls monotonically without rotating", func() {
			prev := 20.0
			for _, f := range result.Frames {
				b := body(f, "box")
				Expect(b.Y).To(BeNumerically("<", prev))
				Expect(b.Angle).To(BeNumerically("~", 0, 1e-9))
				prev = b.Y
			}
		})

		It("falls as far as lunar gravity allows in one second", func() {
			last, _ := result.Last()
			// Semi-implicit Euler: sum of g*dt^2*k for k = 1..60.
			want := 20 - 1.62*(1.0/3600)*60*61/2
			Expect(body(last, "box").Y).To(BeNumerically("~", want, 1e-6))
		})

		It("never moves the static ground", func() {
			for _, f := range result.Frames {
				g := body(f, "ground")
				Expect(g.X).To(Equal(0.0))
				Expect(g.Y).To(Equal(-10.0))
			}
		})
	})

	Describe("projectile", func() {
		var sc *scene.Scene

		BeforeEach(func() {
			sc = scene.NewLaunch()
			sc.Launch.Speed = 10
		})

		It("integrates the first step under the configured gravity", func() {
			w, err := physics.NewBox2D(sc)
			Expect(err).NotTo(HaveOccurred())
			result := run(w, 1)

			v := sc.Launch.Velocity()
			dt := dynamo.DefaultDt
			p := body(result.Frames[0], "projectile")
			Expect(p.X).To(BeNumerically("~", v.X*dt, 1e-9))
			Expect(p.Y).To(BeNumerically("~", (v.Y-9.81*dt)*dt, 1e-9))
		})

		It("descends monotonically after its apex", func() {
			w, err := physics.NewBox2D(sc)
			Expect(err).NotTo(HaveOccurred())
			result := run(w, 120)

			apex := 0
			for i, f := range result.Frames {
				if body(f, "projectile").Y > body(result.Frames[apex], "projectile").Y {
					apex = i
				}
			}
			Expect(apex).To(BeNumerically(">", 0))
			Expect(apex).To(BeNumerically("<", len(result.Frames)-1))

			for i := apex + 1; i < len(result.Frames); i++ {
				Expect(body(result.Frames[i], "projectile").Y).
					To(BeNumerically("<", body(result.Frames[i-1], "projectile").Y))
			}
		})

		It("keeps moving forward at the launch speed", func() {
			w, err := physics.NewBox2D(sc)
			Expect(err).NotTo(HaveOccurred())
			result := run(w, 60)

			last, _ := result.Last()
			Expect(body(last, "projectile").VX).To(BeNumerically("~", sc.Launch.Velocity().X, 1e-9))
		})
	})

	Describe("machine joints", func() {
		var (
			w      *physics.Box2DWorld
			result *dynamo.Result
			first  dynamo.Frame
		)

		BeforeEach(func() {
			var err error
			w, err = physics.NewBox2D(scene.NewMachine())
			Expect(err).NotTo(HaveOccurred())
			first = dynamo.Frame{Bodies: w.Bodies()}
			result = run(w, 300)
		})

		It("creates every joint", func() {
			Expect(w.JointCount()).To(Equal(6))
		})

		It("gives static bodies no mass", func() {
			Expect(w.Mass("ramp1")).To(Equal(0.0))
			Expect(w.Mass("distance_bar")).To(BeNumerically("~", 5, 1e-9))
		})

		It("holds the distance joint separation", func() {
			want := dist(body(first, "distance_bar"), body(first, "distance_post"))
			Expect(want).To(BeNumerically("~", 6, 1e-9))
			for _, f := range result.Frames {
				Expect(dist(body(f, "distance_bar"), body(f, "distance_post"))).To(BeNumerically("~", want, 0.05))
			}
		})

		It("conserves the pulley rope length", func() {
			length := func(f dynamo.Frame) float64 {
				return dist(body(f, "pulley_a"), body(f, "pulley_anchor_a")) +
					dist(body(f, "pulley_b"), body(f, "pulley_anchor_b"))
			}
			want := length(first)
			for _, f := range result.Frames {
				Expect(length(f)).To(BeNumerically("~", want, 0.05))
			}
		})

		It("keeps prismatic sliders on their axis", func() {
			for _, f := range result.Frames {
				Expect(body(f, "slider_a").Y).To(BeNumerically("~", 58.5, 0.01))
				Expect(body(f, "slider_b").Y).To(BeNumerically("~", 48.5, 0.01))
			}
		})

		It("keeps the rotor pinned to its anchor", func() {
			for _, f := range result.Frames {
				r := body(f, "rotor")
				Expect(r.X).To(BeNumerically("~", 55, 0.01))
				Expect(r.Y).To(BeNumerically("~", 30, 0.01))
			}
		})
	})

	Describe("gear coupling", func() {
		var first, last dynamo.Frame
		var result *dynamo.Result

		BeforeEach(func() {
			sc := scene.NewMachine()
			for i := range sc.Bodies {
				if sc.Bodies[i].Name == "slider_a" {
					sc.Bodies[i].Velocity = scene.Vec2{X: -5}
				}
			}
			w, err := physics.NewBox2D(sc)
			Expect(err).NotTo(HaveOccurred())
			first = dynamo.Frame{Bodies: w.Bodies()}
			result = run(w, 600)
			last, _ = result.Last()
		})

		It("drives slider_b opposite to slider_a at ratio one", func() {
			dxA := body(last, "slider_a").X - body(first, "slider_a").X
			dxB := body(last, "slider_b").X - body(first, "slider_b").X
			Expect(dxA).To(BeNumerically("<", -10))
			Expect(dxB).To(BeNumerically("~", -dxA, 0.05))
		})

		It("keeps both sliders inside their translation limits", func() {
			x0A := body(first, "slider_a").X
			x0B := body(first, "slider_b").X
			for _, f := range result.Frames {
				dxA := body(f, "slider_a").X - x0A
				dxB := body(f, "slider_b").X - x0B
				Expect(dxA).To(BeNumerically(">=", -19-0.05))
				Expect(dxA).To(BeNumerically("<=", 0.05))
				Expect(dxB).To(BeNumerically(">=", -0.05))
				Expect(dxB).To(BeNumerically("<=", 19+0.05))
				Expect(dxA + dxB).To(BeNumerically("~", 0, 0.1))
			}
		})
	})

	It("rejects an invalid scene", func() {
		sc := scene.NewMoon()
		sc.Bodies[1].Width = 0
		_, err := physics.NewBox2D(sc)
		Expect(err).To(MatchError(scene.ErrInvalidScene))
	})
})
