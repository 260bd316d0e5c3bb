package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rigidsim/internal/physics"
	"github.com/san-kum/rigidsim/internal/scene"
)

var _ = Describe("ChipmunkWorld", func() {
	It("drops the moon box straight down", func() {
		w, err := physics.NewChipmunk(scene.NewMoon())
		Expect(err).NotTo(HaveOccurred())

		result := run(w, 60)
		Expect(result.Frames).To(HaveLen(60))

		// The first step moves the box with its old, zero velocity.
		first := body(result.Frames[0], "box")
		Expect(first.Y).To(Equal(20.0))
		Expect(first.VY).To(BeNumerically("~", -1.62/60, 1e-9))

		prev := first.Y
		for _, f := range result.Frames[1:] {
			b := body(f, "box")
			Expect(b.X).To(BeNumerically("~", 0, 1e-9))
			Expect(b.Y).To(BeNumerically("<", prev))
			prev = b.Y
		}
	})

	It("launches along the configured direction", func() {
		sc := scene.NewLaunch()
		sc.Launch.Speed = 10

		w, err := physics.NewChipmunk(sc)
		Expect(err).NotTo(HaveOccurred())

		result := run(w, 1)
		p := body(result.Frames[0], "projectile")
		Expect(p.X).To(BeNumerically(">", 0))
		Expect(p.Y).To(BeNumerically(">", 0))
	})

	It("refuses scenes with joints", func() {
		_, err := physics.NewChipmunk(scene.NewMachine())
		Expect(err).To(MatchError(physics.ErrUnsupportedJoint))
	})
})

var _ = Describe("New", func() {
	It("builds every registered engine", func() {
		for _, name := range physics.Engines() {
			w, err := physics.New(name, scene.NewMoon())
			Expect(err).NotTo(HaveOccurred(), name)
			Expect(w.Bodies()).To(HaveLen(2))
		}
	})

	It("rejects unknown engines", func() {
		_, err := physics.New("havok", scene.NewMoon())
		Expect(err).To(MatchError(physics.ErrUnknownEngine))
	})
})
