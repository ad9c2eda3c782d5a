package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/particlelife/internal/engine"
)

var _ = Describe("Engine", func() {
	Describe("two particles of one type at the tent midpoint", func() {
		var (
			eng    *engine.Engine
			model  *engine.TypeModel
			params engine.Params
			frame  []engine.Particle
		)

		BeforeEach(func() {
			world, err := engine.NewWorld(100, 100, false)
			Expect(err).NotTo(HaveOccurred())
			eng = engine.New(world)

			model, err = engine.NewTypeModel(1, engine.DefaultParams(), rand.NewSource(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(model.SetAttraction(0, 0, 1.0)).To(Succeed())
			Expect(model.SetRadii(0, 0, 1.0, 3.0)).To(Succeed())

			params = engine.DefaultParams()
			params.Friction = 0

			frame = []engine.Particle{
				{Pos: r2.Vec{X: 10, Y: 10}},
				{Pos: r2.Vec{X: 12, Y: 10}},
			}
		})

		It("pulls each particle toward the other with magnitude 1 after one tick", func() {
			next, err := eng.Step(model, params, frame)
			Expect(err).NotTo(HaveOccurred())
			Expect(next).To(HaveLen(2))

			Expect(next[0].Vel.X).To(BeNumerically("~", 1.0, 1e-12))
			Expect(next[0].Vel.Y).To(BeZero())
			Expect(next[1].Vel.X).To(BeNumerically("~", -1.0, 1e-12))
			Expect(next[1].Vel.Y).To(BeZero())

			Expect(next[0].Pos).To(Equal(r2.Vec{X: 11, Y: 10}))
			Expect(next[1].Pos).To(Equal(r2.Vec{X: 11, Y: 10}))
		})

		It("carries the accumulated velocity through the second tick", func() {
			first, err := eng.Step(model, params, frame)
			Expect(err).NotTo(HaveOccurred())
			second, err := eng.Step(model, params, first)
			Expect(err).NotTo(HaveOccurred())

			// coincident after the first tick, so no force acts on the second
			Expect(second[0].Vel).To(Equal(first[0].Vel))
			Expect(second[1].Vel).To(Equal(first[1].Vel))
			Expect(second[0].Pos).To(Equal(r2.Add(first[0].Pos, first[0].Vel)))
			Expect(second[1].Pos).To(Equal(r2.Add(first[1].Pos, first[1].Vel)))
			Expect(second[0].Pos).To(Equal(r2.Vec{X: 12, Y: 10}))
			Expect(second[1].Pos).To(Equal(r2.Vec{X: 10, Y: 10}))
		})

		It("leaves the input frame untouched", func() {
			before := engine.Clone(frame)
			_, err := eng.Step(model, params, frame)
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).To(Equal(before))
		})
	})

	Describe("a randomized run", func() {
		It("keeps every particle inside the torus and preserves types", func() {
			world, err := engine.NewWorld(90, 60, true)
			Expect(err).NotTo(HaveOccurred())
			eng := engine.New(world)
			model, err := engine.NewTypeModel(4, engine.DefaultParams(), rand.NewSource(9))
			Expect(err).NotTo(HaveOccurred())

			start := eng.CreateParticles(model, 600, rand.New(rand.NewSource(9)))
			frame := start
			for i := 0; i < 25; i++ {
				frame, err = eng.Step(model, engine.DefaultParams(), frame)
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(frame).To(HaveLen(len(start)))
			for i, p := range frame {
				Expect(p.Type).To(Equal(start[i].Type))
				Expect(p.Pos.X).To(And(BeNumerically(">=", 0), BeNumerically("<", 90)))
				Expect(p.Pos.Y).To(And(BeNumerically(">=", 0), BeNumerically("<", 60)))
			}
		})

		It("rejects a malformed configuration without touching the model", func() {
			model, err := engine.NewTypeModel(3, engine.DefaultParams(), rand.NewSource(2))
			Expect(err).NotTo(HaveOccurred())
			before := model.Matrix()

			bad := engine.DefaultParams()
			bad.StdAttraction = 0
			Expect(model.Randomize(bad)).To(MatchError(engine.ErrInvalidDistribution))
			Expect(model.Matrix()).To(Equal(before))
		})
	})
})
