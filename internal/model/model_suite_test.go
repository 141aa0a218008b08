package model_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/asolade/outbreak/internal/epi"
	"github.com/asolade/outbreak/internal/model"
)

func TestModelSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Model Suite")
}

var _ = Describe("SEIRD", func() {
	var p model.Params

	BeforeEach(func() {
		p = model.NigeriaParams()
	})

	Describe("transmission variants", func() {
		It("agree before the intervention day", func() {
			constant := model.NewSEIRD(p, model.NewConstantBeta(p.Beta0))
			decaying := model.NewSEIRD(p, model.NewDecayingBeta(p.Beta0, p.InterventionDay, p.Decay))
			x := epi.State{1e6, 10, 5, 1, 0.5}

			for _, t := range []float64{0, 0.5, 1.7, 2.999} {
				Expect(decaying.Derivative(x, t)).To(Equal(constant.Derivative(x, t)))
			}
		})

		It("diverge after the intervention day", func() {
			constant := model.NewSEIRD(p, model.NewConstantBeta(p.Beta0))
			decaying := model.NewSEIRD(p, model.NewDecayingBeta(p.Beta0, p.InterventionDay, p.Decay))
			x := epi.State{1e6, 10, 5, 1, 0.5}

			dc := constant.Derivative(x, 10)
			dd := decaying.Derivative(x, 10)
			Expect(dd[epi.S]).To(BeNumerically(">", dc[epi.S]))
		})
	})

	Describe("the corpse transmission channel", func() {
		It("is inactive by default", func() {
			Expect(p.CorpseBeta).To(BeZero())

			m := model.NewSEIRD(p, model.NewConstantBeta(p.Beta0))
			x := epi.State{1e6, 0, 0, 0, 1e4}
			dx := m.Derivative(x, 0)
			Expect(dx[epi.S]).To(BeZero())
			Expect(dx[epi.E]).To(BeZero())
		})
	})

	Describe("derivative signs at the outbreak seed", func() {
		It("moves mass out of S and into E, R and D", func() {
			m := model.NewSEIRD(p, model.NewConstantBeta(p.Beta0))
			dx := m.Derivative(epi.State{1e6, 0, 1, 0, 0}, 0)

			Expect(dx[epi.S]).To(BeNumerically("<", 0))
			Expect(dx[epi.E]).To(BeNumerically(">", 0))
			Expect(dx[epi.I]).To(BeNumerically("<", 0))
			Expect(dx[epi.R]).To(BeNumerically(">", 0))
			Expect(dx[epi.D]).To(BeNumerically(">", 0))
		})
	})
})
