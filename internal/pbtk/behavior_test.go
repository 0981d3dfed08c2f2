package pbtk_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fbio/internal/ivive"
	"github.com/san-kum/fbio/internal/pbtk"
	"github.com/san-kum/fbio/internal/physiology"
)

var _ = Describe("Bioavailability", func() {
	var (
		ctx  context.Context
		phys physiology.Physiology
		opts pbtk.Options
		base pbtk.Chemical
	)

	fbio := func(chem pbtk.Chemical) float64 {
		out, err := pbtk.Evaluate(ctx, chem, phys, opts)
		Expect(err).NotTo(HaveOccurred())
		return out.Fbio
	}

	BeforeEach(func() {
		ctx = context.Background()
		phys = physiology.Default()
		opts = pbtk.DefaultOptions()
		opts.GridPoints = 2000
		base = pbtk.Chemical{
			Name:            "DEHP",
			LumenClearance:  [3]float64{10.4, 15.6, 15.6},
			LiverClearance:  30.1,
			WallClearance:   219.6,
			LogKow:          7.43,
			MolecularWeight: 390.6,
			Assay:           ivive.Microsome,
			Papp:            2.1e-6,
		}
	})

	Context("when a clearance grows", func() {
		scale := func(c pbtk.Chemical, field string, k float64) pbtk.Chemical {
			switch field {
			case "lumen":
				for i := range c.LumenClearance {
					c.LumenClearance[i] *= k
				}
			case "liver":
				c.LiverClearance *= k
			case "wall":
				c.WallClearance *= k
			}
			return c
		}

		DescribeTable("Fbio does not increase",
			func(field string) {
				prev := fbio(scale(base, field, 0.5))
				for _, k := range []float64{1, 2, 8} {
					cur := fbio(scale(base, field, k))
					Expect(cur).To(BeNumerically("<=", prev+1e-9), "%s x%g", field, k)
					prev = cur
				}
			},
			Entry("lumen", "lumen"),
			Entry("liver", "liver"),
			Entry("wall", "wall"),
		)
	})

	Context("across the physicochemical range", func() {
		It("stays within the unit interval", func() {
			for _, logKow := range []float64{-2, 0, 3, 7.43, 10} {
				for _, papp := range []float64{1e-7, 1e-5, 0.5} {
					chem := base
					chem.LogKow = logKow
					chem.Papp = papp
					f := fbio(chem)
					Expect(f).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)),
						"logKow=%g papp=%g", logKow, papp)
				}
			}
		})
	})

	Context("without any metabolism", func() {
		BeforeEach(func() {
			base.Name = "inert"
			base.LumenClearance = [3]float64{}
			base.LiverClearance = 0
			base.WallClearance = 0
			base.LogKow = 1
			base.Papp = 1e-4
		})

		It("matches the absorbed fraction", func() {
			model, err := pbtk.NewModel(base, phys)
			Expect(err).NotTo(HaveOccurred())
			Expect(fbio(base)).To(BeNumerically("~", model.AbsorbedFraction(), 5e-3))
		})

		It("tends to one for highly permeable compounds", func() {
			base.Papp = 0.5
			Expect(fbio(base)).To(BeNumerically("~", 1, 0.02))
		})
	})

	Context("with a hepatocyte assay", func() {
		It("scales liver clearance differently from microsomes", func() {
			hep := base
			hep.Assay = ivive.Hepatocyte
			Expect(fbio(hep)).NotTo(BeNumerically("~", fbio(base), 1e-6))
		})
	})
})
