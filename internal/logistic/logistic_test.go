package logistic_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/logistic/internal/logistic"
)

var _ = Describe("Step", func() {
	It("maps [0,1] into [0,1] for a in (0,4)", func() {
		for _, a := range logistic.Linspace(0.01, 3.99, 40) {
			for _, x := range logistic.Linspace(0, 1, 41) {
				y := logistic.Step(a, x)
				Expect(y).To(BeNumerically(">=", 0), "a=%g x=%g", a, x)
				Expect(y).To(BeNumerically("<=", 1), "a=%g x=%g", a, x)
			}
		}
	})

	It("fixes the boundary points", func() {
		for _, a := range []float64{0.5, 1, 2.707, 3.5, 3.99} {
			Expect(logistic.Step(a, 0)).To(BeZero())
			Expect(logistic.Step(a, 1)).To(BeZero())
		}
	})

	It("applies elementwise", func() {
		xs := []float64{0, 0.25, 0.5, 1}
		Expect(logistic.StepAll(4, xs)).To(Equal([]float64{0, 0.75, 1, 0}))
		Expect(xs).To(Equal([]float64{0, 0.25, 0.5, 1}))
	})
})

var _ = Describe("Converge", func() {
	It("converges in the fixed-point regime", func() {
		res, err := logistic.Converge(2.707, 0.1, logistic.Options{Tolerance: 1e-4})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Converged).To(BeTrue())

		prev, last := res.Final()
		Expect(math.Abs(last - prev)).To(BeNumerically("<", 1e-4))
		Expect(last).To(BeNumerically("~", 1-1/2.707, 1e-3))
		Expect(res.Trajectory[0]).To(Equal(0.1))
		Expect(res.Iterations).To(Equal(len(res.Trajectory) - 1))
	})

	It("stops at the cap on a period-4 parameter", func() {
		res, err := logistic.Converge(3.5, 0.1, logistic.Options{Tolerance: 1e-4, MaxIterations: 500})
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, logistic.ErrNotConverged)).To(BeTrue())

		var cerr *logistic.ConvergenceError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Iterations).To(Equal(500))

		Expect(res).NotTo(BeNil())
		Expect(res.Converged).To(BeFalse())
		Expect(res.Trajectory).To(HaveLen(501))
	})

	It("applies defaults for zero options", func() {
		res, err := logistic.Converge(2.707, 0.1, logistic.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Tolerance).To(Equal(logistic.DefaultStepTolerance))
	})

	It("reports non-finite iterates outside the domain", func() {
		res, err := logistic.Converge(5, 0.5, logistic.Options{MaxIterations: 1000})
		Expect(errors.Is(err, logistic.ErrInvalidState)).To(BeTrue())
		Expect(res.Converged).To(BeFalse())
	})

	It("returns staircase endpoints", func() {
		res, _ := logistic.Converge(2.707, 0.1, logistic.Options{})
		from, to := res.Trajectory.Steps()
		Expect(from).To(HaveLen(len(res.Trajectory) - 1))
		Expect(to).To(HaveLen(len(res.Trajectory) - 1))
		Expect(to[0]).To(Equal(logistic.Step(2.707, from[0])))
	})
})

var _ = Describe("Cycle", func() {
	It("keeps the seed pair when it already agrees", func() {
		rec := logistic.Cycle(2, 0.5, logistic.Options{})
		Expect(rec.Tail).To(Equal([]float64{0.5, 0.5}))
		Expect(rec.Truncated).To(BeFalse())
	})

	It("lands on the analytic 2-cycle", func() {
		a := 3.2
		root := math.Sqrt((a + 1) * (a - 3))
		hi := (a + 1 + root) / (2 * a)
		lo := (a + 1 - root) / (2 * a)

		rec := logistic.Cycle(a, 0.6, logistic.Options{Tolerance: 1e-6})
		Expect(rec.Truncated).To(BeFalse())
		Expect(rec.Tail).NotTo(BeEmpty())
		for _, x := range rec.Tail {
			Expect(math.Min(math.Abs(x-hi), math.Abs(x-lo))).To(BeNumerically("<", 1e-4))
		}
	})

	It("flags records that hit the cap", func() {
		rec := logistic.Cycle(3.9, 0.6, logistic.Options{Tolerance: 1e-15, MaxIterations: 50})
		Expect(rec.Truncated).To(BeTrue())
		Expect(rec.Tail).To(HaveLen(51))
	})

	DescribeTable("reproduces reference tails from x0=0.6",
		func(a float64, iterations int, tail []float64) {
			rec := logistic.Cycle(a, 0.6, logistic.Options{Tolerance: 1e-6})
			Expect(rec.Truncated).To(BeFalse())
			Expect(rec.Iterations).To(Equal(iterations))
			Expect(rec.Tail).To(HaveLen(len(tail)))
			for i, x := range tail {
				Expect(rec.Tail[i]).To(BeNumerically("~", x, 1e-12), "tail[%d]", i)
			}
		},
		Entry("fixed point", 2.6, 20, []float64{0.6153831255393291, 0.6153855092860161}),
		Entry("period 2", 3.2, 17, []float64{0.7994547238484313, 0.5130459787675512}),
		Entry("period 4", 3.5, 19, []float64{
			0.8749977492708975, 0.3828184081461639, 0.8269396608571035, 0.5008866035552476,
		}),
		Entry("period-3 window", 3.83, 113, []float64{
			0.9574156938677167, 0.15615248190346337, 0.5046748268646029,
		}),
	)

	It("starts a chaotic tail at the earliest recurrence", func() {
		rec := logistic.Cycle(3.9, 0.6, logistic.Options{Tolerance: 1e-6})
		Expect(rec.Iterations).To(Equal(624))
		Expect(rec.Tail).To(HaveLen(203))
		Expect(rec.Tail[0]).To(BeNumerically("~", 0.9749993279327795, 1e-12))
		Expect(rec.Tail[len(rec.Tail)-1]).To(BeNumerically("~", 0.5003344012042272, 1e-12))
	})
})

var _ = Describe("Scan", func() {
	ctx := context.Background()
	opts := logistic.Options{Tolerance: 1e-6, MaxIterations: 5000}

	It("yields one record for one parameter", func() {
		m, err := logistic.Scan(ctx, []float64{2.6}, 0.6, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(HaveLen(1))
		Expect(m[0].A).To(Equal(2.6))
		for _, x := range m[0].Tail {
			Expect(x).To(BeNumerically(">=", 0))
			Expect(x).To(BeNumerically("<=", 1))
		}
	})

	It("is deterministic", func() {
		params := logistic.Linspace(2.6, 4, 60)
		first, err := logistic.Scan(ctx, params, 0.6, opts)
		Expect(err).NotTo(HaveOccurred())
		second, err := logistic.Scan(ctx, params, 0.6, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("scatters exactly the tail points", func() {
		m, err := logistic.Scan(ctx, logistic.Linspace(2.6, 4, 40), 0.6, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(HaveLen(40))

		sum := 0
		for _, r := range m {
			sum += len(r.Tail)
		}
		Expect(m.PointCount()).To(Equal(sum))
		Expect(m.Scatter()).To(HaveLen(sum))
	})

	It("keeps scan order", func() {
		params := []float64{3.9, 2.7, 3.3}
		m, err := logistic.Scan(ctx, params, 0.6, opts)
		Expect(err).NotTo(HaveOccurred())
		for i, r := range m {
			Expect(r.A).To(Equal(params[i]))
		}
		rec, ok := m.Lookup(2.7)
		Expect(ok).To(BeTrue())
		Expect(rec.A).To(Equal(2.7))
		_, ok = m.Lookup(1.0)
		Expect(ok).To(BeFalse())
	})

	It("rejects an empty parameter list", func() {
		_, err := logistic.Scan(ctx, nil, 0.6, opts)
		Expect(err).To(MatchError(logistic.ErrEmptyParameters))
	})

	It("stops on a canceled context", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		m, err := logistic.Scan(cctx, []float64{2.6, 3.0}, 0.6, opts)
		Expect(errors.Is(err, logistic.ErrCanceled)).To(BeTrue())
		Expect(m).To(BeEmpty())
	})
})
