package plan

import (
	"math"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/geo"
)

const (
	coarseSteps  = 7200
	refineIters  = 40
	earlyOutDist = 1e-3
)

// SolveRotationAngle finds the rotation about pivot that brings the infinite
// line through edgeA-edgeB closest to the target point. The full turn is
// scanned on a coarse grid, then the bracketing interval is refined by
// ternary search; the unimodal refinement converges to within 1e-6 rad of
// the local minimizer selected by the scan.
func SolveRotationAngle(edgeA, edgeB, pivot, target geo.Point2D) float64 {
	step := 2 * math.Pi / coarseSteps

	distAt := func(angle float64) float64 {
		ra := edgeA.RotateAround(pivot, angle)
		rb := edgeB.RotateAround(pivot, angle)
		return geo.PointLineDistance(target, ra, rb)
	}

	best := 0.0
	bestDist := math.Inf(1)
	for k := 1; k <= coarseSteps; k++ {
		angle := float64(k) * step
		dist := distAt(angle)
		if dist < bestDist {
			bestDist = dist
			best = angle
		}
		if dist <= earlyOutDist {
			best = angle
			break
		}
	}

	lo := math.Max(0, best-step)
	hi := best + step
	for i := 0; i < refineIters; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if distAt(m1) <= distAt(m2) {
			hi = m2
		} else {
			lo = m1
		}
	}
	return (lo + hi) / 2
}
