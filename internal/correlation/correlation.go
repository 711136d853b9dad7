// Package correlation estimates the two-point correlation function of a
// particle group: how much the pair-separation histogram deviates from
// what a uniform Poisson distribution in the same periodic unit box
// would give.
package correlation

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"cosmopm/internal/physics"
)

// DefaultBins is the bin count used when a caller has no preference.
const DefaultBins = 101

// Result holds a binned correlation estimate. Values[b] is the estimator
// evaluated at the bin spanning [Edges[b], Edges[b+1]).
type Result struct {
	Edges  []float64 // len(Edges) == len(Values)+1
	Values []float64
}

// Estimate computes the two-point correlation function for g, using bins
// equally spaced histogram bins over [0, rMax) in dimensionless unit-box
// coordinates, where rMax is the unit cube's minimum-image diagonal
// half-length, sqrt(3)/2.
func Estimate(g *physics.Group, bins int) Result {
	return estimate(g, bins, 0)
}

// ParallelEstimate is the concurrent counterpart of Estimate. The O(N^2)
// pair loop is split across workers by outer index, each accumulating
// into its own bin array; the per-worker histograms are summed once all
// workers finish.
func ParallelEstimate(g *physics.Group, bins, workers int) Result {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return estimate(g, bins, workers)
}

func estimate(g *physics.Group, bins, workers int) Result {
	if bins <= 0 {
		bins = DefaultBins
	}

	n := g.N()
	rMax := math.Sqrt(3) / 2
	edges := make([]float64, bins+1)
	step := rMax / float64(bins)
	for b := range edges {
		edges[b] = step * float64(b)
	}

	dd := make([]float64, bins)
	if n >= 2 {
		if workers <= 1 {
			accumulate(g, rMax, 0, n, dd)
		} else {
			if workers > n {
				workers = n
			}
			chunkSize := (n + workers - 1) / workers
			partials := make([][]float64, workers)

			var wg sync.WaitGroup
			for wk := 0; wk < workers; wk++ {
				lo := wk * chunkSize
				hi := lo + chunkSize
				if hi > n {
					hi = n
				}
				if lo >= hi {
					continue
				}
				partials[wk] = make([]float64, bins)

				wg.Add(1)
				go func(lo, hi int, local []float64) {
					defer wg.Done()
					accumulate(g, rMax, lo, hi, local)
				}(lo, hi, partials[wk])
			}
			wg.Wait()

			for _, local := range partials {
				if local == nil {
					continue
				}
				floats.Add(dd, local)
			}
		}
	}

	values := make([]float64, bins)
	if n < 2 {
		// A single particle has no pairs (DD = 0 everywhere), so every bin
		// reports -1; an empty group reports 0 in every bin.
		if n == 1 {
			for b := range values {
				values[b] = -1
			}
		}
		return Result{Edges: edges, Values: values}
	}

	nPairs := float64(n) * float64(n-1) / 2
	for b := 0; b < bins; b++ {
		shellVolume := (4.0 / 3.0) * math.Pi * (cube(edges[b+1]) - cube(edges[b]))
		nRand := nPairs * shellVolume
		if nRand == 0 {
			values[b] = 0
			continue
		}
		values[b] = dd[b]/nRand - 1
	}

	return Result{Edges: edges, Values: values}
}

// accumulate adds, into bins, the pair counts for every unordered pair
// (a, b) with a in [lo, hi) and b > a. Splitting the outer index across
// workers this way keeps each pair counted exactly once regardless of how
// the range [0, n) is partitioned.
func accumulate(g *physics.Group, rMax float64, lo, hi int, bins []float64) {
	n := g.N()
	nBins := len(bins)
	step := rMax / float64(nBins)

	for a := lo; a < hi; a++ {
		pa := g.Particles[a].Position
		for b := a + 1; b < n; b++ {
			pb := g.Particles[b].Position
			r := minImageDistance(pa, pb)
			if r >= rMax {
				continue
			}
			bin := int(r / step)
			if bin >= nBins {
				bin = nBins - 1
			}
			bins[bin]++
		}
	}
}

// minImageDistance returns the periodic minimum-image separation between
// two unit-box positions, in dimensionless unit-box coordinates.
func minImageDistance(a, b physics.Vec3) float64 {
	dx := minImageComponent(a.X - b.X)
	dy := minImageComponent(a.Y - b.Y)
	dz := minImageComponent(a.Z - b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func minImageComponent(d float64) float64 {
	d -= math.Round(d)
	return d
}

func cube(x float64) float64 { return x * x * x }
