package physics

import "cosmopm/internal/compute"

// Expand rescales the box width by the expansion factor a and damps
// every particle's velocity by the same factor to preserve comoving
// momentum. Positions are unit-box and are left unchanged. a < 1
// (a contracting box) is permitted; callers are expected to have already
// warned about it at construction time.
func Expand(g *Group, w float64, a float64) float64 {
	expandRange(g, a, 0, g.N())
	return w * a
}

// ParallelExpand is the concurrent counterpart of Expand: each
// particle's velocity is damped independently of every other particle.
func ParallelExpand(g *Group, w float64, a float64, workers int) float64 {
	compute.ForEachChunk(g.N(), workers, func(lo, hi int) {
		expandRange(g, a, lo, hi)
	})
	return w * a
}

func expandRange(g *Group, a float64, lo, hi int) {
	inv := 1.0 / a
	for p := lo; p < hi; p++ {
		g.Particles[p].Velocity = g.Particles[p].Velocity.Scale(inv)
	}
}
