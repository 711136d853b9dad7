package physics

import (
	"math"

	"cosmopm/internal/compute"
)

// Step performs one semi-implicit Euler (kick-drift) update per particle
// using the grid cell the particle currently occupies:
//
//	v <- v - grad(phi)(cell) * dt
//	p <- p + v * dt
//	p <- p mod 1 (componentwise, preserving sign into [0,1))
func Step(g *Group, field *Field, nc int, dt float64) {
	stepRange(g, field, nc, dt, 0, g.N())
}

// ParallelStep is the concurrent counterpart of Step: each particle
// reads only its own position and the (read-only, disjointly produced)
// gradient field, and writes only its own state, so particles can be
// partitioned across workers without locking.
func ParallelStep(g *Group, field *Field, nc int, dt float64, workers int) {
	compute.ForEachChunk(g.N(), workers, func(lo, hi int) {
		stepRange(g, field, nc, dt, lo, hi)
	})
}

func stepRange(g *Group, field *Field, nc int, dt float64, lo, hi int) {
	for p := lo; p < hi; p++ {
		particle := &g.Particles[p]

		i := int(math.Floor(particle.Position.X * float64(nc)))
		j := int(math.Floor(particle.Position.Y * float64(nc)))
		k := int(math.Floor(particle.Position.Z * float64(nc)))
		accel := field.At(nc, i, j, k)

		particle.Velocity = particle.Velocity.Sub(accel.Scale(dt))
		particle.Position = particle.Position.Add(particle.Velocity.Scale(dt))
		particle.Position = wrapUnit(particle.Position)
	}
}

// wrapUnit brings each component of p back into [0,1) with one math.Mod
// and a sign correction, so arbitrarily large displacements are wrapped
// in O(1). A tiny negative remainder whose correction rounds up to 1.0 is
// mapped to 0.
func wrapUnit(p Vec3) Vec3 {
	return Vec3{X: wrapComponent(p.X), Y: wrapComponent(p.Y), Z: wrapComponent(p.Z)}
}

func wrapComponent(x float64) float64 {
	x = math.Mod(x, 1.0)
	if x < 0 {
		x += 1.0
	}
	if x >= 1.0 {
		x = 0
	}
	return x
}
