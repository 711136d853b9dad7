package physics

import (
	"math/rand"
)

// NewGroup creates a group of n particles with the given shared mass,
// positions drawn uniformly at random in the unit box [0,1)^3, and
// velocities starting at zero. The draw uses a dedicated random source
// seeded deterministically so that two groups built from the same seed
// and n reproduce identical positions, independent of any other source
// of randomness (e.g. the global math/rand source) in the process.
func NewGroup(n int, mass float64, seed int64) *Group {
	src := rand.New(rand.NewSource(seed))
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = Particle{
			Position: NewVec3(src.Float64(), src.Float64(), src.Float64()),
			Velocity: Vec3{},
		}
	}
	return &Group{Particles: particles, Mass: mass}
}
