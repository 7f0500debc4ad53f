package core

// Rand is the random source used by move generation, mutation and the turn
// loop. *math/rand.Rand satisfies it; tests can script the draws.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// Intn returns a value in [0, n)
	Intn(n int) int
}
