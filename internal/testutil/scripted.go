package testutil

// ScriptedRand replays fixed draws so tests can steer mutation and sampling.
// Once a queue runs dry Float64 returns 0.999 (misses every chance below 1)
// and Intn returns 0.
type ScriptedRand struct {
	Floats []float64
	Ints   []int

	FloatCalls int
	IntCalls   int
}

// NewScriptedRand creates a scripted source from the given draws
func NewScriptedRand(floats []float64, ints []int) *ScriptedRand {
	return &ScriptedRand{Floats: floats, Ints: ints}
}

func (s *ScriptedRand) Float64() float64 {
	s.FloatCalls++
	if len(s.Floats) == 0 {
		return 0.999
	}
	f := s.Floats[0]
	s.Floats = s.Floats[1:]
	return f
}

func (s *ScriptedRand) Intn(n int) int {
	s.IntCalls++
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return v % n
}
