// Package randutil derives reproducible random sources from a single seed.
package randutil

import (
	rand "math/rand/v2"
	"time"

	"github.com/coder/quartz"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand whose sequence is fully determined by seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// Derive returns an independent stream for the given label so that the dice
// and the random strategy of the same game never share state.
func Derive(seed int64, stream uint64) *rand.Rand {
	return New(int64(splitmix(uint64(seed) ^ (stream * goldenRatio64))))
}

// SeedFromClock picks a seed when the caller did not supply one.
func SeedFromClock(clock quartz.Clock) int64 {
	if clock == nil {
		return time.Now().UnixNano()
	}
	return clock.Now().UnixNano()
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
