package game

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// NewRNG returns a deterministic generator for seed. A zero seed uses the clock.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return seededRNG(seed)
}

func seededRNG(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional: drills only need variety.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
