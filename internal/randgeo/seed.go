package randgeo

import (
	"encoding/binary"
	"math/rand/v2"
)

// Stream returns a ChaCha8 stream usable both as a rand.Source and as an
// io.Reader. A non-zero seed always yields the same stream; zero seeds it
// from the runtime's random source.
func Stream(seed uint64) *rand.ChaCha8 {
	var key [32]byte

	if seed == 0 {
		for i := 0; i < len(key); i += 8 {
			binary.LittleEndian.PutUint64(key[i:], rand.Uint64())
		}
		return rand.NewChaCha8(key)
	}

	pcg := rand.NewPCG(seed, ^seed)
	for i := 0; i < len(key); i += 8 {
		binary.LittleEndian.PutUint64(key[i:], pcg.Uint64())
	}

	return rand.NewChaCha8(key)
}
