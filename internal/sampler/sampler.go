// Package sampler implements unbiased integer sampling and shuffling over a
// byte stream, per spec.md §4.6: rejection sampling keeps the per-index
// distribution bias at or below 1/2^32, and Fisher-Yates shuffles a
// sequence using draws from that sampler.
package sampler

import (
	"encoding/binary"
	"io"
)

// UniformInclusive draws a uniformly distributed integer in [0, n] from src,
// using 32-bit rejection sampling. n must be < 2^32-1.
func UniformInclusive(src io.Reader, n uint32) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	span := uint64(n) + 1
	limit := uint64(1)<<32 - (uint64(1)<<32)%span

	var buf [4]byte
	for {
		if _, err := io.ReadFull(src, buf[:]); err != nil {
			return 0, err
		}
		v := uint64(binary.BigEndian.Uint32(buf[:]))
		if v < limit {
			return uint32(v % span), nil
		}
	}
}

// FisherYates shuffles items in place using draws from src, per spec.md
// §4.6: for i from len-1 down to 1, draw j in [0, i] and swap i and j.
func FisherYates[T any](items []T, src io.Reader) error {
	for i := len(items) - 1; i > 0; i-- {
		j, err := UniformInclusive(src, uint32(i))
		if err != nil {
			return err
		}
		items[i], items[j] = items[j], items[i]
	}
	return nil
}
