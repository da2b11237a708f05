package policy

import (
	"github.com/sli3en/pwgen/internal/drbg"
	"github.com/sli3en/pwgen/internal/sampler"
)

// GenerateCandidate builds the length-L password of spec.md §4.7 steps 1-5
// from the policy's alphabet and the two derivation keys:
//  1. shuffle the alphabet under a DRBG keyed by kperm,
//  2. stream bytes from a DRBG keyed by kpwd, accepting only unbiased bytes
//     (rejection threshold T = floor(256/M)*M) to index into the shuffled
//     alphabet until L characters are collected,
//  3. shuffle the collected characters again, reusing kpwd (intentional,
//     per spec.md §4.7 step 4 — not a bug).
func (p Policy) GenerateCandidate(kpwd, kperm [32]byte) (string, error) {
	alphabet, err := p.Alphabet()
	if err != nil {
		return "", err
	}
	m := len(alphabet)

	shuffled := append([]rune(nil), alphabet...)
	if err := sampler.FisherYates(shuffled, drbg.New(kperm)); err != nil {
		return "", err
	}

	threshold := byte((256 / m) * m)
	stream := drbg.New(kpwd)
	out := make([]rune, 0, p.Length)
	var b [1]byte
	for len(out) < p.Length {
		if _, err := stream.Read(b[:]); err != nil {
			return "", err
		}
		if threshold == 0 || b[0] < threshold {
			out = append(out, shuffled[int(b[0])%m])
		}
	}

	if err := sampler.FisherYates(out, drbg.New(kpwd)); err != nil {
		return "", err
	}
	return string(out), nil
}
