package policy

// MaxTries is the default bound on the retry loop of spec.md §4.7.
const MaxTries = 8

// Generator produces the password candidate for a given transient counter
// value tryC (stored_c + i). It is supplied by internal/vault, which owns
// the full derivation pipeline; policy only owns the retry/accept logic.
type Generator func(tryC uint64) (string, error)

// GenerateWithRetry runs gen at storedC, storedC+1, ... up to
// storedC+MaxTries-1 (at most MaxTries attempts), accepting the first candidate that satisfies p's class
// coverage. The stored counter is never touched here; the caller reports
// usedC out of band (spec.md §4.7, §9). If no attempt satisfies the policy,
// the last candidate is returned anyway, with ok=false.
func GenerateWithRetry(p Policy, storedC uint64, gen Generator) (password string, usedC uint64, ok bool, err error) {
	for i := uint64(0); i < MaxTries; i++ {
		tryC := storedC + i
		candidate, genErr := gen(tryC)
		if genErr != nil {
			return "", 0, false, genErr
		}
		password = candidate
		usedC = tryC
		if p.SatisfiesClasses(candidate) {
			return password, usedC, true, nil
		}
	}
	return password, usedC, false, nil
}
