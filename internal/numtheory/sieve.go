package numtheory

import "math/big"

// Sieve returns every prime p with 2 ≤ p ≤ limit in ascending order using the
// Sieve of Eratosthenes. The result is nil when limit < 2.
//
// Memory use is one byte per integer up to limit.
func Sieve(limit int64) []int64 {
	if limit < 2 {
		return nil
	}

	composite := make([]bool, limit+1)
	for p := int64(2); p*p <= limit; p++ {
		if composite[p] {
			continue
		}
		for i := p * p; i <= limit; i += p {
			composite[i] = true
		}
	}

	var primes []int64
	for i := int64(2); i <= limit; i++ {
		if !composite[i] {
			primes = append(primes, i)
		}
	}
	return primes
}

// IsPrime reports whether v is prime. ProbablyPrime(0) is exact for inputs
// below 2⁶⁴, so the answer is exact for every int64.
func IsPrime(v int64) bool {
	if v < 2 {
		return false
	}
	return big.NewInt(v).ProbablyPrime(0)
}
