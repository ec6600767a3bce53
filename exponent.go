package toyrsa

import (
	"fmt"

	"github.com/mbucek/toyrsa/internal/numtheory"
)

// findExponent picks the public exponent for modulus n and totient lambda.
func findExponent(n, lambda int64, search ExponentSearch) (int64, error) {
	switch search {
	case SearchSieve:
		return sieveExponent(n, lambda)
	case SearchDescending:
		return descendingExponent(n, lambda)
	default:
		return 0, fmt.Errorf("%w: unknown exponent search %q", ErrInvalidOption, search)
	}
}

// sieveExponent intersects the primes up to n with the primes up to lambda,
// keeps those coprime to both and returns the last one.
func sieveExponent(n, lambda int64) (int64, error) {
	lambdaPrimes := make(map[int64]struct{})
	for _, p := range numtheory.Sieve(lambda) {
		lambdaPrimes[p] = struct{}{}
	}

	var candidates []int64
	for _, p := range numtheory.Sieve(n) {
		if _, ok := lambdaPrimes[p]; !ok {
			continue
		}
		if numtheory.AreCoprime(p, n) && numtheory.AreCoprime(p, lambda) {
			candidates = append(candidates, p)
		}
	}

	if len(candidates) == 0 {
		return 0, noExponentError(n, lambda)
	}
	return candidates[len(candidates)-1], nil
}

// descendingExponent returns the first coprime prime found walking down from
// min(n, lambda).
func descendingExponent(n, lambda int64) (int64, error) {
	for c := min(n, lambda); c >= 2; c-- {
		if numtheory.IsPrime(c) && numtheory.AreCoprime(c, n) && numtheory.AreCoprime(c, lambda) {
			return c, nil
		}
	}
	return 0, noExponentError(n, lambda)
}

func noExponentError(n, lambda int64) error {
	return fmt.Errorf("%w: no prime up to %d is coprime to n=%d and λ=%d",
		ErrNoValidExponent, min(n, lambda), n, lambda)
}
