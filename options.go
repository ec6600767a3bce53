package toyrsa

// ExponentSearch selects how DeriveKeys looks for the public exponent.
// Every strategy picks the same value: the largest prime not exceeding the
// totient that is coprime to both the modulus and the totient.
type ExponentSearch string

const (
	// SearchSieve sieves the primes up to the modulus and up to the totient,
	// intersects them and keeps the last coprime candidate. It is the
	// historical algorithm and the default.
	SearchSieve ExponentSearch = "sieve"
	// SearchDescending walks down from the totient and stops at the first
	// coprime prime. It needs no sieve and so has no modulus ceiling.
	SearchDescending ExponentSearch = "descending"
)

// MaxSieveModulus is the largest modulus SearchSieve accepts, the 32-bit
// signed range. Larger moduli need SearchDescending. The limit only keeps
// the sieve addressable: near it SearchSieve still allocates a bool per
// integer up to n (about 2 GB) plus the prime lists, so prefer
// SearchDescending for anything but small moduli.
const MaxSieveModulus = 1<<31 - 1

// deriveConfig holds configuration for key derivation.
type deriveConfig struct {
	search         ExponentSearch
	checkPrimality bool
}

func defaultDeriveConfig() deriveConfig {
	return deriveConfig{
		search:         SearchSieve,
		checkPrimality: true,
	}
}

// DeriveOption configures DeriveKeys.
type DeriveOption func(*deriveConfig)

// WithExponentSearch sets the public exponent search strategy.
func WithExponentSearch(s ExponentSearch) DeriveOption {
	return func(c *deriveConfig) {
		c.search = s
	}
}

// WithoutPrimalityCheck skips the primality test on the seeds. Composite
// seeds then yield a key pair that does not round-trip, exactly as the
// unchecked textbook procedure would.
func WithoutPrimalityCheck() DeriveOption {
	return func(c *deriveConfig) {
		c.checkPrimality = false
	}
}

// ParseExponentSearch converts a strategy name into an ExponentSearch.
func ParseExponentSearch(name string) (ExponentSearch, bool) {
	switch s := ExponentSearch(name); s {
	case SearchSieve, SearchDescending:
		return s, true
	}
	return "", false
}
