package toyrsa

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math/bits"

	"golang.org/x/crypto/blake2b"

	"github.com/mbucek/toyrsa/internal/numtheory"
)

// PublicKey is the distributable half of a key pair: c = mᴱ mod N.
type PublicKey struct {
	N int64 `json:"n" yaml:"n"`
	E int64 `json:"e" yaml:"e"`
}

// PrivateKey is the secret half of a key pair: m = cᴰ mod N.
type PrivateKey struct {
	N int64 `json:"n" yaml:"n"`
	D int64 `json:"d" yaml:"d"`
}

// KeyPair is the result of DeriveKeys. Both keys share the same modulus.
type KeyPair struct {
	Public  PublicKey  `json:"public" yaml:"public"`
	Private PrivateKey `json:"private" yaml:"private"`
}

// fingerprintSize is the BLAKE2b digest length used by Fingerprint, in bytes.
const fingerprintSize = 16

func (k PublicKey) String() string {
	return fmt.Sprintf("PublicKey[n=%d, e=%d]", k.N, k.E)
}

// Fingerprint returns a short identifier for the key: the URL-safe base64
// encoding of a 128-bit BLAKE2b digest over the big-endian N and E.
func (k PublicKey) Fingerprint() string {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(k.N))
	binary.BigEndian.PutUint64(buf[8:], uint64(k.E))

	// New only fails for an out-of-range size or an oversized key.
	h, _ := blake2b.New(fingerprintSize, nil)
	h.Write(buf[:])
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// String never includes D.
func (k PrivateKey) String() string {
	return fmt.Sprintf("PrivateKey[n=%d, d=REDACTED]", k.N)
}

func (kp KeyPair) String() string {
	return fmt.Sprintf("KeyPair[%s, %s]", kp.Public, kp.Private)
}

// DeriveKeys derives a textbook RSA key pair from the prime seeds p and q.
//
// The modulus is n = p·q and the totient is Carmichael's λ(n) = lcm(p−1, q−1).
// The public exponent e is the largest prime ≤ min(n, λ) coprime to both n and
// λ; the private exponent d is the inverse of e modulo λ, shifted by λ when it
// would otherwise equal e.
//
// Seeds must be distinct primes greater than one. Failures are returned as
// *DerivationError wrapping ErrInvalidSeed, ErrNoValidExponent or
// ErrInverseUndefined.
func DeriveKeys(p, q int64, opts ...DeriveOption) (*KeyPair, error) {
	cfg := defaultDeriveConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	n, err := validateSeeds(p, q, cfg)
	if err != nil {
		return nil, err
	}

	lambda := numtheory.CarmichaelTotient(p, q)

	e, err := findExponent(n, lambda, cfg.search)
	if err != nil {
		return nil, &DerivationError{P: p, Q: q, Err: err}
	}

	d, ok := numtheory.ModInverse(e, lambda)
	if !ok {
		return nil, derivationErrorf(p, q, ErrInverseUndefined, "e=%d, λ=%d", e, lambda)
	}
	if d == e {
		d += lambda
	}

	return &KeyPair{
		Public:  PublicKey{N: n, E: e},
		Private: PrivateKey{N: n, D: d},
	}, nil
}

// validateSeeds checks p and q and returns their product.
func validateSeeds(p, q int64, cfg deriveConfig) (int64, error) {
	if p < 2 || q < 2 {
		return 0, derivationErrorf(p, q, ErrInvalidSeed, "seeds must be greater than 1")
	}
	if p == q {
		return 0, derivationErrorf(p, q, ErrInvalidSeed, "seeds must be distinct")
	}
	if cfg.checkPrimality {
		for _, s := range []int64{p, q} {
			if !numtheory.IsPrime(s) {
				return 0, derivationErrorf(p, q, ErrInvalidSeed, "%d is not prime", s)
			}
		}
	}

	hi, lo := bits.Mul64(uint64(p), uint64(q))
	if hi != 0 || lo > 1<<63-1 {
		return 0, derivationErrorf(p, q, ErrInvalidSeed, "modulus overflows int64")
	}
	n := int64(lo)

	if cfg.search == SearchSieve && n > MaxSieveModulus {
		return 0, derivationErrorf(p, q, ErrInvalidSeed,
			"modulus %d exceeds sieve limit %d, use %s search", n, MaxSieveModulus, SearchDescending)
	}
	return n, nil
}
