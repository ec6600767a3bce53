package toyrsa

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbucek/toyrsa/internal/numtheory"
)

func TestDeriveKeys_Textbook(t *testing.T) {
	kp, err := DeriveKeys(61, 53)
	require.NoError(t, err)

	assert.Equal(t, PublicKey{N: 3233, E: 773}, kp.Public)
	assert.Equal(t, PrivateKey{N: 3233, D: 557}, kp.Private)
}

func TestDeriveKeys_Deterministic(t *testing.T) {
	first, err := DeriveKeys(61, 53)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := DeriveKeys(61, 53)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDeriveKeys_SeedOrderIrrelevant(t *testing.T) {
	a, err := DeriveKeys(61, 53)
	require.NoError(t, err)
	b, err := DeriveKeys(53, 61)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDeriveKeys_KnownPairs(t *testing.T) {
	tests := []struct {
		p, q    int64
		n, e, d int64
	}{
		{61, 53, 3233, 773, 557},
		{11, 13, 143, 59, 119},
		{17, 19, 323, 139, 115},
		{7, 11, 77, 29, 59},
		{101, 103, 10403, 5099, 10199},
	}

	for _, tt := range tests {
		kp, err := DeriveKeys(tt.p, tt.q)
		require.NoError(t, err, "DeriveKeys(%d, %d)", tt.p, tt.q)
		assert.Equal(t, tt.n, kp.Public.N, "n for (%d, %d)", tt.p, tt.q)
		assert.Equal(t, tt.e, kp.Public.E, "e for (%d, %d)", tt.p, tt.q)
		assert.Equal(t, tt.d, kp.Private.D, "d for (%d, %d)", tt.p, tt.q)
		assert.Equal(t, kp.Public.N, kp.Private.N)
	}
}

func TestDeriveKeys_DistinctExponentAdjustment(t *testing.T) {
	// For these seeds e = λ−1, which is its own inverse modulo λ.
	tests := []struct {
		p, q   int64
		lambda int64
		e, d   int64
	}{
		{5, 7, 12, 11, 23},
		{3, 7, 6, 5, 11},
		{2, 5, 4, 3, 7},
	}

	for _, tt := range tests {
		kp, err := DeriveKeys(tt.p, tt.q)
		require.NoError(t, err)
		assert.Equal(t, tt.e, kp.Public.E)
		assert.Equal(t, tt.d, kp.Private.D)
		assert.NotEqual(t, kp.Public.E, kp.Private.D)
		assert.Equal(t, int64(1), kp.Public.E*kp.Private.D%tt.lambda)
	}
}

func TestDeriveKeys_ExponentInvariants(t *testing.T) {
	primes := numtheory.Sieve(90)
	for i, p := range primes {
		for _, q := range primes[i+1:] {
			kp, err := DeriveKeys(p, q)
			if errors.Is(err, ErrNoValidExponent) {
				continue
			}
			require.NoError(t, err, "DeriveKeys(%d, %d)", p, q)

			n := p * q
			lambda := numtheory.CarmichaelTotient(p, q)
			e, d := kp.Public.E, kp.Private.D

			assert.True(t, numtheory.IsPrime(e), "e=%d not prime", e)
			assert.LessOrEqual(t, e, lambda)
			assert.True(t, numtheory.AreCoprime(e, n))
			assert.True(t, numtheory.AreCoprime(e, lambda))
			assert.Equal(t, int64(1), e*d%lambda, "e·d mod λ for (%d, %d)", p, q)
			assert.NotEqual(t, e, d)

			// No larger qualifying prime exists.
			for c := e + 1; c <= lambda; c++ {
				if numtheory.IsPrime(c) && numtheory.AreCoprime(c, n) && numtheory.AreCoprime(c, lambda) {
					t.Fatalf("(%d, %d): e=%d but %d also qualifies", p, q, e, c)
				}
			}
		}
	}
}

func TestDeriveKeys_NoValidExponent(t *testing.T) {
	tests := []struct{ p, q int64 }{
		{2, 3},
		{3, 5},
	}

	for _, tt := range tests {
		for _, search := range []ExponentSearch{SearchSieve, SearchDescending} {
			kp, err := DeriveKeys(tt.p, tt.q, WithExponentSearch(search))
			assert.Nil(t, kp)
			assert.ErrorIs(t, err, ErrNoValidExponent, "(%d, %d) with %s", tt.p, tt.q, search)

			var derr *DerivationError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.p, derr.P)
			assert.Equal(t, tt.q, derr.Q)
		}
	}
}

func TestDeriveKeys_InvalidSeeds(t *testing.T) {
	tests := []struct {
		name    string
		p, q    int64
		message string
	}{
		{"equal seeds", 61, 61, "distinct"},
		{"zero", 0, 53, "greater than 1"},
		{"one", 61, 1, "greater than 1"},
		{"negative", -61, 53, "greater than 1"},
		{"composite p", 4, 53, "4 is not prime"},
		{"composite q", 61, 6, "6 is not prime"},
		{"both composite", 4, 6, "not prime"},
		{"sieve ceiling", 46349, 46351, "exceeds sieve limit"},
		{"int64 overflow", 4294967311, 4294967357, "overflows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp, err := DeriveKeys(tt.p, tt.q)
			assert.Nil(t, kp)
			assert.ErrorIs(t, err, ErrInvalidSeed)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestDeriveKeys_WithoutPrimalityCheck(t *testing.T) {
	kp, err := DeriveKeys(4, 6, WithoutPrimalityCheck())
	require.NoError(t, err)

	assert.Equal(t, PublicKey{N: 24, E: 13}, kp.Public)
	assert.Equal(t, PrivateKey{N: 24, D: 7}, kp.Private)

	// Composite seeds do not give a working key: 2 does not round trip.
	assert.NotEqual(t, int64(2), DecryptValue(kp.Private, EncryptValue(kp.Public, 2)))

	// Distinctness is still enforced.
	_, err = DeriveKeys(4, 4, WithoutPrimalityCheck())
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestDeriveKeys_SearchStrategiesAgree(t *testing.T) {
	primes := numtheory.Sieve(120)
	for i, p := range primes {
		for _, q := range primes[i+1:] {
			sieve, sieveErr := DeriveKeys(p, q, WithExponentSearch(SearchSieve))
			desc, descErr := DeriveKeys(p, q, WithExponentSearch(SearchDescending))

			if sieveErr != nil {
				assert.ErrorIs(t, descErr, ErrNoValidExponent, "(%d, %d)", p, q)
				assert.ErrorIs(t, sieveErr, ErrNoValidExponent, "(%d, %d)", p, q)
				continue
			}
			require.NoError(t, descErr)
			assert.Equal(t, sieve, desc, "(%d, %d)", p, q)
		}
	}
}

func TestDeriveKeys_DescendingBeyondSieveLimit(t *testing.T) {
	kp, err := DeriveKeys(46349, 46351, WithExponentSearch(SearchDescending))
	require.NoError(t, err)

	assert.Greater(t, kp.Public.N, int64(MaxSieveModulus))
	for _, m := range []int64{0, 1, 2, 65, 0x1F600, kp.Public.N - 1} {
		assert.Equal(t, m, DecryptValue(kp.Private, EncryptValue(kp.Public, m)))
	}
}

func TestDeriveKeys_UnknownSearch(t *testing.T) {
	_, err := DeriveKeys(61, 53, WithExponentSearch("random"))
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestDeriveKeys_Concurrent(t *testing.T) {
	want, err := DeriveKeys(61, 53)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*KeyPair, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kp, err := DeriveKeys(61, 53)
			if err == nil {
				results[i] = kp
			}
		}(i)
	}
	wg.Wait()

	for _, kp := range results {
		assert.Equal(t, want, kp)
	}
}

func TestPublicKey_Fingerprint(t *testing.T) {
	a := PublicKey{N: 3233, E: 773}
	b := PublicKey{N: 3233, E: 17}

	fp := a.Fingerprint()
	assert.Len(t, fp, 22) // 16 bytes, unpadded base64url
	assert.Equal(t, fp, a.Fingerprint())
	assert.NotEqual(t, fp, b.Fingerprint())
	assert.NotContains(t, fp, "=")
	assert.NotContains(t, fp, "+")
	assert.NotContains(t, fp, "/")
}

func TestKeyStrings(t *testing.T) {
	kp, err := DeriveKeys(61, 53)
	require.NoError(t, err)

	assert.Equal(t, "PublicKey[n=3233, e=773]", kp.Public.String())
	assert.Equal(t, "PrivateKey[n=3233, d=REDACTED]", kp.Private.String())

	s := kp.String()
	assert.True(t, strings.HasPrefix(s, "KeyPair["))
	assert.NotContains(t, s, "557")
}

func BenchmarkDeriveKeys_Sieve(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := DeriveKeys(61, 53); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDeriveKeys_Descending(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := DeriveKeys(61, 53, WithExponentSearch(SearchDescending)); err != nil {
			b.Fatal(err)
		}
	}
}
