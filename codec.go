package toyrsa

import (
	"math/big"
	"unicode/utf8"
)

// EncryptValue returns c = mᴱ mod N.
//
// m is not range checked. Values outside [0, N) are reduced modulo N first,
// so m and m+N encrypt identically and cannot be told apart on decryption.
func EncryptValue(key PublicKey, m int64) int64 {
	return modPow(m, key.E, key.N)
}

// DecryptValue returns m = cᴰ mod N. The result is always in [0, N).
func DecryptValue(key PrivateKey, c int64) int64 {
	return modPow(c, key.D, key.N)
}

// EncryptText encrypts text one Unicode code point at a time. The result has
// one unit per rune, in order. There is no padding and no chaining, so equal
// runes always produce equal units.
//
// Only runes with a code point below N survive a round trip; larger code
// points wrap as described for EncryptValue.
func EncryptText(key PublicKey, text string) []int64 {
	out := make([]int64, 0, len(text))
	for _, r := range text {
		out = append(out, EncryptValue(key, int64(r)))
	}
	return out
}

// DecryptText decrypts each unit with DecryptValue and reassembles the runes
// in order. Decrypted values that are not valid code points become
// utf8.RuneError.
func DecryptText(key PrivateKey, data []int64) string {
	runes := make([]rune, len(data))
	for i, c := range data {
		runes[i] = toRune(DecryptValue(key, c))
	}
	return string(runes)
}

// modPow computes base^exp mod m with arbitrary precision and narrows only
// the reduced result. A non-positive m (a zero-value key) or a negative
// exponent yields 0.
func modPow(base, exp, m int64) int64 {
	if m < 1 || exp < 0 {
		return 0
	}
	r := new(big.Int).Exp(big.NewInt(base), big.NewInt(exp), big.NewInt(m))
	return r.Int64()
}

func toRune(v int64) rune {
	if v < 0 || v > utf8.MaxRune {
		return utf8.RuneError
	}
	return rune(v)
}
