// Package toyrsa implements textbook RSA over machine integers, for teaching.
//
// A key pair is derived deterministically from two prime seeds. Values are
// encrypted with plain modular exponentiation and text is encrypted one
// Unicode code point at a time:
//
//	keys, err := toyrsa.DeriveKeys(61, 53)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c := toyrsa.EncryptValue(keys.Public, 65)   // 2418
//	m := toyrsa.DecryptValue(keys.Private, c)  // 65
//
//	units := toyrsa.EncryptText(keys.Public, "Hi")
//	fmt.Println(toyrsa.DecryptText(keys.Private, units))
//
// # Not a cryptosystem
//
// There is no padding, no randomness and no chaining: equal plaintext units
// always produce equal ciphertext units, and the modulus is small enough to
// factor by hand. Values at or above the modulus wrap silently. Use
// crypto/rsa for anything real.
//
// # Key derivation
//
// With n = p·q and λ = lcm(p−1, q−1), the public exponent is the largest
// prime not exceeding λ that is coprime to both n and λ, and the private
// exponent is its inverse modulo λ (plus λ when the two would be equal). For
// p = 61 and q = 53 this gives n = 3233, e = 773 and d = 557.
//
// All functions are pure and safe for concurrent use.
package toyrsa
