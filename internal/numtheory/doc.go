// Package numtheory provides the integer arithmetic behind textbook RSA key
// derivation: greatest common divisor, least common multiple, coprimality,
// Carmichael's totient for a product of two primes, modular inverses and a
// Sieve of Eratosthenes.
//
// Every function is pure and operates on int64. Inputs are expected to be
// non-negative; results for negative inputs are not part of the contract.
//
// # Overflow
//
// [LCM] divides before it multiplies, so it only overflows when the true
// result does not fit in an int64. [ModInverse] keeps its Bézout
// coefficients bounded by the modulus and never overflows for m < 2⁶².
package numtheory
