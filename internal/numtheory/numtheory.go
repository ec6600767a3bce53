package numtheory

// GCD returns the greatest common divisor of a and b using the iterative
// Euclidean algorithm. GCD(a, 0) is a.
func GCD(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple |a·b| / gcd(a, b).
// It returns 0 when either argument is 0.
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	l := a / GCD(a, b) * b
	if l < 0 {
		return -l
	}
	return l
}

// AreCoprime reports whether a and b share no factor other than 1.
func AreCoprime(a, b int64) bool {
	return GCD(a, b) == 1
}

// CarmichaelTotient returns λ(p·q) = lcm(p−1, q−1) for distinct primes p and q.
func CarmichaelTotient(p, q int64) int64 {
	return LCM(p-1, q-1)
}

// ModInverse returns the x in [0, m) with a·x ≡ 1 (mod m).
// ok is false when no such x exists, i.e. gcd(a, m) ≠ 1 or m < 1.
func ModInverse(a, m int64) (x int64, ok bool) {
	if m < 1 {
		return 0, false
	}
	a %= m
	if a < 0 {
		a += m
	}

	// Extended Euclid tracking only the coefficient of a.
	oldR, r := a, m
	oldS, s := int64(1), int64(0)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
	}
	if oldR != 1 {
		return 0, false
	}

	x = oldS % m
	if x < 0 {
		x += m
	}
	return x, true
}
