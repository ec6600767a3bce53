package toyrsa

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidSeed is returned when the prime seeds are not distinct, not
	// greater than one, not prime, or produce a modulus outside the supported
	// range.
	ErrInvalidSeed = errors.New("invalid prime seed")

	// ErrNoValidExponent is returned when no prime candidate is coprime to
	// both the modulus and the totient.
	ErrNoValidExponent = errors.New("no valid public exponent")

	// ErrInverseUndefined is returned when the public exponent has no inverse
	// modulo the totient.
	ErrInverseUndefined = errors.New("modular inverse undefined")

	// ErrInvalidOption is returned when a DeriveOption carries an unsupported
	// value, such as an unknown ExponentSearch.
	ErrInvalidOption = errors.New("invalid derive option")
)

// DerivationError records the seeds of a failed key derivation.
// It unwraps to one of the sentinel errors above.
type DerivationError struct {
	P, Q int64
	Err  error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("derive keys (p=%d, q=%d): %v", e.P, e.Q, e.Err)
}

func (e *DerivationError) Unwrap() error {
	return e.Err
}

func derivationErrorf(p, q int64, sentinel error, format string, args ...any) error {
	return &DerivationError{
		P:   p,
		Q:   q,
		Err: fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}
