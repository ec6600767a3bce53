package toyrsa

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrInvalidSeed", ErrInvalidSeed},
		{"ErrNoValidExponent", ErrNoValidExponent},
		{"ErrInverseUndefined", ErrInverseUndefined},
		{"ErrInvalidOption", ErrInvalidOption},
	}

	for _, s := range sentinels {
		t.Run(s.name, func(t *testing.T) {
			assert.Error(t, s.err)
			assert.NotEmpty(t, s.err.Error())
		})
	}
}

func TestDerivationError_Error(t *testing.T) {
	err := &DerivationError{P: 2, Q: 3, Err: ErrNoValidExponent}
	assert.Equal(t, "derive keys (p=2, q=3): no valid public exponent", err.Error())
}

func TestDerivationError_Unwrap(t *testing.T) {
	err := derivationErrorf(4, 4, ErrInvalidSeed, "seeds must be distinct")

	var derr *DerivationError
	assert.True(t, errors.As(err, &derr))
	assert.Equal(t, int64(4), derr.P)
	assert.Equal(t, int64(4), derr.Q)
	assert.ErrorIs(t, err, ErrInvalidSeed)
	assert.NotErrorIs(t, err, ErrNoValidExponent)
	assert.Contains(t, err.Error(), "seeds must be distinct")
}

func TestDerivationError_WrappedByCaller(t *testing.T) {
	err := fmt.Errorf("setup: %w", &DerivationError{P: 5, Q: 7, Err: ErrInverseUndefined})
	assert.ErrorIs(t, err, ErrInverseUndefined)
}
