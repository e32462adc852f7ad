package domainerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsWrapTheirKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{"invalid argument", InvalidArgument("amount %s", "-1"), ErrInvalidArgument, "invalid argument: amount -1"},
		{"out of range", OutOfRange("weight %d g", 200000), ErrOutOfRange, "out of range: weight 200000 g"},
		{"currency", CurrencyMismatch("USD", "EUR"), ErrCurrencyMismatch, "currency mismatch: USD vs EUR"},
		{"state", InvalidState("cannot activate"), ErrInvalidState, "invalid state: cannot activate"},
		{"not found", NotFound("variant %s", "x"), ErrNotFound, "not found: variant x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.EqualError(t, tt.err, tt.msg)
		})
	}
}

func TestKindSurvivesFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("add variant: %w", InvalidState("duplicate"))
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.False(t, errors.Is(err, ErrInvalidArgument))
}
