package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"syntax", Syntaxf("bad token %q", "}"), ErrSyntax},
		{"reference", Referencef("%s is not defined", "foo"), ErrReference},
		{"type", Typef("%s is not a function", "42"), ErrType},
		{"security", Securityf("delete is not allowed"), ErrSecurity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Error(t, tt.err)
			assert.ErrorIs(t, tt.err, tt.sentinel)

			for _, other := range []error{ErrSyntax, ErrReference, ErrType, ErrSecurity} {
				if other == tt.sentinel {
					continue
				}
				assert.NotErrorIs(t, tt.err, other)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	err := Referencef("%s is not defined", "user")
	assert.Equal(t, "reference error: user is not defined", err.Error())

	err = Securityf("'this' is not available")
	assert.Equal(t, "security error: 'this' is not available", err.Error())
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	t.Run("short text unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "a + b", Snippet("a + b"))
	})

	t.Run("long text truncated", func(t *testing.T) {
		t.Parallel()
		long := "0123456789012345678901234567890123456789EXTRA"
		got := Snippet(long)
		assert.Len(t, got, 43)
		assert.Equal(t, "0123456789012345678901234567890123456789...", got)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", Snippet(""))
	})
}

func TestWrappedErrorsUnwrap(t *testing.T) {
	t.Parallel()

	err := Typef("cannot read properties of null")
	var target error = ErrType
	assert.True(t, errors.Is(err, target))
}
