package modelid

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Canonical(t *testing.T) {
	valid := []string{
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
		New(),
	}

	for _, id := range valid {
		t.Run(id, func(t *testing.T) {
			assert.NoError(t, Validate(id))
		})
	}
}

func TestValidate_Malformed(t *testing.T) {
	malformed := []string{
		"",
		"not-a-uuid",
		"123e4567e89b12d3a456426614174000",
		"{123e4567-e89b-12d3-a456-426614174000}",
		"urn:uuid:123e4567-e89b-12d3-a456-426614174000",
		"123e4567-e89b-12d3-a456-42661417400z",
	}

	for _, id := range malformed {
		t.Run(id, func(t *testing.T) {
			err := Validate(id)
			require.Error(t, err)
			assert.True(t, IsMalformed(err))
			assert.Contains(t, err.Error(), Message)
			if id != "" {
				assert.Contains(t, err.Error(), id, "message should embed the offending value")
			}

			var malformedErr *MalformedIDError
			require.True(t, errors.As(err, &malformedErr))
			assert.Equal(t, id, malformedErr.Value)
			assert.True(t, malformedErr.Recoverable())
			assert.Equal(t, Hint, malformedErr.Hint())
			assert.Contains(t, errors.GetAllHints(err), Hint)
		})
	}
}

func TestNew_IsCanonicalAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := New()
		require.NoError(t, Validate(id))
		assert.False(t, seen[id], "identity %s generated twice", id)
		seen[id] = true
	}
}
