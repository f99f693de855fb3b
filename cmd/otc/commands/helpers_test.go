package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldArgs(t *testing.T) {
	t.Parallel()

	t.Run("parses key=value pairs", func(t *testing.T) {
		t.Parallel()

		data, err := ParseFieldArgs([]string{"first_name=Sam", "email=sam@example.com"})
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{
			"first_name": "Sam",
			"email":      "sam@example.com",
		}, data)
	})

	t.Run("value may contain equals signs", func(t *testing.T) {
		t.Parallel()

		data, err := ParseFieldArgs([]string{"note=a=b"})
		require.NoError(t, err)
		assert.Equal(t, "a=b", data["note"])
	})

	t.Run("rejects malformed arguments", func(t *testing.T) {
		t.Parallel()

		for _, arg := range []string{"noequals", "=value"} {
			_, err := ParseFieldArgs([]string{arg})
			assert.Error(t, err, arg)
		}
	})
}

func TestMaskToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", maskToken(""))
	assert.Equal(t, "***", maskToken("secret"))
}
