package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIncrReply(t *testing.T) {
	t.Parallel()

	t.Run("valid pair", func(t *testing.T) {
		t.Parallel()

		count, ttlMs, err := parseIncrReply([]any{int64(7), int64(4200)})
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.Equal(t, int64(4200), ttlMs)
	})

	t.Run("wrong length", func(t *testing.T) {
		t.Parallel()

		for _, res := range [][]any{nil, {}, {int64(1)}, {int64(1), int64(2), int64(3)}} {
			_, _, err := parseIncrReply(res)
			assert.ErrorIs(t, err, ErrUnexpectedReply)
		}
	})

	t.Run("wrong types", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseIncrReply([]any{"7", int64(4200)})
		assert.ErrorIs(t, err, ErrUnexpectedReply)

		_, _, err = parseIncrReply([]any{int64(7), "4200"})
		assert.ErrorIs(t, err, ErrUnexpectedReply)
	})
}
