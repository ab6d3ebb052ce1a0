package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOTPCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := NewOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)

		seen[code] = true
	}
	// 200 draws from 900k values should essentially never collapse to one
	require.Greater(t, len(seen), 1)
}
