package redact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"", "***"},
		{"a", "***"},
		{"ab", "***"},
		{"abc", "ab***"},
		{"alice", "al***"},
		{"юзернейм", "юз***"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Username(tc.in), "input %q", tc.in)
	}
}

func TestConstants(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[REDACTED_TOKEN]", Token())
	require.Equal(t, "[REDACTED_PASSWORD]", Password())
}
