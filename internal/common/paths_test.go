package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("TALLY_TEST_DIR", "/var/data")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty path", input: "", want: ""},
		{name: "tilde prefix", input: "~/state/session.db", want: filepath.Join(home, "state/session.db")},
		{name: "bare tilde", input: "~", want: home},
		{name: "env var", input: "$TALLY_TEST_DIR/tally.db", want: "/var/data/tally.db"},
		{name: "absolute path untouched", input: "/tmp/session.db", want: "/tmp/session.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
