package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()

	t.Run("should register subcommands", func(t *testing.T) {
		for _, path := range [][]string{{"serve"}, {"migrate"}, {"recurring", "run"}} {
			cmd, rest, err := root.Find(path)
			require.NoError(t, err)
			assert.Empty(t, rest)
			assert.Equal(t, path[len(path)-1], cmd.Name())
		}
	})

	t.Run("should serve by default", func(t *testing.T) {
		assert.NotNil(t, root.RunE)
	})

	t.Run("should default config path", func(t *testing.T) {
		flag := root.PersistentFlags().Lookup("config")
		require.NotNil(t, flag)
		assert.Equal(t, "./config/application.yaml", flag.DefValue)
	})
}
