package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mcp_config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const sampleConfig = `{
  "mcpServers": {
    "test-server": {
      "command": "python",
      "args": ["-m", "http.server"],
      "env": {"TEST_VAR": "test_value"}
    },
    "another-server": {
      "command": "node",
      "args": ["server.js"]
    }
  }
}`

func TestLoad(t *testing.T) {
	t.Run("parses servers", func(t *testing.T) {
		path := writeConfig(t, sampleConfig)

		servers, err := Load(path)
		require.NoError(t, err)

		require.Contains(t, servers, "test-server")
		require.Contains(t, servers, "another-server")
		assert.Equal(t, "python", servers["test-server"].Command)
		assert.Equal(t, []string{"-m", "http.server"}, servers["test-server"].Args)
		assert.Equal(t, map[string]string{"TEST_VAR": "test_value"}, servers["test-server"].Env)
		assert.Nil(t, servers["another-server"].Env)
	})

	t.Run("empty mcpServers", func(t *testing.T) {
		path := writeConfig(t, `{"mcpServers": {}}`)

		servers, err := Load(path)
		require.NoError(t, err)
		assert.Empty(t, servers)
	})

	t.Run("missing mcpServers key yields empty map", func(t *testing.T) {
		path := writeConfig(t, `{}`)

		servers, err := Load(path)
		require.NoError(t, err)
		assert.NotNil(t, servers)
		assert.Empty(t, servers)
	})

	t.Run("invalid JSON is an error", func(t *testing.T) {
		path := writeConfig(t, "invalid json content {{{")

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("nonexistent file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("ignores unknown top-level keys", func(t *testing.T) {
		path := writeConfig(t, `{"globalShortcut": "x", "mcpServers": {"s": {"command": "echo"}}}`)

		servers, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "echo", servers["s"].Command)
	})
}

func TestListServers(t *testing.T) {
	t.Run("returns sorted names", func(t *testing.T) {
		path := writeConfig(t, sampleConfig)

		names, err := ListServers(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"another-server", "test-server"}, names)
	})

	t.Run("empty config", func(t *testing.T) {
		path := writeConfig(t, `{"mcpServers": {}}`)

		names, err := ListServers(path)
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestSave(t *testing.T) {
	t.Run("round-trips through Load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mcp_config.json")
		servers := map[string]*ServerConfig{
			"everything": {
				Command: "npx",
				Args:    []string{"-y", "@modelcontextprotocol/server-everything"},
				Env:     map[string]string{"FOO": "bar"},
			},
		}

		require.NoError(t, Save(path, servers))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, servers, loaded)
	})

	t.Run("saved file has 0600 permissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mcp_config.json")
		require.NoError(t, Save(path, map[string]*ServerConfig{}))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}

func TestResolveEnv(t *testing.T) {
	t.Run("resolves $VAR references", func(t *testing.T) {
		t.Setenv("MY_SECRET", "s3cret")
		env := map[string]string{
			"API_KEY":  "$MY_SECRET",
			"LITERAL":  "plain-value",
			"COMBINED": "prefix-$MY_SECRET-suffix",
		}
		resolved := ResolveEnv(env)
		assert.Equal(t, "s3cret", resolved["API_KEY"])
		assert.Equal(t, "plain-value", resolved["LITERAL"])
		assert.Equal(t, "prefix-s3cret-suffix", resolved["COMBINED"])
	})

	t.Run("unset var resolves to empty string", func(t *testing.T) {
		env := map[string]string{"KEY": "$UNSET_VAR_MCPSH_TEST"}
		resolved := ResolveEnv(env)
		assert.Equal(t, "", resolved["KEY"])
	})

	t.Run("nil env returns nil", func(t *testing.T) {
		assert.Nil(t, ResolveEnv(nil))
	})
}
