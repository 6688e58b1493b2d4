package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellated-io/signet/config"
	"github.com/tessellated-io/signet/log"
)

type nested struct {
	Send uint64 `yaml:"send"`
}

type testConfig struct {
	Network  string `yaml:"network" comment:"A preset network name"`
	GasPrice string `yaml:"gas_price" comment:"Price per unit of gas"`
	MinGas   string `yaml:"min_gas_price,omitempty"`
	Limits   nested `yaml:"gas_limits" comment:"Per message gas limits"`
	Ignored  string `yaml:"-"`
}

func TestWriteAndLoadYaml(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")

	written := testConfig{
		Network:  "localwasmd",
		GasPrice: "0.025ucosm",
		MinGas:   "0.01ucosm",
		Limits:   nested{Send: 90_000},
	}
	require.NoError(t, config.WriteYamlWithComments(written, "signet configuration", file, log.Discard()))

	contents, err := os.ReadFile(file)
	require.NoError(t, err)
	rendered := string(contents)

	assert.True(t, strings.HasPrefix(rendered, "# signet configuration\n"))
	assert.Contains(t, rendered, "\n# A preset network name\nnetwork: localwasmd\n")
	assert.Contains(t, rendered, "\n# Price per unit of gas\ngas_price: 0.025ucosm\n")
	assert.Contains(t, rendered, "\n# Per message gas limits\ngas_limits:\n  send: 90000\n")
	assert.Contains(t, rendered, "min_gas_price: 0.01ucosm")

	var loaded testConfig
	require.NoError(t, config.LoadYaml(file, &loaded))
	assert.Equal(t, written, loaded)
}

func TestLoadYamlRejectsUnknownKeys(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(file, []byte("network: juno\nunknown: true\n"), 0o644))

	var loaded testConfig
	require.Error(t, config.LoadYaml(file, &loaded))
}

func TestLoadYamlMissingFile(t *testing.T) {
	var loaded testConfig
	require.Error(t, config.LoadYaml(filepath.Join(t.TempDir(), "missing.yml"), &loaded))
}

func TestSafeWriteNeverOverwrites(t *testing.T) {
	file := filepath.Join(t.TempDir(), "wallet.json")

	require.NoError(t, config.SafeWriteSecret(file, []byte("first"), log.Discard()))
	require.NoError(t, config.SafeWriteSecret(file, []byte("second"), log.Discard()))

	contents, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "first", string(contents))

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.True(t, config.FileExists(file))
}

func TestCreateDirectoryIfNeeded(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, config.CreateDirectoryIfNeeded(dir, log.Discard()))
	require.NoError(t, config.CreateDirectoryIfNeeded(dir, log.Discard()))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExpandHomeDir(t *testing.T) {
	assert.Equal(t, "/etc/signet", config.ExpandHomeDir("/etc/signet"))
	assert.False(t, strings.HasPrefix(config.ExpandHomeDir("~/.signet"), "~"))
}
