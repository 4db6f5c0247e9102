package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gaze-network/epoch-schedule/common"
	"github.com/gaze-network/epoch-schedule/core/issuance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// chdir moves into dir so that ./config.yaml lookups do not see the working tree.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestParseDefaults(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	conf, err := Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "an explicit config file must exist")

	Reset()
	chdir(t, t.TempDir())
	conf, err = Parse()
	require.NoError(t, err)
	assert.Equal(t, common.NetworkMainnet, conf.Network)
	assert.Equal(t, "text", conf.Logger.Output)
	assert.Equal(t, issuance.PresetGradual, conf.Schedule.Preset)
	assert.Equal(t, issuance.DefaultDecimals, conf.Schedule.Decimals)
}

func TestParseCustomSchedule(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	path := writeConfig(t, `
logger:
  output: json
  debug: true
network: regtest
schedule:
  name: halving
  decimals: 8
  epochs:
    - height: 0
      subsidy: "50"
    - height: 150
      subsidy: "25"
    - height: 300
      subsidy: "0"
`)
	conf, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "json", conf.Logger.Output)
	assert.True(t, conf.Logger.Debug)
	assert.Equal(t, common.NetworkRegtest, conf.Network)
	require.Len(t, conf.Schedule.Epochs, 3)
	assert.Nil(t, conf.Schedule.Epochs[0].Ordinal)

	s, err := conf.Schedule.Build(conf.Network)
	require.NoError(t, err)
	assert.Equal(t, "halving", s.Name())
	assert.Equal(t, issuance.Ordinal(150*50*issuance.CoinValue), s.StartingOrdinal(1))
	assert.Equal(t, issuance.Epoch(2), s.Terminal())
	assert.Equal(t, conf, Load())
}

func TestParseEnv(t *testing.T) {
	t.Cleanup(Reset)
	Reset()
	chdir(t, t.TempDir())
	t.Setenv("NETWORK", "testnet")
	t.Setenv("SCHEDULE_PRESET", issuance.PresetBitcoin)

	conf, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, common.NetworkTestnet, conf.Network)
	assert.Equal(t, issuance.PresetBitcoin, conf.Schedule.Preset)
}

func TestParseInvalidFile(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	path := writeConfig(t, "network: [mainnet\n")
	_, err := Parse(path)
	assert.Error(t, err)
}
