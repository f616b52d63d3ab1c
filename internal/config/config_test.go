package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	t.Setenv("SCENARIO_TEST_API_KEY", "secret")

	cfg, err := Parse([]byte(`
network: rinkeby
rpc_url: http://localhost:8545
keys:
  - "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
accounts:
  Geoff: "0x00000000000000000000000000000000000000b2"
default_from: Geoff
artifacts: build/contracts.json
networks_dir: networks
dry_run: true
etherscan:
  api_key: ${SCENARIO_TEST_API_KEY}
  url: https://api-rinkeby.etherscan.io/api
log:
  level: debug
  format: json
`))
	require.NoError(t, err)

	want := Config{
		Network:     "rinkeby",
		RPCURL:      "http://localhost:8545",
		Keys:        []string{"0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"},
		Accounts:    map[string]string{"Geoff": "0x00000000000000000000000000000000000000b2"},
		DefaultFrom: "Geoff",
		Artifacts:   "build/contracts.json",
		NetworksDir: "networks",
		DryRun:      true,
		Etherscan: EtherscanConfig{
			APIKey: "secret",
			URL:    "https://api-rinkeby.etherscan.io/api",
		},
		Log: LogConfig{Level: "debug", Format: "json"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("network: kovan\n"))
	require.NoError(t, err)

	assert.Equal(t, "kovan", cfg.Network)
	assert.Equal(t, []string{DevelopmentKey}, cfg.Keys)
	assert.Equal(t, "out", cfg.Artifacts)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		contains string
	}{
		{"unknown field", "networkz: kovan\n", "failed to parse config"},
		{"bad account", "accounts:\n  Geoff: nope\n", "invalid address"},
		{"bad log level", "log:\n  level: loud\n", "unknown log level"},
		{"bad log format", "log:\n  format: xml\n", "unknown log format"},
		{"empty network", "network: \"\"\n", "network is required"},
		{"no keys", "keys: []\n", "at least one key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.contains)
			}
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network: ropsten\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ropsten", cfg.Network)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "unable to read config file")
}
