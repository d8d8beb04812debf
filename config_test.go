package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoad(t *testing.T) {
	const yaml = `
port: 9000
node_url: "http://localhost:8545"
staking_contract: "0x3333333333333333333333333333333333333333"
pool_contract: "0x4444444444444444444444444444444444444444"
quotation_contract: "0x5555555555555555555555555555555555555555"
key_store: "postgres"
key_store_db: "postgres://localhost/quotes"
`

	f, err := os.CreateTemp(t.TempDir(), "config-*.yml")
	require.NoError(t, err)
	_, err = f.WriteString(yaml)
	require.NoError(t, err)
	f.Close()

	var cfg Config
	require.NoError(t, cfg.Load(f.Name()))

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "http://localhost:8545", cfg.NodeURL)
	assert.Equal(t, "postgres", cfg.KeyStore)
	assert.Equal(t, "postgres://localhost/quotes", cfg.KeyStoreDB)

	// Defaults still apply to unset fields.
	assert.Equal(t, defaultKeyStoreDB, cfg.KeyStoreDBFile)
	assert.Equal(t, defaultNodeTimeout, cfg.NodeTimeoutSecs)
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultKeyStore, cfg.KeyStore)
	assert.Equal(t, defaultKeyStoreDB, cfg.KeyStoreDBFile)
}
