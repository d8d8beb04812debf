package main

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort        = 8080
	defaultKeyStore    = "sqlite"
	defaultKeyStoreDB  = "./apikeys.db"
	defaultNodeTimeout = 10
)

type Config struct {
	Port int `yaml:"port" envconfig:"PORT"`

	// Chain access
	NodeURL           string `yaml:"node_url" envconfig:"NODE_URL"`
	NodeTimeoutSecs   int    `yaml:"node_timeout_secs" envconfig:"NODE_TIMEOUT_SECS"`
	StakingContract   string `yaml:"staking_contract" envconfig:"STAKING_CONTRACT"`
	PoolContract      string `yaml:"pool_contract" envconfig:"POOL_CONTRACT"`
	QuotationContract string `yaml:"quotation_contract" envconfig:"QUOTATION_CONTRACT"`

	// SigningKey is the hex encoded secp256k1 private key quotes are
	// signed with. Never logged, never echoed in any response.
	SigningKey string `yaml:"signing_key" envconfig:"SIGNING_KEY"`

	// Key store settings. key_store must be 'postgres' or 'sqlite'.
	KeyStore       string `yaml:"key_store" envconfig:"KEY_STORE"`
	KeyStoreDB     string `yaml:"key_store_db" envconfig:"KEY_STORE_DB"`
	KeyStoreDBFile string `yaml:"key_store_db_file" envconfig:"KEY_STORE_DB_FILE"`
}

// Load Config from a yaml file at path.
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return err
	}

	c.applyDefaults()
	return nil
}

// Load Config from the environment.
func (c *Config) LoadFromEnv() error {
	if err := envconfig.Process("", c); err != nil {
		return err
	}

	c.applyDefaults()
	return nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.KeyStore == "" {
		c.KeyStore = defaultKeyStore
	}
	if c.KeyStoreDBFile == "" {
		c.KeyStoreDBFile = defaultKeyStoreDB
	}
	if c.NodeTimeoutSecs == 0 {
		c.NodeTimeoutSecs = defaultNodeTimeout
	}
}
