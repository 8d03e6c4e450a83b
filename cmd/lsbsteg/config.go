package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	steg "github.com/yyyoichi/lsb_zero"
	"gopkg.in/yaml.v3"
)

// fileConfig holds defaults read from --config. Flags given on the command
// line win over the file.
type fileConfig struct {
	LSBs  *int    `yaml:"lsbs"`
	Seed  *uint64 `yaml:"seed"`
	Hash  *string `yaml:"hash"`
	Alpha *bool   `yaml:"alpha"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

type common struct {
	lsbs       int
	seed       uint64
	passphrase string
	hashName   string
	alpha      bool
	config     string
	verbose    bool

	hash   steg.Algorithm
	logger *slog.Logger
}

func (c *common) register(fs *pflag.FlagSet) {
	fs.IntVarP(&c.lsbs, "lsbs", "l", 1, "number of least significant bits used per channel (1-8)")
	fs.Uint64VarP(&c.seed, "seed", "s", steg.DefaultSeed, "seed of the channel order")
	fs.StringVar(&c.passphrase, "passphrase", "", "derive the seed from a passphrase instead of --seed")
	fs.BoolVar(&c.alpha, "alpha", false, "also use the alpha channel")
	fs.StringVar(&c.config, "config", "", "YAML file with default lsbs, seed, hash and alpha")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "print debug logs")
}

// resolve merges the config file and derives the seed and hash.
func (c *common) resolve(fs *pflag.FlagSet) error {
	if c.config != "" {
		cfg, err := loadConfig(c.config)
		if err != nil {
			return err
		}
		if cfg.LSBs != nil && !fs.Changed("lsbs") {
			c.lsbs = *cfg.LSBs
		}
		if cfg.Seed != nil && !fs.Changed("seed") {
			c.seed = *cfg.Seed
		}
		if cfg.Hash != nil && !fs.Changed("hash") {
			c.hashName = *cfg.Hash
		}
		if cfg.Alpha != nil && !fs.Changed("alpha") {
			c.alpha = *cfg.Alpha
		}
	}
	if c.passphrase != "" {
		if fs.Changed("seed") {
			return fmt.Errorf("--seed and --passphrase are mutually exclusive")
		}
		seed, err := steg.SeedFromPassphrase([]byte(c.passphrase), nil)
		if err != nil {
			return err
		}
		c.seed = seed
	}
	c.hash = steg.BLAKE3
	if c.hashName != "" {
		alg, err := steg.ParseAlgorithm(c.hashName)
		if err != nil {
			return err
		}
		c.hash = alg
	}
	return nil
}
