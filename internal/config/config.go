package config

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/tonmint/tonmint/address"
	"github.com/tonmint/tonmint/tlb"
)

// Config contains all parameters of the service, read from the environment.
type Config struct {
	Port             int           `envconfig:"PORT" default:"3001"`
	MinterAddress    string        `envconfig:"MINTER_ADDRESS"`
	WalletCodePath   string        `envconfig:"WALLET_CODE_PATH"`
	ArtifactsDir     string        `envconfig:"ARTIFACTS_DIR" default:"."`
	MaxMintAmount    Amount        `envconfig:"MAX_MINT_AMOUNT" default:"1000000000000000000"`
	DefaultMsgValue  tlb.Coins     `envconfig:"DEFAULT_MSG_VALUE" default:"1500000"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	AddressCacheSize int           `envconfig:"ADDRESS_CACHE_SIZE" default:"1024"`
	Testnet          bool          `envconfig:"TESTNET" default:"false"`
	ReadTimeout      time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	if c.AddressCacheSize <= 0 {
		return fmt.Errorf("ADDRESS_CACHE_SIZE should be positive, got %d", c.AddressCacheSize)
	}

	if c.MaxMintAmount.Int == nil {
		return errors.New("MAX_MINT_AMOUNT is not set")
	}

	// service can start without minter, but a wrong one is a mistake
	if _, err := c.Minter(); err != nil {
		return fmt.Errorf("invalid MINTER_ADDRESS: %w", err)
	}
	return nil
}

// Minter returns parsed minter address, nil when it is not configured.
func (c *Config) Minter() (*address.Address, error) {
	if c.MinterAddress == "" {
		return nil, nil
	}
	return address.ParseAnyAddr(c.MinterAddress)
}

func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Amount is a non negative integer of any size.
type Amount struct {
	*big.Int
}

func (a *Amount) Decode(value string) error {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok || v.Sign() < 0 {
		return fmt.Errorf("%q is not a non negative integer", value)
	}
	a.Int = v
	return nil
}
