package config

import (
	"github.com/JackalLabs/harvester/types"
)

const (
	TaskDeposit  = "deposit"
	TaskRecover  = "recover"
	TaskRepair   = "repair"
	TaskTools    = "tools"
	TaskCrops    = "crops"
	TaskFeed     = "feed"
	TaskWithdraw = "withdraw"
)

// AllTasks lists every task in execution order.
var AllTasks = []string{TaskDeposit, TaskRecover, TaskRepair, TaskTools, TaskCrops, TaskFeed, TaskWithdraw}

// Account is a chain account and the keys authorizing it. Accounts are only
// read from the environment and never written to disk.
type Account struct {
	Name string   `yaml:"-" mapstructure:"-"`
	Keys []string `yaml:"-" mapstructure:"-"`
}

type Config struct {
	CheckInterval   int64           `yaml:"check_interval" mapstructure:"check_interval"`
	Thresholds      ThresholdConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Delay           DelayConfig     `yaml:"delay" mapstructure:"delay"`
	Withdraw        TransferConfig  `yaml:"withdraw" mapstructure:"withdraw"`
	Deposit         TransferConfig  `yaml:"deposit" mapstructure:"deposit"`
	DryRun          bool            `yaml:"dry_run" mapstructure:"dry_run"`
	Endpoints       EndpointConfig  `yaml:"endpoints" mapstructure:"endpoints"`
	Tasks           []string        `yaml:"tasks" mapstructure:"tasks"`
	APICfg          APIConfig       `yaml:"api_config" mapstructure:"api_config"`
	MonitorInterval int64           `yaml:"monitor_interval" mapstructure:"monitor_interval"`
	LogFile         string          `yaml:"log_file" mapstructure:"log_file"`

	Accounts []Account `yaml:"-" mapstructure:"-"`
}

type ThresholdConfig struct {
	Repair             float64 `yaml:"repair" mapstructure:"repair"`
	Recover            float64 `yaml:"recover" mapstructure:"recover"`
	MaxFoodConsumption float64 `yaml:"max_food_consumption" mapstructure:"max_food_consumption"`
}

// DelayConfig is the pause window before each submission, in seconds.
type DelayConfig struct {
	Min float64 `yaml:"min" mapstructure:"min"`
	Max float64 `yaml:"max" mapstructure:"max"`
}

// TransferConfig holds balance lists in the "amount SYMBOL, amount SYMBOL" form.
type TransferConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	Threshold string `yaml:"threshold" mapstructure:"threshold"`
	Max       string `yaml:"max" mapstructure:"max"`
}

// TransferRule is the parsed form of a TransferConfig.
type TransferRule struct {
	Enabled   bool
	Threshold types.Balances
	Max       types.Balances
}

type EndpointConfig struct {
	Wax     []string `yaml:"wax" mapstructure:"wax"`
	Atomic  []string `yaml:"atomic" mapstructure:"atomic"`
	Timeout int64    `yaml:"timeout" mapstructure:"timeout"`
}

type APIConfig struct {
	Enabled bool  `yaml:"enabled" mapstructure:"enabled"`
	Port    int64 `yaml:"port" mapstructure:"port"`
}

func DefaultConfig() *Config {
	return &Config{
		CheckInterval: 15,
		Thresholds: ThresholdConfig{
			Repair:             50,
			Recover:            50,
			MaxFoodConsumption: 100,
		},
		Delay: DelayConfig{
			Min: 4,
			Max: 10,
		},
		Withdraw: TransferConfig{},
		Deposit:  TransferConfig{},
		Endpoints: EndpointConfig{
			Wax: []string{
				"https://api.wax.greeneosio.com",
				"https://api.waxsweden.org",
				"https://wax.cryptolions.io",
				"https://wax.eu.eosamsterdam.net",
				"https://api-wax.eosarabia.net",
				"https://wax.greymass.com",
				"https://wax.pink.gg",
			},
			Atomic: []string{
				"https://aa.wax.blacklusion.io",
				"https://wax-atomic-api.eosphere.io",
				"https://wax.api.atomicassets.io",
				"https://wax.blokcrafters.io",
			},
			Timeout: 5,
		},
		Tasks: append([]string(nil), AllTasks...),
		APICfg: APIConfig{
			Enabled: true,
			Port:    3535,
		},
		MonitorInterval: 60,
	}
}
