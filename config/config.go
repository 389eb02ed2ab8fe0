package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/JackalLabs/harvester/types"
	"github.com/eoscanada/eos-go/ecc"
	yaml "gopkg.in/yaml.v3"
)

var (
	ErrNoAccounts = errors.New("no account configured, set ACCOUNT_NAME and PRIVATE_KEY")

	accountName = regexp.MustCompile(`^[a-z1-5.]{1,12}$`)
)

// Parse converts the balance lists. An empty list is valid.
func (t TransferConfig) Parse() (TransferRule, error) {
	threshold, err := types.ParseBalanceList(t.Threshold)
	if err != nil {
		return TransferRule{}, errors.Join(errors.New("invalid threshold list"), err)
	}
	caps, err := types.ParseBalanceList(t.Max)
	if err != nil {
		return TransferRule{}, errors.Join(errors.New("invalid max list"), err)
	}
	return TransferRule{Enabled: t.Enabled, Threshold: threshold, Max: caps}, nil
}

func (c Config) validate() error {
	var errs []error

	if len(c.Accounts) == 0 {
		errs = append(errs, ErrNoAccounts)
	}
	for i, a := range c.Accounts {
		if !accountName.MatchString(a.Name) || strings.HasSuffix(a.Name, ".") {
			errs = append(errs, fmt.Errorf("account #%d: invalid account name %q", i+1, a.Name))
		}
		if len(a.Keys) == 0 {
			errs = append(errs, fmt.Errorf("account %s: no private key", a.Name))
		}
		for j, k := range a.Keys {
			if _, err := ecc.NewPrivateKey(k); err != nil {
				errs = append(errs, fmt.Errorf("account %s: private key #%d is invalid", a.Name, j+1))
			}
		}
	}

	if c.CheckInterval <= 0 {
		errs = append(errs, errors.New("check interval must be positive"))
	}
	if c.Delay.Min < 0 || c.Delay.Max < 0 {
		errs = append(errs, errors.New("delay window cannot be negative"))
	}
	if c.Delay.Min > c.Delay.Max {
		errs = append(errs, fmt.Errorf("delay min %.2fs is above delay max %.2fs", c.Delay.Min, c.Delay.Max))
	}
	if c.Thresholds.MaxFoodConsumption < 0 {
		errs = append(errs, errors.New("max food consumption cannot be negative"))
	}

	if _, err := c.Withdraw.Parse(); err != nil {
		errs = append(errs, errors.Join(errors.New("withdraw"), err))
	}
	if _, err := c.Deposit.Parse(); err != nil {
		errs = append(errs, errors.Join(errors.New("deposit"), err))
	}

	if len(c.Endpoints.Wax) == 0 {
		errs = append(errs, errors.New("no wax endpoints configured"))
	}
	if len(c.Endpoints.Atomic) == 0 {
		errs = append(errs, errors.New("no atomic endpoints configured"))
	}
	for _, task := range c.Tasks {
		if !slices.Contains(AllTasks, task) {
			errs = append(errs, fmt.Errorf("unknown task %q, expected one of %s", task, strings.Join(AllTasks, ",")))
		}
	}

	return errors.Join(errs...)
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	return c.validate()
}

// TaskEnabled reports whether task is in the toggle list.
func (c Config) TaskEnabled(task string) bool {
	return slices.Contains(c.Tasks, task)
}

func (c Config) Interval() time.Duration {
	return time.Duration(c.CheckInterval) * time.Minute
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.Endpoints.Timeout) * time.Second
}

// ReadConfig parses yaml data on top of the defaults without validating it,
// accounts come from the environment afterwards.
func ReadConfig(data []byte) (*Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	config.LogFile = expandPath(config.LogFile)

	return config, nil
}

// Export converts the config to yaml format
func (c Config) Export() ([]byte, error) {
	sb := strings.Builder{}
	sb.WriteString("########################\n")
	sb.WriteString("### Harvester Config ###\n")
	sb.WriteString("########################\n\n")
	sb.WriteString("# accounts and keys are read from the environment or .env only\n\n")

	d, err := yaml.Marshal(&c)
	if err != nil {
		return nil, err
	}

	sb.Write(d)

	sb.WriteString("\n########################\n")

	return []byte(sb.String()), nil
}
