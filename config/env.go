package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// DotEnvFiles are loaded in order. A variable already set, either by the
// process or an earlier file, is never overwritten.
var DotEnvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads the dotenv files present in dir into the process environment.
func LoadDotEnv(dir string) error {
	var files []string
	for _, name := range DotEnvFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return nil
	}
	return godotenv.Load(files...)
}

// ApplyEnv overrides cfg with the environment variables that are set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	e := envReader{lookup: lookup}

	e.intVar("CHECK_INTERVAL", &cfg.CheckInterval)
	e.floatVar("REPAIR_THRESHOLD", &cfg.Thresholds.Repair)
	e.floatVar("RECOVER_THRESHOLD", &cfg.Thresholds.Recover)
	e.floatVar("MAX_FOOD_CONSUMPTION", &cfg.Thresholds.MaxFoodConsumption)
	e.floatVar("DELAY_MIN", &cfg.Delay.Min)
	e.floatVar("DELAY_MAX", &cfg.Delay.Max)

	e.boolVar("AUTO_WITHDRAW", &cfg.Withdraw.Enabled)
	e.strVar("WITHDRAW_THRESHOLD", &cfg.Withdraw.Threshold)
	e.strVar("MAX_WITHDRAW", &cfg.Withdraw.Max)
	e.boolVar("AUTO_DEPOSIT", &cfg.Deposit.Enabled)
	e.strVar("DEPOSIT_THRESHOLD", &cfg.Deposit.Threshold)
	e.strVar("MAX_DEPOSIT", &cfg.Deposit.Max)

	e.boolVar("DRY_RUN", &cfg.DryRun)
	e.listVar("WAX_ENDPOINTS", &cfg.Endpoints.Wax)
	e.listVar("ATOMIC_ENDPOINTS", &cfg.Endpoints.Atomic)
	e.intVar("ENDPOINT_TIMEOUT", &cfg.Endpoints.Timeout)
	e.listVar("TASKS", &cfg.Tasks)
	e.strVar("LOG_FILE", &cfg.LogFile)
	e.intVar("API_PORT", &cfg.APICfg.Port)

	for i := range cfg.Tasks {
		cfg.Tasks[i] = strings.ToLower(cfg.Tasks[i])
	}

	cfg.Accounts = append(cfg.Accounts, readAccounts(lookup)...)

	return errors.Join(e.errs...)
}

// readAccounts reads ACCOUNT_NAME/PRIVATE_KEY and then ACCOUNT_NAME_1,
// ACCOUNT_NAME_2... until the first missing index.
func readAccounts(lookup LookupFunc) []Account {
	var out []Account

	if name, ok := lookup("ACCOUNT_NAME"); ok && strings.TrimSpace(name) != "" {
		key, _ := lookup("PRIVATE_KEY")
		out = append(out, Account{Name: strings.TrimSpace(name), Keys: splitList(key)})
	}

	for i := 1; ; i++ {
		name, ok := lookup(fmt.Sprintf("ACCOUNT_NAME_%d", i))
		if !ok || strings.TrimSpace(name) == "" {
			break
		}
		key, _ := lookup(fmt.Sprintf("PRIVATE_KEY_%d", i))
		out = append(out, Account{Name: strings.TrimSpace(name), Keys: splitList(key)})
	}

	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type envReader struct {
	lookup LookupFunc
	errs   []error
}

func (e *envReader) get(key string) (string, bool) {
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) strVar(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) listVar(key string, dst *[]string) {
	if v, ok := e.get(key); ok {
		*dst = splitList(v)
	}
}

func (e *envReader) intVar(key string, dst *int64) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not an integer", key, v))
		return
	}
	*dst = n
}

func (e *envReader) floatVar(key string, dst *float64) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not a number", key, v))
		return
	}
	*dst = f
}

func (e *envReader) boolVar(key string, dst *bool) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not a boolean", key, v))
		return
	}
	*dst = b
}
