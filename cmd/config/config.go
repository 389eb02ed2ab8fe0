package config

import (
	"fmt"
	"os"
	"path"
	"reflect"
	"strconv"
	"strings"

	"github.com/JackalLabs/harvester/cmd/types"
	"github.com/JackalLabs/harvester/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func ConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Config subcommands",
	}

	c.AddCommand(getCmd(), setCmd(), showCmd())

	return c
}

// effective reads the config file with .env and process environment applied.
func effective(cmd *cobra.Command) (*config.Config, error) {
	home, err := cmd.Flags().GetString(types.FlagHome)
	if err != nil {
		return nil, err
	}
	if err := config.LoadDotEnv("."); err != nil {
		return nil, err
	}
	return config.Load(home, os.LookupEnv)
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration, environment included",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := effective(cmd)
			if err != nil {
				return err
			}

			data, err := cfg.Export()
			if err != nil {
				return err
			}

			fmt.Print(string(data))
			for _, acc := range cfg.Accounts {
				fmt.Printf("# account %s with %d key(s)\n", acc.Name, len(acc.Keys))
			}
			return nil
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Get a config value",
		Long: `Get an effective config value by key. Use dot notation for nested values.

Examples:
  harvester config get check_interval
  harvester config get thresholds.repair
  harvester config get endpoints.wax`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := effective(cmd)
			if err != nil {
				return err
			}

			value, err := getConfigValue(cfg, args[0])
			if err != nil {
				return err
			}

			fmt.Println(value)
			return nil
		},
	}
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a value in the config file",
		Long: `Set a config file value by key. Use dot notation for nested values and
commas for lists. Environment overrides are not written to the file.

Examples:
  harvester config set check_interval 30
  harvester config set delay.max 12.5
  harvester config set tasks repair,tools,crops`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			home, err := cmd.Flags().GetString(types.FlagHome)
			if err != nil {
				return err
			}

			directory := os.ExpandEnv(home)
			cfg, err := config.ReadConfigFile(directory)
			if err != nil {
				return err
			}

			if err := setConfigValue(cfg, key, value); err != nil {
				return err
			}

			if err := writeConfigFile(directory, cfg); err != nil {
				return err
			}

			fmt.Printf("%s set to %s\n", key, value)
			return nil
		},
	}
}

func writeConfigFile(directory string, cfg *config.Config) error {
	data, err := cfg.Export()
	if err != nil {
		return err
	}

	return os.WriteFile(path.Join(directory, config.ConfigFileName), data, 0o600)
}

func getConfigValue(cfg *config.Config, key string) (string, error) {
	v, err := lookup(reflect.ValueOf(cfg).Elem(), key)
	if err != nil {
		return "", err
	}
	return render(v)
}

func setConfigValue(cfg *config.Config, key string, value string) error {
	v, err := lookup(reflect.ValueOf(cfg).Elem(), key)
	if err != nil {
		return err
	}
	if !v.CanSet() {
		return fmt.Errorf("cannot set field %s", key)
	}
	return assign(v, value)
}

// lookup walks a dotted yaml key down from root. Fields hidden from yaml,
// such as accounts, cannot be reached.
func lookup(root reflect.Value, key string) (reflect.Value, error) {
	v := root
	for _, name := range strings.Split(key, ".") {
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("%s is not a section", name)
		}
		idx, ok := yamlFields(v.Type())[strings.ToLower(name)]
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown config key: %s", name)
		}
		v = v.Field(idx)
	}
	return v, nil
}

func yamlFields(t reflect.Type) map[string]int {
	fields := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("yaml"), ",")[0]
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		fields[strings.ToLower(name)] = i
	}
	return fields
}

func render(v reflect.Value) (string, error) {
	switch v.Kind() {
	case reflect.Struct:
		data, err := yaml.Marshal(v.Interface())
		if err != nil {
			return "", fmt.Errorf("failed to serialize section: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	case reflect.Slice:
		items := make([]string, v.Len())
		for i := range items {
			items[i] = fmt.Sprint(v.Index(i).Interface())
		}
		return strings.Join(items, ","), nil
	}
	return fmt.Sprint(v.Interface()), nil
}

// assign stores raw into v. Lists are comma separated and every element goes
// through the same parser as a single value.
func assign(v reflect.Value, raw string) error {
	if v.Kind() != reflect.Slice {
		parsed, err := parseScalar(v.Type(), raw)
		if err != nil {
			return err
		}
		v.Set(parsed)
		return nil
	}

	list := reflect.MakeSlice(v.Type(), 0, 0)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parsed, err := parseScalar(v.Type().Elem(), item)
		if err != nil {
			return err
		}
		list = reflect.Append(list, parsed)
	}
	v.Set(list)
	return nil
}

func parseScalar(t reflect.Type, raw string) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		out.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return out, fmt.Errorf("invalid integer value: %s", raw)
		}
		out.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return out, fmt.Errorf("invalid float value: %s", raw)
		}
		out.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return out, fmt.Errorf("invalid boolean value: %s (use true/false)", raw)
		}
		out.SetBool(b)
	default:
		return out, fmt.Errorf("unsupported value type: %s", t)
	}
	return out, nil
}
