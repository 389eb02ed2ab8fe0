package config

import (
	"testing"

	"github.com/JackalLabs/harvester/config"
	"github.com/stretchr/testify/require"
)

func TestGetConfigValue(t *testing.T) {
	r := require.New(t)
	cfg := config.DefaultConfig()

	v, err := getConfigValue(cfg, "check_interval")
	r.NoError(err)
	r.Equal("15", v)

	v, err = getConfigValue(cfg, "thresholds.repair")
	r.NoError(err)
	r.Equal("50", v)

	v, err = getConfigValue(cfg, "tasks")
	r.NoError(err)
	r.Equal("deposit,recover,repair,tools,crops,feed,withdraw", v)

	v, err = getConfigValue(cfg, "delay")
	r.NoError(err)
	r.Equal("min: 4\nmax: 10", v)

	_, err = getConfigValue(cfg, "accounts")
	r.ErrorContains(err, "unknown config key")
}

func TestSetConfigValue(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(r *require.Assertions, c *config.Config)
		err        string
	}{
		{key: "check_interval", value: "30", check: func(r *require.Assertions, c *config.Config) { r.Equal(int64(30), c.CheckInterval) }},
		{key: "delay.max", value: "12.5", check: func(r *require.Assertions, c *config.Config) { r.Equal(12.5, c.Delay.Max) }},
		{key: "dry_run", value: "true", check: func(r *require.Assertions, c *config.Config) { r.True(c.DryRun) }},
		{key: "withdraw.threshold", value: "100 FOOD", check: func(r *require.Assertions, c *config.Config) { r.Equal("100 FOOD", c.Withdraw.Threshold) }},
		{key: "tasks", value: "repair, tools,", check: func(r *require.Assertions, c *config.Config) {
			r.Equal([]string{"repair", "tools"}, c.Tasks)
		}},
		{key: "dry_run", value: "maybe", err: "invalid boolean value"},
		{key: "check_interval", value: "soon", err: "invalid integer value"},
		{key: "thresholds.nope", value: "1", err: "unknown config key: nope"},
		{key: "check_interval.minutes", value: "1", err: "minutes is not a section"},
		{key: "endpoints.wax", value: "https://a.example, https://b.example", check: func(r *require.Assertions, c *config.Config) {
			r.Equal([]string{"https://a.example", "https://b.example"}, c.Endpoints.Wax)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			r := require.New(t)
			cfg := config.DefaultConfig()

			err := setConfigValue(cfg, tt.key, tt.value)
			if tt.err != "" {
				r.ErrorContains(err, tt.err)
				return
			}
			r.NoError(err)
			tt.check(r, cfg)
		})
	}
}
