package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JackalLabs/harvester/cmd/types"
	"github.com/JackalLabs/harvester/config"
	"github.com/JackalLabs/harvester/core"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func StartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Runs every account on the configured interval until stopped",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := cmd.Flags().GetString(types.FlagHome)
			if err != nil {
				return err
			}

			app, err := core.NewApp(home)
			if err != nil {
				return err
			}

			return app.Start()
		},
	}
}

func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Runs every account once and exits",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := cmd.Flags().GetString(types.FlagHome)
			if err != nil {
				return err
			}

			app, err := core.NewApp(home)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cycle, err := app.Check(ctx)
			if cycle != nil {
				printCycle(cycle)
			}
			return err
		},
	}
}

func printCycle(c *core.Cycle) {
	bold := color.New(color.Bold)
	for _, rep := range c.Reports {
		bold.Printf("%s\n", rep.Account)
		for _, tr := range rep.Tasks {
			status := color.GreenString("ok")
			switch {
			case tr.Failed > 0:
				status = color.RedString("%d failed", tr.Failed)
			case tr.Skipped != "":
				status = color.YellowString("%s", tr.Skipped)
			}
			fmt.Printf("  %-12s found=%-3d eligible=%-3d submitted=%-3d %s\n",
				tr.State, tr.Found, tr.Eligible, tr.Submitted, status)
		}
		if rep.Error != "" {
			fmt.Printf("  %s\n", color.RedString("%s", rep.Error))
		}
	}
	fmt.Printf("%s submitted, %s failed in %s\n",
		color.GreenString("%d", c.Submitted),
		color.RedString("%d", c.Failed),
		c.Finished.Sub(c.Started).Round(time.Millisecond))
}

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Version: %s\nCommit: %s\n", config.Version(), config.Commit())
		},
	}
}
