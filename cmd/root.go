package cmd

import (
	"fmt"
	"os"

	"github.com/JackalLabs/harvester/cmd/accounts"
	"github.com/JackalLabs/harvester/cmd/config"
	"github.com/JackalLabs/harvester/cmd/types"
	"github.com/JackalLabs/harvester/logger"
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	r := &cobra.Command{
		Use:   "harvester",
		Short: "Harvester keeps Farmers World accounts repaired, fed and claimed.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logLevel, err := cmd.Flags().GetString(types.FlagLogLevel)
			if err != nil {
				return err
			}
			_, err = logger.Setup(logLevel, "")
			return err
		},
		SilenceUsage: true,
	}

	r.PersistentFlags().String(types.FlagHome, types.DefaultHome, "sets the home directory for harvester")
	r.PersistentFlags().String(types.FlagLogLevel, types.DefaultLogLevel, "log level. info, error, debug")

	r.AddCommand(StartCmd(), CheckCmd(), VersionCmd(), accounts.AccountsCmd(), config.ConfigCmd())

	return r
}

func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
