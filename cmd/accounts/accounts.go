package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/JackalLabs/harvester/cmd/types"
	"github.com/JackalLabs/harvester/config"
	"github.com/JackalLabs/harvester/core"
	"github.com/JackalLabs/harvester/policy"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func AccountsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "accounts",
		Short: "Lists the configured accounts and their public keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}

			for _, acc := range app.Accounts() {
				color.New(color.Bold).Println(acc.Name)
				for _, k := range acc.Keyring.PublicKeyStrings() {
					fmt.Printf("  %s\n", k)
				}
			}
			return nil
		},
	}

	c.AddCommand(balanceCmd())

	return c
}

func loadApp(cmd *cobra.Command) (*core.App, error) {
	home, err := cmd.Flags().GetString(types.FlagHome)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Init(home)
	if err != nil {
		return nil, err
	}

	return core.New(cfg)
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Displays the in-game resources, energy and wallet tokens of every account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}

			ctx := context.Background()
			game := app.Game()
			for _, acc := range app.Accounts() {
				color.New(color.Bold).Println(acc.Name)

				row, ok := game.Account(ctx, acc.Name)
				if !ok {
					fmt.Printf("  %s\n", color.YellowString("no game account found"))
				} else {
					fmt.Printf("  energy:  %d/%d\n", row.Energy, row.MaxEnergy)
					fmt.Printf("  game:    %s\n", strings.Join(row.ParsedBalances().Quantities(), ", "))
					food := row.ParsedBalances().Amount(policy.FoodSymbol)
					if food < policy.MinFoodForRecovery {
						fmt.Printf("  %s\n", color.RedString("not enough FOOD to recover energy"))
					}
				}

				wallet := game.WalletBalances(ctx, acc.Name)
				fmt.Printf("  wallet:  %s\n", strings.Join(wallet.Quantities(), ", "))
			}
			return nil
		},
	}
}
