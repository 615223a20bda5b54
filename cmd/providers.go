package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/propmatch/internal/provider"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Manage property-data providers",
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers and their toggle state",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		for _, p := range provider.All(cfg.Providers) {
			enabled, err := env.Store.ProviderEnabled(cmd.Context(), p.Name())
			if err != nil {
				return err
			}
			state := "enabled"
			if !enabled {
				state = "disabled"
			}
			fmt.Printf("%-14s %s\n", p.Name(), state)
		}
		return nil
	},
}

var providersEnableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setProviderToggle(cmd, args[0], true)
	},
}

var providersDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setProviderToggle(cmd, args[0], false)
	},
}

func setProviderToggle(cmd *cobra.Command, name string, enabled bool) error {
	env, err := initEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.Store.SetProviderEnabled(cmd.Context(), name, enabled); err != nil {
		return err
	}
	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	fmt.Printf("%s %s\n", name, state)
	return nil
}

func init() {
	providersCmd.AddCommand(providersListCmd, providersEnableCmd, providersDisableCmd)
	rootCmd.AddCommand(providersCmd)
}
