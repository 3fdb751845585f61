package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configServer string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the CLI configuration",
}

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configServer == "" {
			return fmt.Errorf("server address is required, use --server")
		}
		cfg := &Config{
			Version: "v1",
			Server:  MorphServer(configServer),
		}

		file := configFile
		if file == "" {
			var err error
			file, err = GetDefaultConfigPath()
			if err != nil {
				return err
			}
		}
		if err := cfg.WriteConfig(file); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", file)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := LoadConfig(configFile); err != nil {
			return err
		}
		if jsonOutput {
			printJSON(GetConfig())
		} else {
			fmt.Printf("Server: %s\n", GetConfig().GetServerURL())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCreateCmd)
	configCmd.AddCommand(configShowCmd)

	configCreateCmd.Flags().StringVarP(&configServer, "server", "s", "", "Partner server address (host:port)")
}
