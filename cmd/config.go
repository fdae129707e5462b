package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func configShowRun() error {
	if file := viper.ConfigFileUsed(); file != "" {
		ui.Info("Config file: %s", file)
	} else {
		ui.Info("Config file: (none, using defaults and environment)")
	}

	apiKey := viper.GetString("anthropic.api_key")
	keyDisplay := "(not set)"
	if apiKey != "" {
		keyDisplay = "****" + apiKey[max(0, len(apiKey)-4):]
	}

	fmt.Fprintf(ui.Out, "db_path:             %s\n", viper.GetString("db_path"))
	fmt.Fprintf(ui.Out, "port:                %d\n", viper.GetInt("port"))
	fmt.Fprintf(ui.Out, "anthropic.api_key:   %s\n", keyDisplay)
	fmt.Fprintf(ui.Out, "anthropic.model:     %s\n", viper.GetString("anthropic.model"))
	fmt.Fprintf(ui.Out, "llm.reply_timeout:   %s\n", viper.GetString("llm.reply_timeout"))
	fmt.Fprintf(ui.Out, "llm.summary_timeout: %s\n", viper.GetString("llm.summary_timeout"))
	return nil
}
