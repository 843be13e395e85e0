// internal/cli/root.go
package svbench

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/svbench/internal/appconfig"
	"github.com/mwiater/svbench/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "svbench",
	Short: "svbench — LLM SystemVerilog generation benchmark pipeline",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Credentials come from the environment; a .env file is a
		// convenience, not a requirement.
		_ = godotenv.Load()

		cfg, err := appconfig.Load(cfgFile)
		if err != nil {
			// Only tolerate a missing file at the default location.
			if cmd.Flags().Changed("config") {
				return err
			}
			cfg = appconfig.Config{}
		}
		cfg.ConfigPath = cfgFile

		// Flags override the file (flags > config > defaults).
		if viper.GetBool("debug") {
			cfg.Debug = true
		}
		if logFile := viper.GetString("logFile"); logFile != "" {
			cfg.LogFile = logFile
		}

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("initialize logging: %w", err)
		}
		if err := logging.AppendHistory(cfg.HistoryFilePath(), os.Args); err != nil {
			logging.LogEvent("Could not record command history: %v", err)
		}

		if cfg.Debug {
			pp.Println(cfg)
		}

		currentConfig = &cfg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Close()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().String("logFile", "", "log file path")
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// getConfig returns the merged configuration snapshot for subcommands.
func getConfig() *appconfig.Config {
	return currentConfig
}
