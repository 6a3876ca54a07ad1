package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	outputFmt string
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "scrubdash",
	Short: "Scrubdash — hand-hygiene attendance monitor",
	Long: `Scrubdash watches the hand-wash log a collector process keeps appending to,
derives same-day attendance statistics on a fixed refresh interval, and
serves them through a live web dashboard or a one-shot terminal report.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.scrubdash.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "report output format: text, json")
	rootCmd.PersistentFlags().StringP("source", "s", "", "source document locator: path/glob, http(s) URL, or gsheet://<id>/<range>")
	rootCmd.PersistentFlags().IntP("total", "t", 0, "total workers estimate for the compliance percentage")
	rootCmd.PersistentFlags().Duration("interval", 0, "refresh interval (default 30s)")
	rootCmd.PersistentFlags().String("listen", "", "dashboard listen address (default :8080)")
	rootCmd.PersistentFlags().String("credentials", "", "service-account key file for gsheet sources")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	must(viper.BindPFlag("source", rootCmd.PersistentFlags().Lookup("source")))
	must(viper.BindPFlag("total_workers", rootCmd.PersistentFlags().Lookup("total")))
	must(viper.BindPFlag("refresh_interval", rootCmd.PersistentFlags().Lookup("interval")))
	must(viper.BindPFlag("listen", rootCmd.PersistentFlags().Lookup("listen")))
	must(viper.BindPFlag("google_credentials", rootCmd.PersistentFlags().Lookup("credentials")))
	must(viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")))
}

func initConfig() {
	_ = godotenv.Load() // .env is optional

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".scrubdash")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SCRUBDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
