package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/endorses/seqscan/cmd/inspect"
	"github.com/endorses/seqscan/cmd/search"
	"github.com/endorses/seqscan/cmd/suite"
	"github.com/endorses/seqscan/cmd/version"
	"github.com/endorses/seqscan/cmd/watch"
	"github.com/endorses/seqscan/internal/pkg/cmdutil"
	"github.com/endorses/seqscan/internal/pkg/logger"
	buildversion "github.com/endorses/seqscan/internal/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "seqscan",
	Short: "seqscan finds exact patterns in sequences",
	Long: fmt.Sprintf(`seqscan %s - exact pattern search over sequence files

Runs a naive scan, Knuth-Morris-Pratt and a table-driven KMP automaton over the
same inputs, checks that they agree and reports what each one cost.`, buildversion.Version),
	Version:           buildversion.GetFullVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func addSubCommandPalattes() {
	rootCmd.AddCommand(search.SearchCmd)
	rootCmd.AddCommand(suite.SuiteCmd)
	rootCmd.AddCommand(inspect.InspectCmd)
	rootCmd.AddCommand(watch.WatchCmd)
	rootCmd.AddCommand(version.VersionCmd)
}

func init() {
	cobra.OnInitialize(initConfig)

	addSubCommandPalattes()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.seqscan.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "json", "log format: json or text")
}

func initConfig() {
	configErr = nil
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".seqscan")
	}

	viper.SetEnvPrefix("SEQSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config is fine, a missing explicit one is not
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("failed to read config: %w", err)
		}
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}

	flags := cmd.Flags()
	level, err := logger.ParseLevel(cmdutil.GetString(flags, "log-level", "log.level"))
	if err != nil {
		return err
	}
	if err := logger.Configure(logger.Options{
		Level:  level,
		Format: cmdutil.GetString(flags, "log-format", "log.format"),
		Output: cmd.ErrOrStderr(),
	}); err != nil {
		return err
	}

	if used := viper.ConfigFileUsed(); used != "" && configErr == nil {
		logger.Debug("Using config file", "path", used)
	}
	return nil
}
