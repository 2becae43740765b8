package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/scanio-parser/cmd/generate"
	"github.com/scan-io-git/scanio-parser/cmd/parse"
	"github.com/scan-io-git/scanio-parser/cmd/version"
	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
	errs "github.com/scan-io-git/scanio-parser/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "scanio-parser [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Scanio parser converts scan result documents into normalized findings.",
		Long: `Scanio parser streams scan result documents, plain JSON or zip containers,
	through a vocabulary aware decoder into JSON Lines, SARIF or PostgreSQL.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")

	rootCmd.AddCommand(parse.ParseCmd)
	rootCmd.AddCommand(generate.GenerateCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return exitCode(err)
	}
	return errs.ExitCodeOK
}

func exitCode(err error) int {
	var cmdErr *errs.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return errs.ExitCodeFailure
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing config file function is crashed - %v \n", err)
		os.Exit(errs.ExitCodeFailure)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errs.ExitCodeFailure)
	}

	parse.Init(AppConfig)
	generate.Init(AppConfig)
	version.Init(AppConfig)
}
