// Command scenario runs lending protocol scenario scripts against a chain.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/branched-services/go-scenario/internal/app"
	"github.com/branched-services/go-scenario/internal/config"
	"github.com/branched-services/go-scenario/protocol"
)

type rootFlags struct {
	configPath string
	network    string
	rpcURL     string
	dryRun     bool
	logLevel   string
	logFormat  string
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:          "scenario",
		Short:        "Lending protocol scenario runner",
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to a YAML config file")
	pf.StringVarP(&flags.network, "network", "n", "", "network name (overrides config)")
	pf.StringVar(&flags.rpcURL, "rpc", "", "JSON-RPC endpoint, empty for an in-process chain (overrides config)")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "skip ABI merges, networks file saves and verification; transactions are still sent")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text, json")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "print every action")

	for _, register := range []func(*cobra.Command, *rootFlags){
		registerRun,
		registerRepl,
		registerDocs,
	} {
		register(rootCmd, flags)
	}
	return rootCmd
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("network") {
		cfg.Network = flags.network
	}
	if changed("rpc") {
		cfg.RPCURL = flags.rpcURL
	}
	if changed("dry-run") {
		cfg.DryRun = flags.dryRun
	}
	if changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid flags")
	}
	return cfg, nil
}

func newApp(cmd *cobra.Command, flags *rootFlags, opts ...app.Option) (*app.App, error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	opts = append([]app.Option{app.WithVerbose(flags.verbose)}, opts...)
	return app.New(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts...)
}

func registerRun(parent *cobra.Command, flags *rootFlags) {
	var continueOnError bool
	cmd := &cobra.Command{
		Use:   "run <file>...",
		Short: "Run scenario files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, app.WithContinueOnError(continueOnError))
			if err != nil {
				return err
			}
			defer a.Close()

			var failed bool
			for _, path := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "== %s\n", path)
				if _, err := a.RunFile(cmd.Context(), path); err != nil {
					failed = true
					if !continueOnError {
						return err
					}
				}
			}
			if failed {
				return errors.New("scenario failures")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&continueOnError, "continue", false, "keep running after a failing test")
	parent.AddCommand(cmd)
}

func registerRepl(parent *cobra.Command, flags *rootFlags) {
	var historyFile string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Run statements interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.StartInteractiveMode(cmd.Context(), historyFile)
		},
	}
	cmd.Flags().StringVar(&historyFile, "history", defaultHistoryFile(), "readline history file")
	parent.AddCommand(cmd)
}

func registerDocs(parent *cobra.Command, _ *rootFlags) {
	parent.AddCommand(&cobra.Command{
		Use:   "docs [noun]",
		Short: "Print the command reference",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var noun string
			if len(args) == 1 {
				noun = args[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), protocol.Help(noun))
		},
	})
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".scenario_history")
}
