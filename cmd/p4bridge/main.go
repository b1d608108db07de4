// Package main provides a command-line front end for the p4 integration:
// connection resolution, typed queries and connection discovery.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/Cyclone1070/p4bridge/internal/config"
	"github.com/Cyclone1070/p4bridge/internal/logger"
	"github.com/Cyclone1070/p4bridge/internal/p4/catalog"
	"github.com/Cyclone1070/p4bridge/internal/p4/client"
	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/p4/executor"
	"github.com/Cyclone1070/p4bridge/internal/p4/p4v"
	"github.com/Cyclone1070/p4bridge/internal/p4/resolver"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Dependencies holds the components required to run a command.
type Dependencies struct {
	Config   *config.Config
	Log      *logrus.Logger
	State    *connection.State
	Executor *executor.Executor
	Resolver *resolver.Resolver
	Client   *client.Client
	Launcher *p4v.Launcher
	Catalog  *catalog.Catalog
	Out      io.Writer
}

// globalFlags are the connection flags shared by every command.
type globalFlags struct {
	port      string
	user      string
	client    string
	host      string
	overrides []string
	echo      bool
	verbose   bool
}

// explicit builds the connection given on the command line. Flags win
// over --set overrides.
func (f globalFlags) explicit() (connection.Config, error) {
	cfg, err := connection.ParseOverrides(f.overrides)
	if err != nil {
		return connection.Config{}, err
	}
	cfg.Overlay(connection.Config{Port: f.port, User: f.user, Client: f.client, Host: f.host})
	return cfg, nil
}

func createDependencies(cfg *config.Config, log *logrus.Logger, initial connection.Config, out io.Writer) *Dependencies {
	state := connection.NewState(initial)
	exec := executor.NewExecutor(cfg, log)
	res := resolver.New(exec, state, log)
	launcher := p4v.NewLauncher(cfg, log)
	return &Dependencies{
		Config:   cfg,
		Log:      log,
		State:    state,
		Executor: exec,
		Resolver: res,
		Client:   client.New(exec, res, state, log),
		Launcher: launcher,
		Catalog:  catalog.New(cfg, exec, res, launcher, log),
		Out:      out,
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	var flags globalFlags
	var deps *Dependencies

	root := &cobra.Command{
		Use:           "p4bridge",
		Short:         "p4bridge - resolve and query Perforce connections",
		Long:          `Runs the p4 command-line client with the connection resolved from P4CONFIG files, the p4 environment, the server handshake and explicit flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration (from defaults + ~/.config/p4bridge/config.json)
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
				fmt.Fprintf(os.Stderr, "Using default configuration.\n")
				cfg = config.DefaultConfig()
			}
			if flags.verbose {
				cfg.Log.Level = "debug"
			}
			if flags.echo {
				cfg.P4.Echo = true
			}

			log, err := logger.New(logger.Config(cfg.Log))
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			initial, err := flags.explicit()
			if err != nil {
				return err
			}
			deps = createDependencies(cfg, log, initial, out)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.port, "port", "p", "", "Server address (P4PORT)")
	pf.StringVarP(&flags.user, "user", "u", "", "User name (P4USER)")
	pf.StringVarP(&flags.client, "client", "c", "", "Workspace name (P4CLIENT)")
	pf.StringVarP(&flags.host, "host", "H", "", "Host name (P4HOST)")
	pf.StringArrayVar(&flags.overrides, "set", nil, "Connection override as key=value (port, user, client, host, password, ignore); repeatable")
	pf.BoolVar(&flags.echo, "echo", false, "Log every line of p4 output as it arrives")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	get := func() *Dependencies { return deps }
	root.AddCommand(
		newInfoCommand(get),
		newResolveCommand(get),
		newEnvCommand(get),
		newFStatCommand(get),
		newWhereCommand(get),
		newPrintCommand(get),
		newAddCommand(get),
		newConnectionsCommand(get),
		newCompareCommand(get),
		newP4VCCommand(get),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeOf(err))
	}
}

// exitError carries the p4 exit code out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("p4 exited with code %d", e.code) }

func (e *exitError) ExitCode() int { return e.code }

func exitCodeOf(err error) int {
	type exitCoder interface {
		ExitCode() int
	}
	if ec, ok := err.(exitCoder); ok {
		return ec.ExitCode()
	}
	return 1
}
