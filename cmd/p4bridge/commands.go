package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/Cyclone1070/p4bridge/internal/p4/catalog"
	"github.com/Cyclone1070/p4bridge/internal/p4/client"
	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/p4/p4v"
	"github.com/Cyclone1070/p4bridge/internal/p4/record"
	"github.com/Cyclone1070/p4bridge/internal/p4/result"
	"github.com/Cyclone1070/p4bridge/internal/ui"
	"github.com/Cyclone1070/p4bridge/internal/ui/services"
	"github.com/Cyclone1070/p4bridge/internal/ui/views"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultMarkdownWidth = 100

var errNotTerminal = errors.New("--pick needs an interactive terminal")

type depsFunc func() *Dependencies

func newInfoCommand(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the server handshake for the resolved connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			cfg := d.Resolver.Connection(cmd.Context(), nil)
			info := d.Client.Info(cmd.Context(), client.Call{Config: &cfg})
			writeRecords(d.Out, info.Records)
			return checkResult(d.Out, info.ResultSet)
		},
	}
}

func newResolveCommand(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [paths...]",
		Short: "Print the effective connection for commands touching paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			writeConfig(d.Out, d.Resolver.Resolve(cmd.Context(), nil, args))
			return nil
		},
	}
}

func newEnvCommand(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "env [NAME]",
		Short: "Print P4USER, P4HOST, P4PORT and P4CLIENT for the resolved connection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			if len(args) == 1 {
				fmt.Fprintln(d.Out, d.Resolver.EnvironmentVariable(cmd.Context(), args[0], nil))
				return nil
			}
			writeVariables(d.Out, d.Resolver.EnvironmentVariables(cmd.Context(), nil))
			return nil
		},
	}
}

func newFStatCommand(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "fstat files...",
		Short: "Show file state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			fs := d.Client.FStat(cmd.Context(), args, client.Call{})
			writeRecords(d.Out, fs.Records)
			return checkResult(d.Out, fs.ResultSet)
		},
	}
}

func newWhereCommand(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "where files...",
		Short: "Show depot, workspace and local paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			w := d.Client.Where(cmd.Context(), args, client.Call{})
			for _, n := range w.Nodes {
				prefix := ""
				if n.Unmapped() {
					prefix = "-"
				}
				fmt.Fprintf(d.Out, "%s%s %s %s\n", prefix, n.DepotFile(), n.WorkspaceFile(), n.ClientFile())
			}
			return checkResult(d.Out, w.ResultSet)
		},
	}
}

func newPrintCommand(deps depsFunc) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "print file",
		Short: "Print the depot content of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			p := d.Client.Print(cmd.Context(), args[0], out, client.Call{})
			io.WriteString(d.Out, p.Content())
			return checkResult(d.Out, p.ResultSet)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write the content to this file instead")
	return cmd
}

func newAddCommand(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "add files...",
		Short: "Open files for add, skipping ignored files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			res, ignored := d.Client.Add(cmd.Context(), args, client.Call{})
			for _, f := range ignored {
				fmt.Fprintf(d.Out, "%s - ignored\n", f)
			}
			for _, line := range res.StdOut() {
				fmt.Fprintln(d.Out, line)
			}
			return checkResult(d.Out, res)
		},
	}
}

func newConnectionsCommand(deps depsFunc) *cobra.Command {
	var allClients, markdown, pick bool
	cmd := &cobra.Command{
		Use:   "connections",
		Short: "List known connections",
		Long:  "Lists connections saved by P4V, the current connection and every workspace the user owns on each known server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			ctx := cmd.Context()

			if pick {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return errNotTerminal
				}
				spinnerFactory := func() spinner.Model {
					return spinner.New(spinner.WithSpinner(spinner.Dot))
				}
				changes := make(chan struct{}, 1)
				err := d.Launcher.WatchSettings(ctx, func() {
					select {
					case changes <- struct{}{}:
					default:
					}
				})
				if err != nil {
					d.Log.WithError(err).Debug("not watching p4v settings")
				}
				sel, err := ui.NewPicker(ctx, d.Catalog, d.State, changes, spinnerFactory).Run()
				if err != nil {
					return err
				}
				if sel.OK {
					fmt.Fprintln(d.Out, sel.Current.ConnectionString())
				}
				return nil
			}

			opts := d.Catalog.DefaultOptions()
			if allClients {
				opts.IncludeAllClients = true
			}
			conns := d.Catalog.Discover(ctx, opts)
			current := d.Resolver.Connection(ctx, nil).Connection()
			selected, ok := catalog.FindBestMatch(current, conns)

			if markdown {
				out, err := services.RenderMarkdown(views.FormatConnectionsMarkdown(conns, selected, ok), terminalWidth(), services.NewGlamourRenderer())
				if err != nil {
					return err
				}
				io.WriteString(d.Out, out)
				return nil
			}
			writeConnections(d.Out, conns, selected, ok)
			return nil
		},
	}
	cmd.Flags().BoolVar(&allClients, "all-clients", false, "Include workspaces bound to other machines")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render the list as a markdown table")
	cmd.Flags().BoolVar(&pick, "pick", false, "Choose a connection interactively and make it current")
	return cmd
}

func newCompareCommand(deps depsFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare left right [base]",
		Short: "Open two or three files in the configured diff tool",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := p4v.CompareParams{LeftFilePath: args[0], RightFilePath: args[1]}
			if len(args) == 3 {
				params.BaseFilePath = args[2]
			}
			return deps().Launcher.StartCompare(params)
		},
	}
	return cmd
}

func newP4VCCommand(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "p4vc args...",
		Short: "Run a P4V command with the resolved connection (pass p4vc flags after --)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps()
			cfg := d.Resolver.Connection(cmd.Context(), nil)
			return d.Launcher.StartP4VC(append(cfg.P4VArgs(), args...)...)
		},
	}
}

// checkResult prints stderr and turns a failed invocation into an exit code.
func checkResult(w io.Writer, rs *result.ResultSet) error {
	for _, line := range rs.StdErr() {
		fmt.Fprintln(w, line)
	}
	if rs.Success() {
		return nil
	}
	return &exitError{code: rs.ExitCode}
}

func writeRecords(w io.Writer, records []*record.Record) {
	for i, r := range records {
		if i > 0 {
			fmt.Fprintln(w)
		}
		for _, f := range r.Fields() {
			fmt.Fprintf(w, "%s %s\n", f.Name, f.Value)
		}
	}
}

func writeConfig(w io.Writer, cfg connection.Config) {
	fields := []struct{ name, value string }{
		{"Port", cfg.Port},
		{"User", cfg.User},
		{"Client", cfg.Client},
		{"Host", cfg.Host},
		{"ConfigDirectory", cfg.ConfigDirectory},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Fprintf(w, "%s: %s\n", f.name, f.value)
		}
	}
}

func writeVariables(w io.Writer, vars map[string]string) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s=%s\n", name, vars[name])
	}
}

func writeConnections(w io.Writer, conns []connection.Connection, selected connection.Connection, hasSelected bool) {
	for _, c := range conns {
		mark := " "
		if hasSelected && strings.EqualFold(c.String(), selected.String()) {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %s\n", mark, c)
	}
}

// terminalWidth is the width of stdout, or a default when it is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultMarkdownWidth
}
