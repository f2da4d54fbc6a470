package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lachlan2k/hostie/hostsfile"
)

var version = "0.3.0"

type app struct {
	configPath string
	flags      Config
	verbose    bool
	noColor    bool
	jsonOut    bool

	cfg       Config
	persister HostsfilePersister
	editor    *hostsfile.Editor
	ui        palette

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "hostie",
		Short: "A command-line utility for managing your /etc/hosts file",
		Long: `hostie is a command-line utility for managing your /etc/hosts file.
It adds, removes and lists entries while leaving comments, blank lines
and unrelated entries untouched.`,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	bindConfigFlags(pf, &a.flags)
	pf.StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&a.jsonOut, "json", false, "Output in JSON format")

	root.AddCommand(
		newAddCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg.resolve(cmd.Flags(), a.flags)

	if err := setupLogging(a.stderr, a.cfg.LogLevel, a.verbose); err != nil {
		return err
	}
	a.editor = hostsfile.NewEditor(a.cfg.Protected...)
	log.Debug().
		Str("backend", a.cfg.Backend).
		Str("hosts_file", a.cfg.HostsFile).
		Strs("protected", a.editor.Protected()).
		Msg("configuration resolved")

	if a.persister == nil {
		if a.persister, err = newPersister(a.cfg); err != nil {
			return err
		}
	}
	a.ui = newPalette(!a.noColor)
	return nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// execute runs the command line and returns the process exit status.
func execute(ctx context.Context, a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		log.Debug().Stack().Err(err).Msg("command failed")
		newPalette(!a.noColor).failure(a.stderr, err)
		return 1
	}
	return 0
}

func main() {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(execute(context.Background(), a, os.Args[1:]))
}
