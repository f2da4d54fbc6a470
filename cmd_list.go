package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lachlan2k/hostie/hostsfile"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all entries in your hosts file",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd)
		},
	}
}

func (a *app) runList(cmd *cobra.Command) error {
	table, err := load(cmd.Context(), a.persister)
	if err != nil {
		return err
	}
	entries := hostsfile.List(table)

	if a.jsonOut {
		return a.printJSON(entries)
	}
	for _, m := range entries {
		fmt.Fprintln(a.stdout, a.ui.entry(m.Address, m.Hostname))
	}
	return nil
}
