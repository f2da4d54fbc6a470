package main

import (
	"github.com/spf13/cobra"

	"github.com/lachlan2k/hostie/hostsfile"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <IP> <HOSTNAME>",
		Short: "Add a new entry to your hosts file",
		Long: `The add command appends "<IP> <HOSTNAME>" to the end of the hosts file.
It fails when any entry already uses HOSTNAME, whatever its address.

Example:
  hostie add 192.168.1.100 test.local`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAdd(cmd, args[0], args[1])
		},
	}
}

func (a *app) runAdd(cmd *cobra.Command, address, hostname string) error {
	err := mutate(cmd.Context(), a.persister, func(t hostsfile.Table) (hostsfile.Table, error) {
		return a.editor.Add(t, address, hostname)
	})
	if err != nil {
		return err
	}

	if a.jsonOut {
		return a.printJSON(map[string]any{
			"action":   "add",
			"address":  address,
			"hostname": hostname,
			"success":  true,
		})
	}
	a.ui.success(a.stdout, "Added entry to hosts file", address, hostname)
	return nil
}
