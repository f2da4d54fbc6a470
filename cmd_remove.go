package main

import (
	"github.com/spf13/cobra"

	"github.com/lachlan2k/hostie/hostsfile"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <IP> <HOSTNAME>",
		Aliases: []string{"rm"},
		Short:   "Remove an entry from your hosts file",
		Long: `The remove command deletes the entry whose address and hostname both
match. Comments, blank lines and other entries are kept as they are.
Protected hostnames such as localhost can never be removed.

Example:
  hostie remove 192.168.1.100 test.local`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRemove(cmd, args[0], args[1])
		},
	}
}

func (a *app) runRemove(cmd *cobra.Command, address, hostname string) error {
	// Refuse protected hostnames before touching the backend.
	if a.editor.IsProtected(hostname) {
		return &hostsfile.ProtectedEntryError{Hostname: hostname}
	}

	err := mutate(cmd.Context(), a.persister, func(t hostsfile.Table) (hostsfile.Table, error) {
		return a.editor.Remove(t, address, hostname)
	})
	if err != nil {
		return err
	}

	if a.jsonOut {
		return a.printJSON(map[string]any{
			"action":   "remove",
			"address":  address,
			"hostname": hostname,
			"success":  true,
		})
	}
	a.ui.success(a.stdout, "Removed entry from hosts file", address, hostname)
	return nil
}
