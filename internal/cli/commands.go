package cli

import (
	"github.com/spf13/cobra"

	"github.com/jh3/codep/internal/collect"
	"github.com/jh3/codep/internal/source"
)

func newRecentCmd(a *app) *cobra.Command {
	o := &listOptions{}
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Print the File > Open Recent menu",
		Long: `Print the entries of the editor's File > Open Recent menu in menu order.

Without selector flags both files and folders are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, source.NewMenuRecent(a.root), o,
				collect.Selection{Files: true, Dirs: true})
		},
	}
	o.addFlags(cmd, false)
	return cmd
}

func newWorkspacesCmd(a *app) *cobra.Command {
	o := &listOptions{}
	cmd := &cobra.Command{
		Use:   "workspaces",
		Short: "Print folders with workspace storage, newest first",
		Long: `Print the folders and remote workspaces the editor keeps workspace storage
for, most recently used first.

Without selector flags local folders and remote workspaces are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, source.NewWorkspaceStorage(a.root), o,
				collect.Selection{Dirs: true, Remotes: true})
		},
	}
	o.addFlags(cmd, true)
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	o := &listOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print files with local edit history, newest first",
		Long: `Print the files the editor keeps local history for, most recently
changed first.

Without selector flags local and remote files are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, source.NewHistory(a.root), o,
				collect.Selection{Files: true, Remotes: true})
		},
	}
	o.addFlags(cmd, true)
	return cmd
}
