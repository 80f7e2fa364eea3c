package main

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/sagarc03/stacks"
	"github.com/sagarc03/stacks/filesystem"
)

var lsCmd = &cobra.Command{
	Use:   "ls [dir]",
	Short: "List a directory the way the server renders it",
	Long: `List a local directory with the same entries, permissions, owners,
sizes and timestamps the server puts into HTML listings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().BoolP("all", "a", false, "include names beginning with a dot")
	lsCmd.Flags().Bool("no-symlinks", false, "follow symlinks instead of listing them")
	lsCmd.Flags().Bool("json", false, "output JSON")

	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	all, _ := cmd.Flags().GetBool("all")
	noSymlinks, _ := cmd.Flags().GetBool("no-symlinks")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	opts := stacks.ListOptions{HideSymlinks: noSymlinks}
	if all {
		opts.NameFilter = func(string) bool { return true }
	}

	lister := stacks.NewLister(filesystem.New(), filesystem.NewAccounts())
	entries, err := lister.List(dir, opts)
	if err != nil {
		return fmt.Errorf("ls: %w", err)
	}

	// Same order as the served listing.
	sorted := slices.SortedFunc(maps.Values(entries), func(a, b stacks.DirEntry) int {
		return cmp.Compare(a.DisplayName, b.DisplayName)
	})

	return NewFormatter(jsonOutput).FormatListing(cmd.OutOrStdout(), dir, sorted)
}
