package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"promptito-be/internal/localstore"
	"promptito-be/pkg/builder/state"

	"github.com/spf13/cobra"
)

var storePath string

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Save and load named drafts in the local store",
}

var draftSaveCmd = &cobra.Command{
	Use:   "save <name> [state.json]",
	Short: "Store a builder state under name",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := translator()
		if err != nil {
			return err
		}
		path := statePath
		if len(args) > 1 {
			path = args[1]
		}
		st, err := readState(path, tr)
		if err != nil {
			return err
		}
		return withStore(func(s *localstore.Store) error {
			draft, err := s.Save(args[0], st, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", args[0], draft.UpdatedAt.Local().Format(time.DateTime))
			return nil
		})
	},
}

var draftLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Print a stored builder state as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := translator()
		if err != nil {
			return err
		}
		return withStore(func(s *localstore.Store) error {
			draft, err := s.Load(args[0], tr)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), draft.State)
		})
	},
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored drafts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *localstore.Store) error {
			entries, err := s.List()
			if err != nil {
				return err
			}
			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE\tUPDATED")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Title, state.FormatRelative(e.UpdatedAt, now))
			}
			return w.Flush()
		})
	},
}

var draftDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a stored draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *localstore.Store) error {
			return s.Delete(args[0])
		})
	},
}

func init() {
	draftCmd.PersistentFlags().StringVar(&storePath, "store", localstore.DefaultPath(), "Path of the SQLite draft store")
	draftCmd.AddCommand(draftSaveCmd, draftLoadCmd, draftListCmd, draftDeleteCmd)
}

func withStore(fn func(s *localstore.Store) error) error {
	s, err := localstore.Open(storePath)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
