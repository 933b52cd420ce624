package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DukeRupert/courtside/internal/draft"
)

// localScope is the draft scope used by eventctl. Server drafts are scoped by
// organization id instead.
const localScope = "local"

func draftCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage local form drafts",
	}

	cmd.AddCommand(draftSaveCmd(opts))
	cmd.AddCommand(draftShowCmd(opts))
	cmd.AddCommand(draftClearCmd(opts))
	cmd.AddCommand(draftListCmd(opts))
	return cmd
}

func draftKey(args []string) draft.Key {
	name := draft.DefaultName
	if len(args) > 0 && args[0] != "" {
		name = args[0]
	}
	return draft.Key{Scope: localScope, Name: name}
}

// withManager opens the draft store for the duration of fn.
func withManager(opts *options, fn func(*draft.Manager, *draft.SQLiteStore) error) error {
	store, err := opts.openDrafts()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(draft.NewManager(store, opts.logger), store)
}

func draftSaveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "save FILE [NAME]",
		Short: "Store a form state as a draft",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := readState(cmd, args[0])
			if err != nil {
				return err
			}
			key := draftKey(args[1:])
			if err := key.Validate(); err != nil {
				return err
			}
			return withManager(opts, func(m *draft.Manager, _ *draft.SQLiteStore) error {
				if err := m.Save(cmd.Context(), key, st); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved draft %s\n", key.Name)
				return nil
			})
		},
	}
}

func draftShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show [NAME]",
		Short: "Print a draft, or the default form when none is stored",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := draftKey(args)
			return withManager(opts, func(m *draft.Manager, _ *draft.SQLiteStore) error {
				st, ok := m.Restore(cmd.Context(), key)
				if !ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "No draft %s; showing the default form\n", key.Name)
				}
				return writeJSON(cmd.OutOrStdout(), st)
			})
		},
	}
}

func draftClearCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [NAME]",
		Short: "Delete a draft",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := draftKey(args)
			return withManager(opts, func(m *draft.Manager, _ *draft.SQLiteStore) error {
				if err := m.Discard(cmd.Context(), key); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared draft %s\n", key.Name)
				return nil
			})
		},
	}
}

func draftListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(opts, func(_ *draft.Manager, store *draft.SQLiteStore) error {
				names, err := store.List(cmd.Context(), localScope)
				if err != nil {
					return err
				}
				if opts.outputJSON {
					if names == nil {
						names = []string{}
					}
					return writeJSON(cmd.OutOrStdout(), names)
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}
