package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/eventflow/pkg/eventflow/artifact"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded generation runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}
	cmd.PersistentFlags().String("db", "eventflow.db", "history database")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <run-id> <kind>",
		Short: "Print an artifact recorded by a run",
		Long:  "Print an artifact recorded by a run. Kind is one of documentation, diagram, identifier-set.",
		Args:  cobra.ExactArgs(2),
		RunE:  runHistoryShow,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <run-id>",
		Short: "Remove a run from the history",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryDelete,
	})
	return cmd
}

func openHistory(cmd *cobra.Command) (*artifact.SQLiteStore, error) {
	path, _ := cmd.Flags().GetString("db")
	store, err := artifact.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	return store, nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	runs, err := store.Runs(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, runID := range runs {
		infos, err := store.List(ctx, runID)
		if err != nil {
			return err
		}
		_, _ = okColor.Fprintln(out, runID)
		for _, info := range infos {
			_, _ = fmt.Fprintf(out, "  %-15s %s ", info.Kind, info.Path)
			_, _ = dimColor.Fprintf(out, "(%d bytes, %s)\n", info.Size, info.Timestamp.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	kind := artifact.Kind(args[1])
	if !kind.Valid() {
		return fmt.Errorf("unknown artifact kind %q", args[1])
	}

	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	a, err := store.Load(cmd.Context(), args[0], kind)
	if err != nil {
		return fmt.Errorf("run %s: %w", args[0], err)
	}
	_, err = cmd.OutOrStdout().Write(a.Data)
	return err
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.DeleteRun(cmd.Context(), args[0])
}
