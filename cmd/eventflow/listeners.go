package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/eventflow/pkg/eventflow"
	"github.com/randalmurphal/eventflow/pkg/eventflow/pattern"
)

func newListenersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listeners <handlers-file> <event>",
		Short: "List the handlers that would receive an event",
		Args:  cobra.ExactArgs(2),
		RunE:  runListeners,
	}
}

func runListeners(cmd *cobra.Command, args []string) error {
	descs, err := eventflow.LoadDescriptors(args[0])
	if err != nil {
		return err
	}
	doc, err := eventflow.Build(descs)
	if err != nil {
		return fmt.Errorf("build documentation: %w", err)
	}

	event := args[1]
	out := cmd.OutOrStdout()
	found := 0
	doc.EventMappings.Range(func(owner string, m eventflow.Mapping) bool {
		if pattern.MatchAny(event, m.Listen) {
			_, _ = fmt.Fprintln(out, owner)
			found++
		}
		return true
	})

	if found == 0 {
		_, _ = dimColor.Fprintf(cmd.ErrOrStderr(), "no handler listens to %s\n", event)
	}
	return nil
}
