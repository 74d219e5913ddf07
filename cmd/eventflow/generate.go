package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/eventflow/pkg/eventflow"
	"github.com/randalmurphal/eventflow/pkg/eventflow/artifact"
	"github.com/randalmurphal/eventflow/pkg/eventflow/config"
	"github.com/randalmurphal/eventflow/pkg/eventflow/generate"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <handlers-file>",
		Short: "Write documentation, diagram, and listen types",
		Long: `Read handler declarations and write three artifacts:
the documentation JSON, the flow diagram HTML, and the listen-type
declaration (Go, or TypeScript for .ts type files).

Settings come from defaults, then --config, then EVENTFLOW_* variables,
then flags.`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}

	f := cmd.Flags()
	f.String("output-dir", "", "directory for the documentation and diagram")
	f.String("type-file", "", "listen-type file name (.go, .ts, .d.ts)")
	f.String("doc-file", "", "documentation JSON file name")
	f.String("html-file", "", "diagram HTML file name")
	f.Bool("type-file-in-package", true, "resolve the type file against --package-dir instead of --output-dir")
	f.String("package-dir", "", "directory of the package that consumes the listen types")
	f.String("type-package", "", "Go package clause for the type file (default: derived from its directory)")
	f.String("delimiter", "", "event name segment delimiter")
	f.String("title", "", "documentation title")
	f.String("doc-version", "", "documentation version")
	f.String("mermaid-version", "", "Mermaid major version loaded by the diagram page")
	f.String("history", "", "SQLite database that records every run")
	f.String("run-id", "", "run id for logs and history (default: random UUID)")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	descs, err := eventflow.LoadDescriptors(args[0])
	if err != nil {
		return err
	}
	doc, err := eventflow.Build(descs,
		eventflow.WithTitle(opts.Title),
		eventflow.WithVersion(opts.Version),
	)
	if err != nil {
		return fmt.Errorf("build documentation: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	runID, _ := cmd.Flags().GetString("run-id")
	runOpts := []generate.Option{
		generate.WithLogger(newLogger(cmd.ErrOrStderr(), verbose)),
		generate.WithRunID(runID),
	}
	if opts.HistoryDB != "" {
		history, err := artifact.NewSQLiteStore(opts.HistoryDB)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer history.Close()
		runOpts = append(runOpts, generate.WithHistory(history))
	}

	res, runErr := generate.Run(cmd.Context(), doc, opts, runOpts...)
	if res != nil && !quiet {
		printResult(cmd, res, runErr)
	}
	return runErr
}

// resolveOptions layers explicitly set flags over config.Load.
func resolveOptions(cmd *cobra.Command) (config.Options, error) {
	path, _ := cmd.Flags().GetString("config")
	opts, err := config.Load(path)
	if err != nil {
		return config.Options{}, err
	}

	f := cmd.Flags()
	strFlags := map[string]*string{
		"output-dir":      &opts.OutputDir,
		"type-file":       &opts.TypeFile,
		"doc-file":        &opts.DocFile,
		"html-file":       &opts.HTMLFile,
		"package-dir":     &opts.PackageDir,
		"type-package":    &opts.TypePackage,
		"delimiter":       &opts.Delimiter,
		"title":           &opts.Title,
		"doc-version":     &opts.Version,
		"mermaid-version": &opts.MermaidVersion,
		"history":         &opts.HistoryDB,
	}
	for name, dst := range strFlags {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	if f.Changed("type-file-in-package") {
		opts.GenerateTypeFileInPackage, _ = f.GetBool("type-file-in-package")
	}

	if err := opts.Validate(); err != nil {
		return config.Options{}, err
	}
	return opts, nil
}

func printResult(cmd *cobra.Command, res *generate.Result, runErr error) {
	out := cmd.OutOrStdout()
	for _, info := range res.Written {
		_, _ = okColor.Fprint(out, "  wrote  ")
		_, _ = fmt.Fprintf(out, "%-15s %s ", info.Kind, info.Path)
		_, _ = dimColor.Fprintf(out, "(%d bytes)\n", info.Size)
	}

	var artErr *generate.ArtifactError
	for _, err := range flatten(runErr) {
		if errors.As(err, &artErr) {
			_, _ = failColor.Fprint(out, "  failed ")
			_, _ = fmt.Fprintf(out, "%-15s %s: %v\n", artErr.Kind, artErr.Path, artErr.Err)
		}
	}

	_, _ = dimColor.Fprintf(out, "run %s, %d identifiers, %s\n", res.RunID, len(res.Identifiers), res.Duration.Round(time.Microsecond))
}

// flatten returns the members of a joined error, or err itself.
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
