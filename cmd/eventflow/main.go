// Command eventflow documents the event flow of a pub/sub application.
//
// It reads handler declarations from a YAML or JSON file and writes the
// documentation JSON, the Mermaid flow diagram, and the listen-type
// declaration:
//
//	eventflow generate handlers.yaml --config eventflow.yaml
//	eventflow listeners handlers.yaml user.created
//	eventflow history --db eventflow.db
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "eventflow",
		Short:         "Document event emitters, listeners, and their wiring",
		Long:          "eventflow builds event-flow documentation, a Mermaid diagram, and typed listen identifiers from handler declarations.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			mode, _ := cmd.Flags().GetString("color")
			return applyColorMode(mode)
		},
	}

	root.PersistentFlags().String("config", "", "configuration file (.yaml, .yml, .json, .toml)")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log every artifact write")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newListenersCmd())
	root.AddCommand(newHistoryCmd())
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		_, _ = failColor.Fprint(os.Stderr, "error: ")
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func applyColorMode(mode string) error {
	switch mode {
	case "auto":
		// fatih/color already disables itself for non-terminals and NO_COLOR.
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (want auto, on or off)", mode)
	}
	return nil
}

// newLogger returns a text logger on w: debug level when verbose, warnings
// only otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
