package typegen

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/randalmurphal/eventflow/pkg/eventflow/pattern"
)

// GeneratedHeader marks generated Go files for tooling.
const GeneratedHeader = "// Code generated by eventflow. DO NOT EDIT."

// RenderGo renders ids as a Go source file in package pkg.
// The result is gofmt-formatted; a malformed file is an error.
func RenderGo(pkg string, ids []string) ([]byte, error) {
	if !validPackage(pkg) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPackage, pkg)
	}

	names := ConstNames(ids)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\npackage %s\n\n", GeneratedHeader, pkg)
	buf.WriteString("import \"context\"\n\n")

	buf.WriteString("// ListenType is an event name or listen pattern known to the event flow.\n")
	buf.WriteString("type ListenType string\n\n")

	buf.WriteString("// Known listen types.\nconst (\n")
	for i, id := range ids {
		fmt.Fprintf(&buf, "\t%s ListenType = %s\n", names[i], strconv.Quote(id))
	}
	buf.WriteString(")\n\n")

	buf.WriteString("// ListenTypes lists every ListenType in generation order.\n")
	buf.WriteString("var ListenTypes = []ListenType{\n")
	for _, name := range names {
		fmt.Fprintf(&buf, "\t%s,\n", name)
	}
	buf.WriteString("}\n\n")

	buf.WriteString(`// IsListenType reports whether s is a known ListenType.
func IsListenType(s string) bool {
	for _, t := range ListenTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Emitter publishes events whose names are checked at compile time.
type Emitter interface {
	Emit(ctx context.Context, event ListenType, payload any) error
	EmitAsync(ctx context.Context, event ListenType, payload any) <-chan error
}
`)

	out, err := imports.Process("listen-types.go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format generated go: %w", err)
	}
	return out, nil
}

// RenderTypeScript renders ids as a TypeScript declaration file: the
// listenTypes union and the EventEmitter2 augmentation that restricts
// emit and emitAsync to it.
func RenderTypeScript(ids []string) []byte {
	literals := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		literals = append(literals, tsQuote(id))
	}
	if len(literals) == 0 {
		literals = append(literals, tsQuote(pattern.All))
	}
	// A lone '**' gets the empty-alternative placeholder.
	if len(literals) == 1 {
		literals = append(literals, "''")
	}

	var b strings.Builder
	b.WriteString("/**\n * Code generated by eventflow. DO NOT EDIT.\n */\n\n")
	fmt.Fprintf(&b, "export type listenTypes = %s;\n\n", strings.Join(literals, " | "))
	b.WriteString(`declare module '@nestjs/event-emitter' {
  export interface EventEmitter2 {
    emit<T = any>(event: listenTypes, value?: T): Promise<any>;
    emitAsync<T = any>(event: listenTypes, value?: T): Promise<any>;
  }
}
`)
	return []byte(b.String())
}

func tsQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}
