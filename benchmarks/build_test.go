package benchmarks

import (
	"fmt"
	"testing"

	"github.com/randalmurphal/eventflow/pkg/eventflow"
	"github.com/randalmurphal/eventflow/pkg/eventflow/diagram"
	"github.com/randalmurphal/eventflow/pkg/eventflow/pattern"
	"github.com/randalmurphal/eventflow/pkg/eventflow/typegen"
)

// BenchmarkBuild_5 builds documentation for a 5-handler chain.
func BenchmarkBuild_5(b *testing.B) {
	descs := chainDescriptors(5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = eventflow.Build(descs)
	}
}

// BenchmarkBuild_50 builds documentation for a 50-handler chain.
func BenchmarkBuild_50(b *testing.B) {
	descs := chainDescriptors(50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = eventflow.Build(descs)
	}
}

// BenchmarkBuild_500 builds documentation for a 500-handler chain.
func BenchmarkBuild_500(b *testing.B) {
	descs := chainDescriptors(500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = eventflow.Build(descs)
	}
}

// BenchmarkDocumentationJSON measures pretty-printed serialization.
func BenchmarkDocumentationJSON(b *testing.B) {
	doc := mustBuild(b, chainDescriptors(50))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = doc.JSON()
	}
}

// BenchmarkMatch_Wildcard measures prefix matching.
func BenchmarkMatch_Wildcard(b *testing.B) {
	for i := 0; i < b.N; i++ {
		pattern.Match("order.line.added", "order.*")
	}
}

// BenchmarkEdges_50 measures edge derivation for a chain with wildcard listeners.
func BenchmarkEdges_50(b *testing.B) {
	doc := mustBuild(b, chainDescriptors(50))
	m := pattern.New(".")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		diagram.Edges(doc.EventMappings, m)
	}
}

// BenchmarkDiagramHTML_50 renders the diagram page.
func BenchmarkDiagramHTML_50(b *testing.B) {
	doc := mustBuild(b, chainDescriptors(50))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = diagram.HTML(doc)
	}
}

// BenchmarkIdentifierSet_50 derives listen identifiers.
func BenchmarkIdentifierSet_50(b *testing.B) {
	doc := mustBuild(b, chainDescriptors(50))
	m := pattern.New(".")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		typegen.IdentifierSet(doc.Events, m)
	}
}

// BenchmarkRenderGo_50 renders and formats the Go declaration.
func BenchmarkRenderGo_50(b *testing.B) {
	doc := mustBuild(b, chainDescriptors(50))
	ids := typegen.IdentifierSet(doc.Events, pattern.New("."))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = typegen.RenderGo("events", ids)
	}
}

// BenchmarkRenderTypeScript_50 renders the TypeScript declaration.
func BenchmarkRenderTypeScript_50(b *testing.B) {
	doc := mustBuild(b, chainDescriptors(50))
	ids := typegen.IdentifierSet(doc.Events, pattern.New("."))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		typegen.RenderTypeScript(ids)
	}
}

// Helper functions

func eventName(n int) string {
	return fmt.Sprintf("stage%d.step.done", n)
}

// chainDescriptors returns n handlers where handler i listens to the event
// of handler i-1 and emits its own, plus one wildcard listener per ten.
func chainDescriptors(n int) []eventflow.Descriptor {
	descs := make([]eventflow.Descriptor, 0, n+n/10)
	for i := 0; i < n; i++ {
		d := eventflow.Descriptor{
			OwnerID: fmt.Sprintf("Handler%d", i),
			Emit:    eventName(i),
		}
		if i > 0 {
			d.Listen = eventName(i - 1)
		}
		descs = append(descs, d)
	}
	for i := 0; i < n/10; i++ {
		descs = append(descs, eventflow.Descriptor{
			OwnerID: fmt.Sprintf("Watcher%d", i),
			Listen:  fmt.Sprintf("stage%d.*", i*10),
		})
	}
	return descs
}

func mustBuild(b *testing.B, descs []eventflow.Descriptor) *eventflow.Documentation {
	b.Helper()
	doc, err := eventflow.Build(descs)
	if err != nil {
		b.Fatal(err)
	}
	return doc
}
